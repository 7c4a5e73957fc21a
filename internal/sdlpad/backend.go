// Package sdlpad reads controllers through the SDL3 joystick API.
//
// SDL is loaded at runtime, so importing this package costs nothing until the
// first poll. Poll, Describe and Close must all be called from the goroutine
// that owns the backend, which should be locked to its OS thread.
package sdlpad

import (
	"fmt"
	"log/slog"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/inputnav/internal/gamepad"
)

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Backend is a gamepad.Backend over SDL3 joysticks. The first connected
// joystick is active; when it goes away the next one is promoted.
type Backend struct {
	afterInit func()

	initialized bool
	failed      bool
	joysticks   map[sdl.JoystickID]*joystickInfo
	order       []sdl.JoystickID
	activeID    sdl.JoystickID
	hasActive   bool
	switched    bool
}

// New creates a backend. afterInit, if set, runs once right after SDL is
// initialized; SDL replaces the console control handler on Windows and the
// hook lets the caller restore it.
func New(afterInit func()) *Backend {
	return &Backend{
		afterInit: afterInit,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

func (b *Backend) init() bool {
	if b.initialized {
		return true
	}
	if b.failed {
		return false
	}
	if !sdl.Init(sdl.InitJoystick) {
		slog.Error("SDL init failed", "error", sdl.GetError())
		b.failed = true
		return false
	}
	b.initialized = true
	slog.Info("SDL3 joystick subsystem initialized")
	if b.afterInit != nil {
		b.afterInit()
	}

	for _, id := range sdl.GetJoysticks() {
		b.openJoystick(id)
	}
	return true
}

func (b *Backend) Poll() (bool, gamepad.Snapshot) {
	if !b.init() {
		return false, gamepad.Snapshot{}
	}
	b.processEvents()

	if b.switched {
		b.switched = false
		return false, gamepad.Snapshot{}
	}
	if !b.hasActive {
		return false, gamepad.Snapshot{}
	}
	info := b.joysticks[b.activeID]
	if !sdl.JoystickConnected(info.joystick) {
		b.removeJoystick(b.activeID)
		return false, gamepad.Snapshot{}
	}
	return true, readSnapshot(info)
}

func (b *Backend) Describe() string {
	if !b.hasActive {
		return ""
	}
	info := b.joysticks[b.activeID]
	return fmt.Sprintf("%s (%s)", info.name, info.mapping.Name)
}

func (b *Backend) Close() error {
	if !b.initialized {
		return nil
	}
	for id, info := range b.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(b.joysticks, id)
	}
	b.order = nil
	b.hasActive = false
	b.initialized = false
	sdl.Quit()
	return nil
}

func (b *Backend) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			b.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			b.removeJoystick(event.JDevice().Which)
		}
	}
}

func (b *Backend) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := b.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		slog.Warn("Failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	info := &joystickInfo{
		joystick: js,
		mapping:  gamepad.GetMapping(vendorID, productID),
		name:     sdl.GetJoystickName(js),
		id:       jsID,
	}
	b.joysticks[jsID] = info
	b.order = append(b.order, jsID)

	slog.Debug("Joystick opened",
		"name", info.name,
		"vendor", fmt.Sprintf("%04X", vendorID),
		"product", fmt.Sprintf("%04X", productID),
		"mapping", info.mapping.Name,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js),
		"hats", sdl.GetNumJoystickHats(js))

	if !b.hasActive {
		b.activeID, b.hasActive = jsID, true
	}
}

func (b *Backend) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := b.joysticks[instanceID]
	if !exists {
		return
	}
	sdl.CloseJoystick(info.joystick)
	delete(b.joysticks, instanceID)
	for i, id := range b.order {
		if id == instanceID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	slog.Debug("Joystick closed", "name", info.name)

	if !b.hasActive || b.activeID != instanceID {
		return
	}
	// Report one disconnected poll before a promoted joystick so edge state
	// is reset between devices.
	b.hasActive = false
	b.switched = true
	for _, id := range b.order {
		if sdl.JoystickConnected(b.joysticks[id].joystick) {
			b.activeID, b.hasActive = id, true
			slog.Debug("Active joystick switched", "name", b.joysticks[id].name)
			break
		}
	}
}

func readSnapshot(info *joystickInfo) gamepad.Snapshot {
	js := info.joystick
	s := gamepad.NewSnapshot()

	numAxes := sdl.GetNumJoystickAxes(js)
	for i := int32(0); i < numAxes; i++ {
		s.Axes[info.mapping.AxisName(i)] = sdl.GetJoystickAxis(js, i)
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	for i := int32(0); i < numButtons; i++ {
		s.Buttons[info.mapping.ButtonName(i)] = sdl.GetJoystickButton(js, i)
	}

	if info.mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		hat := sdl.GetJoystickHat(js, 0)
		s.Buttons["dpad_up"] = hat&hatUp != 0
		s.Buttons["dpad_right"] = hat&hatRight != 0
		s.Buttons["dpad_down"] = hat&hatDown != 0
		s.Buttons["dpad_left"] = hat&hatLeft != 0
	}
	return s
}
