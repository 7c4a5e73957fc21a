//go:build windows

package gamepad

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	errDeviceNotConnected = 1167
	xinputFlagGamepad     = 0x00000001
)

var xinputDLLs = []string{"xinput1_4.dll", "xinput1_3.dll", "xinput9_1_0.dll"}

type xinputGamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

type xinputState struct {
	PacketNumber uint32
	Gamepad      xinputGamepad
}

type xinputCapabilities struct {
	Type      uint8
	SubType   uint8
	Flags     uint16
	Gamepad   xinputGamepad
	Vibration [2]uint16
}

// XInputProbes returns the XInput entry points from newest to oldest.
func XInputProbes() []Probe {
	probes := make([]Probe, 0, len(xinputDLLs))
	for _, name := range xinputDLLs {
		probes = append(probes, Probe{Name: name, Load: loadXInput(name)})
	}
	return probes
}

func loadXInput(name string) func() (*Entry, error) {
	return func() (*Entry, error) {
		dll := windows.NewLazySystemDLL(name)
		getState := dll.NewProc("XInputGetState")
		if err := getState.Find(); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, ErrUnavailable, err)
		}

		entry := &Entry{
			State: func(slot uint32) (PadState, error) {
				var st xinputState
				r, _, _ := getState.Call(uintptr(slot), uintptr(unsafe.Pointer(&st)))
				switch r {
				case 0:
				case errDeviceNotConnected:
					return PadState{}, ErrNotConnected
				default:
					return PadState{}, fmt.Errorf("XInputGetState: %w", windows.Errno(r))
				}
				g := st.Gamepad
				return PadState{
					Buttons:      g.Buttons,
					LeftTrigger:  g.LeftTrigger,
					RightTrigger: g.RightTrigger,
					ThumbLX:      g.ThumbLX,
					ThumbLY:      g.ThumbLY,
					ThumbRX:      g.ThumbRX,
					ThumbRY:      g.ThumbRY,
				}, nil
			},
		}

		getCaps := dll.NewProc("XInputGetCapabilities")
		if getCaps.Find() == nil {
			entry.Describe = func(slot uint32) (string, error) {
				var caps xinputCapabilities
				r, _, _ := getCaps.Call(uintptr(slot), xinputFlagGamepad, uintptr(unsafe.Pointer(&caps)))
				if r != 0 {
					return "", fmt.Errorf("XInputGetCapabilities: %w", windows.Errno(r))
				}
				return fmt.Sprintf("XInput %s #%d (%s)", SubTypeName(caps.SubType), slot+1, name), nil
			}
		}
		return entry, nil
	}
}
