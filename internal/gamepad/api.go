package gamepad

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	DefaultMaxFailures     = 3
	DefaultReprobeInterval = 2 * time.Second
	// MaxSlots is the number of user indices an API-call backend scans.
	MaxSlots = 4
)

// Packed button bits as reported by the controller API.
var padButtons = []struct {
	mask uint16
	name string
}{
	{0x0001, "dpad_up"},
	{0x0002, "dpad_down"},
	{0x0004, "dpad_left"},
	{0x0008, "dpad_right"},
	{0x0010, "start"},
	{0x0020, "back"},
	{0x0040, "l3"},
	{0x0080, "r3"},
	{0x0100, "lb"},
	{0x0200, "rb"},
	{0x1000, "a"},
	{0x2000, "b"},
	{0x4000, "x"},
	{0x8000, "y"},
}

// PadState is the packed controller state returned by an API-call probe.
type PadState struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// Snapshot unpacks the state into named buttons and axes. Stick Y axes are
// flipped so negative means up.
func (p PadState) Snapshot() Snapshot {
	s := NewSnapshot()
	for _, b := range padButtons {
		s.Buttons[b.name] = p.Buttons&b.mask != 0
	}
	s.Axes["left_x"] = p.ThumbLX
	s.Axes["left_y"] = flipAxis(p.ThumbLY)
	s.Axes["right_x"] = p.ThumbRX
	s.Axes["right_y"] = flipAxis(p.ThumbRY)
	s.Axes["lt"] = triggerAxis(p.LeftTrigger)
	s.Axes["rt"] = triggerAxis(p.RightTrigger)
	return s
}

func flipAxis(v int16) int16 {
	if v == math.MinInt16 {
		return math.MaxInt16
	}
	return -v
}

func triggerAxis(v uint8) int16 {
	return int16(int32(v) * math.MaxInt16 / math.MaxUint8)
}

// Entry is a resolved probe entry point.
type Entry struct {
	// State reads the controller in slot. It returns ErrNotConnected for an
	// empty slot.
	State func(slot uint32) (PadState, error)
	// Describe is optional.
	Describe func(slot uint32) (string, error)
}

// Probe is one versioned entry point. Load returns an error wrapping
// ErrUnavailable when the entry point is missing on this system.
type Probe struct {
	Name string
	Load func() (*Entry, error)
}

// APIConfig tunes an APIBackend.
type APIConfig struct {
	MaxFailures     int
	ReprobeInterval time.Duration
}

// APIBackend polls a controller through the first available of an ordered
// list of probes.
type APIBackend struct {
	probes []Probe
	cfg    APIConfig
	now    func() time.Time

	entry     *Entry
	entryName string
	lastWalk  time.Time
	walked    bool
	failures  int
	slot      uint32
	hasSlot   bool
}

func NewAPIBackend(probes []Probe, cfg APIConfig) *APIBackend {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = DefaultMaxFailures
	}
	if cfg.ReprobeInterval <= 0 {
		cfg.ReprobeInterval = DefaultReprobeInterval
	}
	return &APIBackend{
		probes: probes,
		cfg:    cfg,
		now:    time.Now,
	}
}

// ProbeName returns the name of the cached probe, or "".
func (a *APIBackend) ProbeName() string {
	return a.entryName
}

func (a *APIBackend) Poll() (bool, Snapshot) {
	if !a.resolve() {
		return false, Snapshot{}
	}

	if a.hasSlot {
		st, err := a.entry.State(a.slot)
		if err == nil {
			a.failures = 0
			return true, st.Snapshot()
		}
		a.hasSlot = false
		if errors.Is(err, ErrNotConnected) {
			// Report the loss for one poll so the detector sees a disconnect
			// before any other slot is picked up.
			a.failures = 0
		} else {
			a.fail(err)
		}
		return false, Snapshot{}
	}

	for slot := uint32(0); slot < MaxSlots; slot++ {
		st, err := a.entry.State(slot)
		if errors.Is(err, ErrNotConnected) {
			continue
		}
		if err != nil {
			a.fail(err)
			return false, Snapshot{}
		}
		a.failures = 0
		a.slot, a.hasSlot = slot, true
		return true, st.Snapshot()
	}
	a.failures = 0
	return false, Snapshot{}
}

func (a *APIBackend) Describe() string {
	if a.entry == nil || !a.hasSlot {
		return ""
	}
	if a.entry.Describe != nil {
		desc, err := a.entry.Describe(a.slot)
		if err == nil {
			return desc
		}
		slog.Debug("Controller capabilities unavailable", "probe", a.entryName, "error", err)
	}
	return fmt.Sprintf("%s slot %d", a.entryName, a.slot)
}

func (a *APIBackend) Close() error {
	a.entry = nil
	a.entryName = ""
	a.hasSlot = false
	return nil
}

// resolve returns true when a probe is cached, walking the probe list if the
// reprobe interval allows.
func (a *APIBackend) resolve() bool {
	if a.entry != nil {
		return true
	}
	now := a.now()
	if a.walked && now.Sub(a.lastWalk) < a.cfg.ReprobeInterval {
		return false
	}
	a.walked, a.lastWalk = true, now

	for _, p := range a.probes {
		entry, err := p.Load()
		if err != nil {
			slog.Debug("Controller probe unavailable", "probe", p.Name, "error", err)
			continue
		}
		slog.Info("Using controller probe", "probe", p.Name)
		a.entry, a.entryName = entry, p.Name
		a.failures = 0
		return true
	}
	return false
}

func (a *APIBackend) fail(err error) {
	a.failures++
	slog.Debug("Controller poll failed", "probe", a.entryName, "failures", a.failures, "error", err)
	if a.failures < a.cfg.MaxFailures {
		return
	}
	slog.Warn("Dropping controller probe after repeated failures", "probe", a.entryName, "failures", a.failures)
	a.entry, a.entryName = nil, ""
	a.failures = 0
	a.walked = false
}

// Controller sub-types reported by the capability query.
var subTypeNames = map[uint8]string{
	0x00: "unknown",
	0x01: "gamepad",
	0x02: "wheel",
	0x03: "arcade stick",
	0x04: "flight stick",
	0x05: "dance pad",
	0x06: "guitar",
	0x07: "guitar",
	0x08: "drum kit",
	0x0B: "bass guitar",
	0x13: "arcade pad",
}

// SubTypeName returns a readable name for a controller sub-type.
func SubTypeName(subType uint8) string {
	if name, ok := subTypeNames[subType]; ok {
		return name
	}
	return fmt.Sprintf("subtype 0x%02X", subType)
}
