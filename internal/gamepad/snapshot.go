package gamepad

import (
	"maps"
	"slices"
)

// Snapshot is the named state of one controller for a single poll.
type Snapshot struct {
	Buttons map[string]bool
	Axes    map[string]int16
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Buttons: make(map[string]bool),
		Axes:    make(map[string]int16),
	}
}

// Clone returns a deep copy so backends can keep mutating their own state.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Buttons: maps.Clone(s.Buttons),
		Axes:    maps.Clone(s.Axes),
	}
}

// ButtonNames returns button names in sorted order.
func (s Snapshot) ButtonNames() []string {
	return slices.Sorted(maps.Keys(s.Buttons))
}

// AxisNames returns axis names in sorted order.
func (s Snapshot) AxisNames() []string {
	return slices.Sorted(maps.Keys(s.Axes))
}
