package gamepad

import "errors"

var (
	// ErrNotConnected is returned by a probe when the queried slot is empty.
	ErrNotConnected = errors.New("gamepad: device not connected")
	// ErrUnavailable is returned when a probe's entry point cannot be loaded.
	ErrUnavailable = errors.New("gamepad: entry point unavailable")
)

// Backend reads raw controller state. Poll must return within a small bounded
// time and never blocks waiting for input.
type Backend interface {
	Poll() (bool, Snapshot)
	// Describe returns a human-readable device descriptor. Only meaningful
	// while connected.
	Describe() string
	Close() error
}

// ConnectionEvent reports a controller connection change.
type ConnectionEvent struct {
	Connected  bool   `json:"connected"`
	Descriptor string `json:"descriptor,omitempty"`
}

// NoneBackend is never connected.
type NoneBackend struct{}

func (NoneBackend) Poll() (bool, Snapshot) { return false, Snapshot{} }

func (NoneBackend) Describe() string { return "" }

func (NoneBackend) Close() error { return nil }
