package gamepad

import (
	"log/slog"

	"github.com/soar/inputnav/internal/nav"
)

// Update is the outcome of one detector tick.
type Update struct {
	// Change is set when the connection state flipped on this tick.
	Change  *ConnectionEvent
	Intents []nav.Intent
}

// Detector tracks connection transitions of a backend and decodes its
// snapshots while connected.
type Detector struct {
	backend   Backend
	decoder   *Decoder
	connected bool
}

func NewDetector(backend Backend, decoder *Decoder) *Detector {
	return &Detector{backend: backend, decoder: decoder}
}

// Connected reports the connection state seen on the last tick.
func (d *Detector) Connected() bool {
	return d.connected
}

// Tick polls the backend once.
func (d *Detector) Tick() Update {
	connected, snap := d.backend.Poll()

	var u Update
	switch {
	case connected && !d.connected:
		desc := d.backend.Describe()
		slog.Info("Controller connected", "device", desc)
		u.Change = &ConnectionEvent{Connected: true, Descriptor: desc}
	case !connected && d.connected:
		slog.Info("Controller disconnected")
		d.decoder.Reset()
		u.Change = &ConnectionEvent{Connected: false}
	}
	d.connected = connected

	if connected {
		u.Intents = d.decoder.Decode(snap)
	}
	return u
}
