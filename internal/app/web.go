package app

import (
	"log/slog"
	"sync"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/hub"
	"github.com/soar/inputnav/internal/input"
	"github.com/soar/inputnav/internal/mainloop"
	"github.com/soar/inputnav/internal/menu"
	"github.com/soar/inputnav/internal/nav"
)

// Publisher receives rendered views and connection events.
type Publisher interface {
	Publish(v menu.View)
	PublishEvent(ev gamepad.ConnectionEvent)
}

// Web serves a Session to WebSocket clients. Gamepad input and client
// commands arrive on other goroutines and are posted to the main loop.
type Web struct {
	session *Session
	loop    *mainloop.Loop
	pub     Publisher

	mu      sync.Mutex
	pending *gamepad.ConnectionEvent // latest connection change not yet applied

	// OnStatus, if set, runs on the main loop after a connection change.
	OnStatus func(status string)
	// OnGrid, if set, runs on the main loop when a client toggles grid mode.
	OnGrid func(enabled bool)
}

func NewWeb(s *Session, loop *mainloop.Loop, pub Publisher) *Web {
	return &Web{session: s, loop: loop, pub: pub}
}

// Start publishes the initial view.
func (w *Web) Start() {
	w.loop.Post(func() {
		w.applyConnection()
		w.publish()
	})
}

// Intent implements gamepad.Sink.
func (w *Web) Intent(intent nav.Intent) {
	w.loop.Post(func() {
		w.applyConnection()
		w.session.Mapper.HandleIntent(intent, input.Gamepad)
		w.publish()
	})
}

// ConnectionChanged implements gamepad.Sink. The latest event is kept until
// some posted work applies it, so a full queue cannot lose it.
func (w *Web) ConnectionChanged(ev gamepad.ConnectionEvent) {
	w.pub.PublishEvent(ev)

	w.mu.Lock()
	w.pending = &ev
	w.mu.Unlock()

	w.loop.Post(func() {
		w.applyConnection()
		w.publish()
	})
}

// applyConnection runs on the main loop.
func (w *Web) applyConnection() {
	w.mu.Lock()
	ev := w.pending
	w.pending = nil
	w.mu.Unlock()
	if ev == nil {
		return
	}

	w.session.SetConnection(*ev)
	if w.OnStatus != nil {
		w.OnStatus(Status(ev.Connected, ev.Descriptor))
	}
}

// SetGrid switches grid navigation, e.g. from the tray.
func (w *Web) SetGrid(enabled bool) {
	w.loop.Post(func() {
		w.applyConnection()
		w.session.Registry.SetGridNavigation(enabled)
		w.publish()
	})
}

// HandleClientMessage implements hub.CommandHandler.
func (w *Web) HandleClientMessage(clientID string, msg hub.ClientMessage) {
	w.loop.Post(func() {
		w.applyConnection()
		if w.apply(msg) {
			slog.Debug("Client command", "client", clientID, "type", msg.Type)
		}
		w.publish()
	})
}

func (w *Web) apply(msg hub.ClientMessage) bool {
	s := w.session
	switch msg.Type {
	case hub.ClientKey:
		return s.Mapper.HandleKey(msg.Key, modifiers(msg))
	case hub.ClientHover:
		return s.Hover(msg.ID)
	case hub.ClientClick:
		return s.Click(msg.ID)
	case hub.ClientGrid:
		s.Registry.SetGridNavigation(msg.Enabled)
		if w.OnGrid != nil {
			w.OnGrid(msg.Enabled)
		}
		return true
	case hub.ClientIntent:
		intent, ok := nav.ParseIntent(msg.Intent)
		if !ok {
			slog.Debug("Ignoring unknown client intent", "intent", msg.Intent)
			return false
		}
		return s.Mapper.HandleIntent(intent, input.Pointer)
	}
	slog.Warn("Unknown client message type", "type", msg.Type)
	return false
}

func (w *Web) publish() {
	w.pub.Publish(w.session.View())
}

func modifiers(msg hub.ClientMessage) input.Modifier {
	var mods input.Modifier
	if msg.Shift {
		mods |= input.ModShift
	}
	if msg.Ctrl {
		mods |= input.ModCtrl
	}
	if msg.Alt {
		mods |= input.ModAlt
	}
	if msg.Meta {
		mods |= input.ModMeta
	}
	return mods
}
