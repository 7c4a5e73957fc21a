// Package input normalizes keyboard, pointer and gamepad signals into one
// stream of navigation intents applied to a focus registry.
package input

import (
	"log/slog"
	"time"

	"github.com/soar/inputnav/internal/nav"
)

// DefaultDebounce is how long pointer hover is ignored after a directional
// keyboard or gamepad move.
const DefaultDebounce = 100 * time.Millisecond

// Modality identifies the kind of device that produced the last input.
type Modality uint8

const (
	ModalityNone Modality = iota
	Keyboard
	Pointer
	Gamepad
)

var modalityNames = map[Modality]string{
	ModalityNone: "none",
	Keyboard:     "keyboard",
	Pointer:      "pointer",
	Gamepad:      "gamepad",
}

func (m Modality) String() string {
	return modalityNames[m]
}

// Navigator is the registry surface the Mapper drives. *nav.Registry
// implements it.
type Navigator interface {
	Navigate(intent nav.Intent) bool
	SelectControl(control any) bool
	ActivateSelected() bool
}

// Mapper turns raw host input into registry calls. It must be used from the
// same goroutine as the Navigator it drives.
type Mapper struct {
	nav      Navigator
	debounce time.Duration
	now      func() time.Time
	onCancel func(Modality) bool

	last            Modality
	lastDirectional time.Time
}

type Option func(*Mapper)

// WithDebounce sets the hover suppression window.
func WithDebounce(d time.Duration) Option {
	return func(m *Mapper) {
		if d >= 0 {
			m.debounce = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Mapper) {
		m.now = now
	}
}

// WithCancelHandler routes Cancel intents to the host, which reports whether
// it handled them.
func WithCancelHandler(fn func(Modality) bool) Option {
	return func(m *Mapper) {
		m.onCancel = fn
	}
}

func NewMapper(n Navigator, opts ...Option) *Mapper {
	m := &Mapper{
		nav:      n,
		debounce: DefaultDebounce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LastModality returns the device kind that produced the last accepted input.
func (m *Mapper) LastModality() Modality {
	return m.last
}

// HandleKey handles a key press such as "ArrowUp", "tab" or "shift+tab".
func (m *Mapper) HandleKey(key string, mods Modifier) bool {
	intent, ok := KeyIntent(key, mods)
	if !ok {
		return false
	}
	return m.HandleIntent(intent, Keyboard)
}

// HandleGamepad handles an intent name decoded from a controller.
func (m *Mapper) HandleGamepad(intentName string) bool {
	intent, ok := nav.ParseIntent(intentName)
	if !ok {
		slog.Debug("Ignoring unknown gamepad intent", "intent", intentName)
		return false
	}
	return m.HandleIntent(intent, Gamepad)
}

// HandleIntent applies an intent produced by the given modality.
func (m *Mapper) HandleIntent(intent nav.Intent, source Modality) bool {
	m.last = source
	if intent.IsDirectional() {
		m.lastDirectional = m.now()
	}

	if intent == nav.Cancel {
		if m.onCancel == nil {
			return false
		}
		return m.onCancel(source)
	}
	return m.nav.Navigate(intent)
}

// NotifyHover selects the control under the pointer. Hover arriving shortly
// after a directional move from another modality is dropped so a resting
// pointer does not steal the selection back.
func (m *Mapper) NotifyHover(control any) bool {
	if m.suppressHover() {
		return false
	}
	m.last = Pointer
	return m.nav.SelectControl(control)
}

// Click selects and activates the control under the pointer.
func (m *Mapper) Click(control any) bool {
	m.last = Pointer
	if !m.nav.SelectControl(control) {
		return false
	}
	return m.nav.ActivateSelected()
}

func (m *Mapper) suppressHover() bool {
	if m.last != Keyboard && m.last != Gamepad {
		return false
	}
	return m.now().Sub(m.lastDirectional) < m.debounce
}
