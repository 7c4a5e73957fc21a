// Package app ties the focus registry, the input mapper and the demo menu
// together for the hosts.
package app

import (
	"fmt"
	"time"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/input"
	"github.com/soar/inputnav/internal/menu"
	"github.com/soar/inputnav/internal/nav"
)

// Options configures a Session.
type Options struct {
	Grid     bool
	Debounce time.Duration
	OnQuit   func()
}

// Session is one mounted menu plus its input state. It is not safe for
// concurrent use; hosts drive it from their UI goroutine.
type Session struct {
	Registry *nav.Registry
	Menu     *menu.Menu
	Mapper   *input.Mapper

	connected bool
	device    string
}

func NewSession(opts Options) (*Session, error) {
	reg := nav.NewRegistry()
	reg.SetGridNavigation(opts.Grid)

	m := menu.New(reg)
	if err := m.Mount(menu.DefaultScreen(opts.OnQuit)); err != nil {
		return nil, fmt.Errorf("mounting menu: %w", err)
	}

	s := &Session{Registry: reg, Menu: m}
	s.Mapper = input.NewMapper(reg,
		input.WithDebounce(opts.Debounce),
		input.WithCancelHandler(func(input.Modality) bool { return m.Back() }))
	return s, nil
}

// SetConnection records a controller connection change.
func (s *Session) SetConnection(ev gamepad.ConnectionEvent) {
	s.connected = ev.Connected
	s.device = ev.Descriptor
}

// Connected reports the last known controller state and descriptor.
func (s *Session) Connected() (bool, string) {
	return s.connected, s.device
}

// Hover selects the widget with id under the pointer.
func (s *Session) Hover(id string) bool {
	w, ok := s.Menu.Find(id)
	if !ok {
		return false
	}
	return s.Mapper.NotifyHover(w)
}

// Click selects and activates the widget with id.
func (s *Session) Click(id string) bool {
	w, ok := s.Menu.Find(id)
	if !ok {
		return false
	}
	return s.Mapper.Click(w)
}

// View renders the menu with connection and modality details.
func (s *Session) View() menu.View {
	v := s.Menu.View()
	v.Connected = s.connected
	v.Device = s.device
	v.Modality = s.Mapper.LastModality().String()
	return v
}

// Status is a one-line controller status for trays and footers.
func Status(connected bool, device string) string {
	if !connected {
		return "No controller"
	}
	return "Controller: " + device
}
