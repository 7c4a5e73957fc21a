package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/hub"
	"github.com/soar/inputnav/internal/mainloop"
	"github.com/soar/inputnav/internal/menu"
	"github.com/soar/inputnav/internal/nav"
)

type fakePublisher struct {
	mu     sync.Mutex
	views  []menu.View
	events []gamepad.ConnectionEvent
}

func (p *fakePublisher) Publish(v menu.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, v)
}

func (p *fakePublisher) PublishEvent(ev gamepad.ConnectionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *fakePublisher) last(t *testing.T) menu.View {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.views)
	return p.views[len(p.views)-1]
}

func newTestWeb(t *testing.T) (*Web, *fakePublisher, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s, err := NewSession(Options{Grid: true})
	require.NoError(t, err)

	loop := mainloop.New(0)
	go loop.Run(ctx)

	pub := &fakePublisher{}
	w := NewWeb(s, loop, pub)
	flush := func() { require.NoError(t, loop.Call(ctx, func() {})) }
	return w, pub, flush
}

func TestWebStartPublishesView(t *testing.T) {
	w, pub, flush := newTestWeb(t)
	w.Start()
	flush()

	v := pub.last(t)
	assert.Equal(t, "play", v.Selected)
	assert.True(t, v.Grid)
	assert.False(t, v.Connected)
}

func TestWebGamepadAndConnection(t *testing.T) {
	w, pub, flush := newTestWeb(t)

	var statuses []string
	w.OnStatus = func(s string) { statuses = append(statuses, s) }

	w.ConnectionChanged(gamepad.ConnectionEvent{Connected: true, Descriptor: "Pad (xbox)"})
	w.Intent(nav.Down)
	flush()

	v := pub.last(t)
	assert.True(t, v.Connected)
	assert.Equal(t, "Pad (xbox)", v.Device)
	assert.Equal(t, "sound", v.Selected)
	assert.Equal(t, "gamepad", v.Modality)
	assert.Equal(t, []string{"Controller: Pad (xbox)"}, statuses)
	assert.Len(t, pub.events, 1)
}

func TestWebConnectionSurvivesFullQueue(t *testing.T) {
	s, err := NewSession(Options{Grid: true})
	require.NoError(t, err)

	loop := mainloop.New(1)
	pub := &fakePublisher{}
	w := NewWeb(s, loop, pub)

	var statuses []string
	w.OnStatus = func(s string) { statuses = append(statuses, s) }

	w.Intent(nav.Down)
	w.ConnectionChanged(gamepad.ConnectionEvent{Connected: true, Descriptor: "Pad (xbox)"})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go loop.Run(ctx)
	require.NoError(t, loop.Call(ctx, func() {}))

	v := pub.last(t)
	assert.True(t, v.Connected, "dropped connection post is applied by the next queued work")
	assert.Equal(t, "Pad (xbox)", v.Device)
	assert.Equal(t, "sound", v.Selected)
	assert.Equal(t, []string{"Controller: Pad (xbox)"}, statuses)
}

func TestWebClientCommands(t *testing.T) {
	w, pub, flush := newTestWeb(t)

	var grid []bool
	w.OnGrid = func(enabled bool) { grid = append(grid, enabled) }

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientKey, Key: "ArrowRight"})
	flush()
	assert.Equal(t, "multiplayer", pub.last(t).Selected)

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientKey, Key: "Tab", Shift: true})
	flush()
	assert.Equal(t, "play", pub.last(t).Selected)

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientClick, ID: "controls"})
	flush()
	v := pub.last(t)
	assert.Equal(t, "invert_y", v.Selected)
	assert.Equal(t, "pointer", v.Modality)

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientIntent, Intent: "cancel"})
	flush()
	assert.Equal(t, "controls", pub.last(t).Selected)

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientHover, ID: "quit"})
	flush()
	assert.Equal(t, "quit", pub.last(t).Selected)

	w.HandleClientMessage("c1", hub.ClientMessage{Type: hub.ClientGrid, Enabled: false})
	w.HandleClientMessage("c1", hub.ClientMessage{Type: "bogus"})
	flush()
	assert.False(t, pub.last(t).Grid)
	assert.Equal(t, []bool{false}, grid)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "No controller", Status(false, ""))
	assert.Equal(t, "Controller: Pad", Status(true, "Pad"))
}
