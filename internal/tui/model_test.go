package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputnav/internal/app"
	"github.com/soar/inputnav/internal/gamepad"
	"github.com/soar/inputnav/internal/nav"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	var m *Model
	s, err := app.NewSession(app.Options{Grid: true, OnQuit: func() { m.RequestQuit() }})
	require.NoError(t, err)
	m = New(s)
	return m
}

func selected(m *Model) string {
	return m.session.View().Selected
}

func TestKeysMoveSelection(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "multiplayer", selected(m))

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "play", selected(m))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.False(t, m.session.Registry.GridNavigation())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestGamepadMessages(t *testing.T) {
	m := newTestModel(t)

	m.Update(connectionMsg(gamepad.ConnectionEvent{Connected: true, Descriptor: "Pad (xbox)"}))
	m.Update(intentMsg(nav.Down))

	v := m.session.View()
	assert.True(t, v.Connected)
	assert.Equal(t, "sound", v.Selected)
	assert.Equal(t, "gamepad", v.Modality)
	assert.Contains(t, m.View(), "Controller: Pad (xbox)")
}

func TestMouseHitTest(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Main Menu")
	assert.NotContains(t, out, "Invert Y", "collapsed children are hidden")

	// Visible rows are 0, 1, 2 and 4; quit is in column 1 of the fourth.
	x := 1*(cellWidth+2+cellGap) + 2
	y := headerHeight + 3*cellHeight + 1

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, "quit", selected(m))

	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.NotNil(t, cmd, "quit button ends the program")

	_, ok := m.hitTest(1000, 1000)
	assert.False(t, ok)
}

func TestLayoutRowsHidesCollapsedChildren(t *testing.T) {
	m := newTestModel(t)
	rows := layoutRows(m.session.View().Items)
	require.Len(t, rows, 4)
	assert.Equal(t, "quit", rows[3][0].ID)

	ctl, _ := m.session.Menu.Find("controls")
	require.True(t, m.session.Click(ctl.ID()))
	rows = layoutRows(m.session.View().Items)
	assert.Len(t, rows, 5)
}
