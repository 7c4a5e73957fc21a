package menu_test

import (
	"testing"

	"github.com/soar/inputnav/internal/menu"
	"github.com/soar/inputnav/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mount(t *testing.T, quit func()) (*menu.Menu, *nav.Registry) {
	t.Helper()

	reg := nav.NewRegistry()
	reg.SetGridNavigation(true)
	m := menu.New(reg)
	require.NoError(t, m.Mount(menu.DefaultScreen(quit)))
	return m, reg
}

func selectedID(t *testing.T, reg *nav.Registry) string {
	t.Helper()

	it, ok := reg.Selected()
	require.True(t, ok)
	return it.Control.(menu.Widget).ID()
}

func TestMountDefaultScreen(t *testing.T) {
	m, reg := mount(t, nil)

	assert.Equal(t, 12, reg.Len())
	assert.Equal(t, "play", selectedID(t, reg))

	v := m.View()
	assert.Equal(t, "Main Menu", v.Title)
	assert.True(t, v.Grid)
	assert.Equal(t, "play", v.Selected)
	require.Len(t, v.Items, 12)

	byID := map[string]menu.ItemView{}
	for _, iv := range v.Items {
		byID[iv.ID] = iv
	}
	assert.False(t, byID["continue"].Enabled)
	assert.False(t, byID["invert_y"].Enabled, "collapsed group children are disabled")
	assert.Equal(t, "controls", byID["invert_y"].Parent)
	assert.True(t, byID["sound"].On)
	assert.True(t, byID["play"].Selected)
}

func TestMountNestedGroupUnderCollapsedParent(t *testing.T) {
	leaf := menu.NewButton("leaf", "Leaf", nil)
	inner := menu.NewGroup("inner", "Inner", menu.Placement{Widget: leaf, Row: 2})
	inner.SetExpanded(true)
	outer := menu.NewGroup("outer", "Outer", menu.Placement{Widget: inner, Row: 1})

	reg := nav.NewRegistry()
	m := menu.New(reg)
	require.NoError(t, m.Mount(menu.Screen{
		Title:      "nested",
		Placements: []menu.Placement{{Widget: outer}},
	}))

	enabled := func(id string) bool {
		for _, iv := range m.View().Items {
			if iv.ID == id {
				return iv.Enabled
			}
		}
		t.Fatalf("no item %q", id)
		return false
	}
	assert.True(t, enabled("outer"))
	assert.False(t, enabled("inner"))
	assert.False(t, enabled("leaf"), "hidden below a collapsed ancestor")

	outer.SetExpanded(true)
	assert.True(t, enabled("inner"))
	assert.True(t, enabled("leaf"))
}

func TestMountRejectsDuplicateIDs(t *testing.T) {
	m := menu.New(nav.NewRegistry())
	err := m.Mount(menu.Screen{
		Title: "dup",
		Placements: []menu.Placement{
			{Widget: menu.NewButton("x", "X", nil)},
			{Widget: menu.NewButton("x", "X again", nil), Column: 1},
		},
	})
	assert.ErrorContains(t, err, "duplicate widget id")

	err = m.Mount(menu.Screen{Title: "empty", Placements: []menu.Placement{{}}})
	assert.ErrorContains(t, err, "no widget")
}

func TestGridSkipsDisabledAndCollapsed(t *testing.T) {
	_, reg := mount(t, nil)

	require.True(t, reg.Navigate(nav.Right))
	assert.Equal(t, "multiplayer", selectedID(t, reg), "disabled continue is skipped")

	require.True(t, reg.Navigate(nav.Down))
	assert.Equal(t, "subtitles", selectedID(t, reg))
	require.True(t, reg.Navigate(nav.Down))
	assert.Equal(t, "credits", selectedID(t, reg))
	require.True(t, reg.Navigate(nav.Down))
	assert.Equal(t, "quit", selectedID(t, reg), "collapsed row 3 is skipped")
}

func TestGroupExpandAndBack(t *testing.T) {
	m, reg := mount(t, nil)

	g, ok := m.Find("controls")
	require.True(t, ok)
	require.True(t, reg.SelectControl(g))

	require.True(t, reg.ActivateSelected())
	assert.True(t, g.(*menu.Group).Expanded())
	assert.Equal(t, "invert_y", selectedID(t, reg))

	require.True(t, reg.Navigate(nav.Right))
	assert.Equal(t, "vibration", selectedID(t, reg))

	require.True(t, m.Back())
	assert.False(t, g.(*menu.Group).Expanded())
	assert.Equal(t, "controls", selectedID(t, reg))

	assert.False(t, m.Back(), "nothing left to collapse")
}

func TestActivateWidgets(t *testing.T) {
	quits := 0
	m, reg := mount(t, func() { quits++ })

	sound, _ := m.Find("sound")
	require.True(t, reg.SelectControl(sound))
	require.True(t, reg.ActivateSelected())
	assert.False(t, sound.(*menu.Toggle).On())

	quit, _ := m.Find("quit")
	require.True(t, reg.SelectControl(quit))
	require.True(t, reg.ActivateSelected())
	assert.Equal(t, 1, quits)
	assert.Equal(t, 1, quit.(*menu.Button).Presses())
}

func TestComputeDelta(t *testing.T) {
	m, reg := mount(t, nil)

	before := m.View()
	assert.True(t, menu.ComputeDelta(before, before).IsEmpty())

	require.True(t, reg.Navigate(nav.Down))
	after := m.View()
	d := menu.ComputeDelta(before, after)
	require.NotNil(t, d.Selected)
	assert.Equal(t, "sound", *d.Selected)
	assert.NotNil(t, d.Items)
	assert.Nil(t, d.Grid)
	assert.Nil(t, d.Title)

	after.Connected = true
	d = menu.ComputeDelta(before, after)
	require.NotNil(t, d.Connected)
	assert.True(t, *d.Connected)
}
