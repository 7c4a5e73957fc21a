// Package menu is a small declarative menu used by the demo hosts to drive the
// focus registry.
package menu

import (
	"fmt"

	"github.com/soar/inputnav/internal/nav"
)

// Placement puts a widget on the grid.
type Placement struct {
	Widget   Widget
	Row      int
	Column   int
	TabIndex int
	Disabled bool
}

// Screen is a titled set of placements.
type Screen struct {
	Title      string
	Placements []Placement
}

// Menu mounts a Screen into a registry and keeps the widget lookup tables
// hosts need for pointer input and rendering.
type Menu struct {
	reg     *nav.Registry
	screen  Screen
	widgets map[string]Widget
	place   map[Widget]Placement
	parent  map[Widget]*Group
	order   []Widget
}

func New(reg *nav.Registry) *Menu {
	return &Menu{reg: reg}
}

// Registry returns the registry the menu is mounted into.
func (m *Menu) Registry() *nav.Registry {
	return m.reg
}

// Title returns the mounted screen's title.
func (m *Menu) Title() string {
	return m.screen.Title
}

// Mount clears the registry and registers every widget of the screen,
// including collapsed group children.
func (m *Menu) Mount(screen Screen) error {
	m.reg.Clear()
	m.screen = screen
	m.widgets = make(map[string]Widget)
	m.place = make(map[Widget]Placement)
	m.parent = make(map[Widget]*Group)
	m.order = nil

	var regs []nav.Registration
	// visible is false below any collapsed group.
	var add func(p Placement, parent *Group, visible bool) error
	add = func(p Placement, parent *Group, visible bool) error {
		if p.Widget == nil {
			return fmt.Errorf("menu %q: placement at row %d column %d has no widget", screen.Title, p.Row, p.Column)
		}
		id := p.Widget.ID()
		if _, dup := m.widgets[id]; dup {
			return fmt.Errorf("menu %q: duplicate widget id %q", screen.Title, id)
		}
		m.widgets[id] = p.Widget
		m.place[p.Widget] = p
		m.order = append(m.order, p.Widget)

		if parent != nil {
			m.parent[p.Widget] = parent
		}
		regs = append(regs, nav.Registration{
			Control:  p.Widget,
			TabIndex: p.TabIndex,
			Row:      p.Row,
			Column:   p.Column,
			Disabled: p.Disabled || !visible,
		})

		if g, ok := p.Widget.(*Group); ok {
			g.onExpand = m.expandChanged
			for _, child := range g.Children {
				if err := add(child, g, visible && g.Expanded()); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, p := range screen.Placements {
		if err := add(p, nil, true); err != nil {
			return err
		}
	}
	for _, r := range regs {
		if !m.reg.Register(r) {
			return fmt.Errorf("menu %q: registry rejected %q", screen.Title, r.Control.(Widget).ID())
		}
	}
	return nil
}

// Find returns the widget with the given id.
func (m *Menu) Find(id string) (Widget, bool) {
	w, ok := m.widgets[id]
	return w, ok
}

// Parent returns the group containing w, if any.
func (m *Menu) Parent(w Widget) (*Group, bool) {
	g, ok := m.parent[w]
	return g, ok
}

// Back collapses the group around the selected widget, or the selected group
// itself when it is expanded, and selects that group. It reports whether
// anything changed.
func (m *Menu) Back() bool {
	it, ok := m.reg.Selected()
	if !ok {
		return false
	}
	w, _ := it.Control.(Widget)
	if g, ok := m.parent[w]; ok {
		m.reg.SelectControl(g)
		g.SetExpanded(false)
		return true
	}
	if g, ok := w.(*Group); ok && g.Expanded() {
		g.SetExpanded(false)
		return true
	}
	return false
}

func (m *Menu) expandChanged(g *Group, expanded bool) {
	for _, child := range g.Children {
		m.setSubtreeEnabled(child, expanded)
	}
}

func (m *Menu) setSubtreeEnabled(p Placement, enabled bool) {
	m.reg.SetEnabled(p.Widget, enabled && !p.Disabled)
	g, ok := p.Widget.(*Group)
	if !ok {
		return
	}
	for _, child := range g.Children {
		m.setSubtreeEnabled(child, enabled && g.Expanded())
	}
}
