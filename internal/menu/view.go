package menu

import "slices"

// ItemView is the rendered state of one widget.
type ItemView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Parent   string `json:"parent,omitempty"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Enabled  bool   `json:"enabled"`
	Selected bool   `json:"selected"`
	On       bool   `json:"on,omitempty"`
	Expanded bool   `json:"expanded,omitempty"`
	Presses  int    `json:"presses,omitempty"`
}

// View is everything a client needs to draw the menu.
type View struct {
	Title     string     `json:"title"`
	Grid      bool       `json:"grid"`
	Connected bool       `json:"connected"`
	Device    string     `json:"device"`
	Modality  string     `json:"modality"`
	Selected  string     `json:"selected"`
	Items     []ItemView `json:"items"`
}

// Delta holds only the fields of a View that changed.
type Delta struct {
	Title     *string     `json:"title,omitempty"`
	Grid      *bool       `json:"grid,omitempty"`
	Connected *bool       `json:"connected,omitempty"`
	Device    *string     `json:"device,omitempty"`
	Modality  *string     `json:"modality,omitempty"`
	Selected  *string     `json:"selected,omitempty"`
	Items     *[]ItemView `json:"items,omitempty"`
}

func (d *Delta) IsEmpty() bool {
	return d.Title == nil &&
		d.Grid == nil &&
		d.Connected == nil &&
		d.Device == nil &&
		d.Modality == nil &&
		d.Selected == nil &&
		d.Items == nil
}

func ComputeDelta(old, new_ View) *Delta {
	d := &Delta{}

	if old.Title != new_.Title {
		d.Title = &new_.Title
	}
	if old.Grid != new_.Grid {
		d.Grid = &new_.Grid
	}
	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.Device != new_.Device {
		d.Device = &new_.Device
	}
	if old.Modality != new_.Modality {
		d.Modality = &new_.Modality
	}
	if old.Selected != new_.Selected {
		d.Selected = &new_.Selected
	}
	if !slices.Equal(old.Items, new_.Items) {
		d.Items = &new_.Items
	}

	return d
}

// View renders the mounted screen. Device fields are left for the host.
func (m *Menu) View() View {
	v := View{
		Title: m.screen.Title,
		Grid:  m.reg.GridNavigation(),
	}

	enabled := make(map[Widget]bool, len(m.order))
	for _, it := range m.reg.Items() {
		if w, ok := it.Control.(Widget); ok {
			enabled[w] = it.Enabled
		}
	}
	var selected Widget
	if it, ok := m.reg.Selected(); ok {
		selected, _ = it.Control.(Widget)
		if selected != nil {
			v.Selected = selected.ID()
		}
	}

	v.Items = make([]ItemView, 0, len(m.order))
	for _, w := range m.order {
		p := m.place[w]
		iv := ItemView{
			ID:       w.ID(),
			Label:    w.Label(),
			Kind:     w.Kind(),
			Row:      p.Row,
			Column:   p.Column,
			Enabled:  enabled[w],
			Selected: w == selected,
		}
		if g, ok := m.parent[w]; ok {
			iv.Parent = g.ID()
		}
		switch w := w.(type) {
		case *Button:
			iv.Presses = w.Presses()
		case *Toggle:
			iv.On = w.On()
		case *Group:
			iv.Expanded = w.Expanded()
		}
		v.Items = append(v.Items, iv)
	}
	return v
}
