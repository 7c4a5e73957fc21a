package menu

// Widget is a focusable menu control. Implementations are pointers so they
// can be used as registry controls.
type Widget interface {
	ID() string
	Label() string
	Kind() string
}

// Button runs OnPress when activated.
type Button struct {
	id      string
	label   string
	OnPress func()
	presses int
}

func NewButton(id, label string, onPress func()) *Button {
	return &Button{id: id, label: label, OnPress: onPress}
}

func (b *Button) ID() string    { return b.id }
func (b *Button) Label() string { return b.label }
func (b *Button) Kind() string  { return "button" }

// Presses returns how many times the button was activated.
func (b *Button) Presses() int { return b.presses }

func (b *Button) Invoke() {
	b.presses++
	if b.OnPress != nil {
		b.OnPress()
	}
}

// Toggle flips a boolean setting.
type Toggle struct {
	id       string
	label    string
	on       bool
	OnChange func(on bool)
}

func NewToggle(id, label string, on bool) *Toggle {
	return &Toggle{id: id, label: label, on: on}
}

func (t *Toggle) ID() string    { return t.id }
func (t *Toggle) Label() string { return t.label }
func (t *Toggle) Kind() string  { return "toggle" }
func (t *Toggle) On() bool      { return t.on }

func (t *Toggle) Toggle() bool {
	t.on = !t.on
	if t.OnChange != nil {
		t.OnChange(t.on)
	}
	return t.on
}

// Group is an expandable container. Its children are registered with the
// screen but stay disabled while the group is collapsed.
type Group struct {
	id       string
	label    string
	expanded bool
	Children []Placement

	onExpand func(g *Group, expanded bool)
}

func NewGroup(id, label string, children ...Placement) *Group {
	return &Group{id: id, label: label, Children: children}
}

func (g *Group) ID() string     { return g.id }
func (g *Group) Label() string  { return g.label }
func (g *Group) Kind() string   { return "group" }
func (g *Group) Expanded() bool { return g.expanded }

func (g *Group) SetExpanded(expanded bool) {
	if g.expanded == expanded {
		return
	}
	g.expanded = expanded
	if g.onExpand != nil {
		g.onExpand(g, expanded)
	}
}

// FirstChild returns the first enabled child widget in tab order, or nil.
func (g *Group) FirstChild() any {
	var first *Placement
	for i := range g.Children {
		p := &g.Children[i]
		if p.Disabled {
			continue
		}
		if first == nil || p.TabIndex < first.TabIndex {
			first = p
		}
	}
	if first == nil {
		return nil
	}
	return first.Widget
}
