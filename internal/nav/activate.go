package nav

// Invoker is a control that runs a bound action, like a button.
type Invoker interface {
	Invoke()
}

// Toggler is a control holding a boolean, like a checkbox.
type Toggler interface {
	Toggle() bool
}

// Expander is a control that opens and closes a group of child controls.
type Expander interface {
	Expanded() bool
	SetExpanded(open bool)
	// FirstChild returns the control to focus after expanding, or nil.
	FirstChild() any
}

// ActivateSelected dispatches the selected item's capability and then its
// OnActivated callback. It reports false when nothing handled the activation.
func (r *Registry) ActivateSelected() bool {
	it := r.current
	if it == nil {
		return false
	}

	handled := r.dispatch(it.Control)
	if it.OnActivated != nil {
		it.OnActivated()
		handled = true
	}
	return handled
}

// dispatch checks capabilities in a fixed order: Invoker, Toggler, Expander.
// Unknown control kinds are ignored.
func (r *Registry) dispatch(control any) bool {
	switch c := control.(type) {
	case Invoker:
		c.Invoke()
	case Toggler:
		c.Toggle()
	case Expander:
		if c.Expanded() {
			c.SetExpanded(false)
			return true
		}
		c.SetExpanded(true)
		if child := c.FirstChild(); child != nil {
			r.SelectControl(child)
		}
	default:
		return false
	}
	return true
}
