// Package nav owns the set of focusable items on a screen and computes the next
// selection for a navigation intent, either in linear tab order or spatially on
// a row/column grid.
//
// A Registry is not safe for concurrent use. Hosts mutate it from their UI
// thread only and hand device input to that thread instead of calling in from
// pollers.
package nav

import (
	"cmp"
	"reflect"
	"slices"
)

// Item is a focusable control tracked by the Registry.
type Item struct {
	Control     any
	TabIndex    int
	Row         int
	Column      int
	Enabled     bool
	OnSelected  func()
	OnActivated func()
}

// Registration declares one focusable control. The zero value of Disabled
// registers the control enabled.
type Registration struct {
	Control     any
	TabIndex    int
	Row         int
	Column      int
	Disabled    bool
	OnSelected  func()
	OnActivated func()
}

// SelectionListener observes selection changes. selected is false when the
// selection was cleared.
type SelectionListener func(item Item, selected bool)

// Registry is the spatial focus registry.
type Registry struct {
	items     []*Item
	current   *Item
	grid      bool
	listeners []SelectionListener
}

func NewRegistry() *Registry {
	return &Registry{}
}

// OnSelectionChanged adds a listener fired after every selection change.
func (r *Registry) OnSelectionChanged(fn SelectionListener) {
	if fn != nil {
		r.listeners = append(r.listeners, fn)
	}
}

// SetGridNavigation switches directional intents between grid search and
// tab-order aliases.
func (r *Registry) SetGridNavigation(enabled bool) {
	r.grid = enabled
}

func (r *Registry) GridNavigation() bool {
	return r.grid
}

// Register adds a control and keeps the items stably sorted by tab index. The
// first registered item is selected when it is enabled. Nil, non-comparable or
// duplicate controls and negative grid coordinates are rejected.
func (r *Registry) Register(reg Registration) bool {
	if !validControl(reg.Control) || reg.Row < 0 || reg.Column < 0 {
		return false
	}
	if r.indexOf(reg.Control) >= 0 {
		return false
	}

	it := &Item{
		Control:     reg.Control,
		TabIndex:    reg.TabIndex,
		Row:         reg.Row,
		Column:      reg.Column,
		Enabled:     !reg.Disabled,
		OnSelected:  reg.OnSelected,
		OnActivated: reg.OnActivated,
	}
	r.items = append(r.items, it)
	slices.SortStableFunc(r.items, func(a, b *Item) int {
		return cmp.Compare(a.TabIndex, b.TabIndex)
	})

	if len(r.items) == 1 && it.Enabled {
		r.selectItem(it)
	}
	return true
}

// Unregister removes a control. When it was selected, the selection moves to
// the next enabled item in tab order.
func (r *Registry) Unregister(control any) bool {
	idx := r.indexOf(control)
	if idx < 0 {
		return false
	}
	removed := r.items[idx]
	r.items = slices.Delete(r.items, idx, idx+1)
	if removed == r.current {
		r.current = nil
		r.reselectFrom(idx)
	}
	return true
}

// Clear drops every item, typically on a screen change.
func (r *Registry) Clear() {
	r.items = nil
	if r.current != nil {
		r.current = nil
		r.notify(nil)
	}
}

// SetEnabled toggles whether a control takes part in navigation. Disabling the
// selected control moves the selection to the next enabled item.
func (r *Registry) SetEnabled(control any, enabled bool) bool {
	idx := r.indexOf(control)
	if idx < 0 {
		return false
	}
	it := r.items[idx]
	if it.Enabled == enabled {
		return true
	}
	it.Enabled = enabled
	if !enabled && it == r.current {
		r.current = nil
		r.reselectFrom(idx + 1)
	}
	return true
}

// Len returns the number of registered items, enabled or not.
func (r *Registry) Len() int {
	return len(r.items)
}

// Items returns a copy of the registered items in tab order.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.items))
	for i, it := range r.items {
		out[i] = *it
	}
	return out
}

// Selected returns the selected item, if any.
func (r *Registry) Selected() (Item, bool) {
	if r.current == nil {
		return Item{}, false
	}
	return *r.current, true
}

// SelectedIndex returns the position of the selection in tab order, or -1.
func (r *Registry) SelectedIndex() int {
	return r.indexOfItem(r.current)
}

// Select selects the item at index. It is a no-op returning false when index
// is out of range or the item is disabled.
func (r *Registry) Select(index int) bool {
	if index < 0 || index >= len(r.items) {
		return false
	}
	it := r.items[index]
	if !it.Enabled {
		return false
	}
	r.selectItem(it)
	return true
}

// SelectControl selects the item registered for control.
func (r *Registry) SelectControl(control any) bool {
	idx := r.indexOf(control)
	if idx < 0 {
		return false
	}
	return r.Select(idx)
}

// SelectNext moves forward in tab order over enabled items, wrapping around.
func (r *Registry) SelectNext() bool {
	return r.step(1)
}

// SelectPrevious moves backward in tab order over enabled items, wrapping around.
func (r *Registry) SelectPrevious() bool {
	return r.step(-1)
}

func (r *Registry) SelectUp() bool {
	if !r.grid {
		return r.SelectPrevious()
	}
	return r.moveVertical(-1)
}

func (r *Registry) SelectDown() bool {
	if !r.grid {
		return r.SelectNext()
	}
	return r.moveVertical(1)
}

func (r *Registry) SelectLeft() bool {
	if !r.grid {
		return r.SelectPrevious()
	}
	return r.moveHorizontal(-1)
}

func (r *Registry) SelectRight() bool {
	if !r.grid {
		return r.SelectNext()
	}
	return r.moveHorizontal(1)
}

// Navigate applies a navigation intent. Cancel is left to the host and
// reports false.
func (r *Registry) Navigate(intent Intent) bool {
	switch intent {
	case Up:
		return r.SelectUp()
	case Down:
		return r.SelectDown()
	case Left:
		return r.SelectLeft()
	case Right:
		return r.SelectRight()
	case Next:
		return r.SelectNext()
	case Previous:
		return r.SelectPrevious()
	case Confirm:
		return r.ActivateSelected()
	default:
		return false
	}
}

func (r *Registry) step(delta int) bool {
	n := len(r.items)
	if n == 0 {
		return false
	}

	start := r.indexOfItem(r.current)
	if start < 0 {
		// The first step from here lands on index 0 going forward, n-1 going back.
		start = 0
		if delta > 0 {
			start = n - 1
		}
	}

	for i := 1; i <= n; i++ {
		it := r.items[((start+delta*i)%n+n)%n]
		if it.Enabled {
			return r.moveTo(it)
		}
	}
	return false
}

func (r *Registry) moveVertical(dir int) bool {
	cur := r.current
	if cur == nil {
		return r.SelectNext()
	}

	var best *Item
	bestDist, bestCross := 0, 0
	for _, it := range r.items {
		if !it.Enabled || it == cur {
			continue
		}
		dist := (it.Row - cur.Row) * dir
		if dist <= 0 {
			continue
		}
		cross := absInt(it.Column - cur.Column)
		if best == nil || dist < bestDist || (dist == bestDist && cross < bestCross) {
			best, bestDist, bestCross = it, dist, cross
		}
	}

	if best == nil {
		best = r.wrapVertical(dir, cur)
	}
	return r.moveTo(best)
}

// wrapVertical picks the item on the opposite extreme row: the largest enabled
// row when moving up, the smallest when moving down.
func (r *Registry) wrapVertical(dir int, cur *Item) *Item {
	row, found := 0, false
	for _, it := range r.items {
		if !it.Enabled {
			continue
		}
		if !found || (dir < 0 && it.Row > row) || (dir > 0 && it.Row < row) {
			row, found = it.Row, true
		}
	}
	if !found {
		return nil
	}

	var best *Item
	bestCross := 0
	for _, it := range r.items {
		if !it.Enabled || it.Row != row {
			continue
		}
		cross := absInt(it.Column - cur.Column)
		if best == nil || cross < bestCross {
			best, bestCross = it, cross
		}
	}
	return best
}

func (r *Registry) moveHorizontal(dir int) bool {
	cur := r.current
	if cur == nil {
		return r.SelectNext()
	}

	var best *Item
	bestDist := 0
	for _, it := range r.items {
		if !it.Enabled || it == cur || it.Row != cur.Row {
			continue
		}
		dist := (it.Column - cur.Column) * dir
		if dist <= 0 {
			continue
		}
		if best == nil || dist < bestDist {
			best, bestDist = it, dist
		}
	}

	if best == nil {
		// Horizontal wraparound stays within the current row.
		for _, it := range r.items {
			if !it.Enabled || it == cur || it.Row != cur.Row {
				continue
			}
			if best == nil || (dir > 0 && it.Column < best.Column) || (dir < 0 && it.Column > best.Column) {
				best = it
			}
		}
	}
	return r.moveTo(best)
}

// reselectFrom selects the first enabled item at or after idx, wrapping, or
// clears the selection when none is left.
func (r *Registry) reselectFrom(idx int) {
	n := len(r.items)
	for i := 0; i < n; i++ {
		it := r.items[(idx+i)%n]
		if it.Enabled {
			r.selectItem(it)
			return
		}
	}
	r.notify(nil)
}

func (r *Registry) moveTo(it *Item) bool {
	if it == nil || it == r.current {
		return false
	}
	r.selectItem(it)
	return true
}

func (r *Registry) selectItem(it *Item) {
	if it == r.current {
		return
	}
	r.current = it
	if it.OnSelected != nil {
		it.OnSelected()
	}
	r.notify(it)
}

func (r *Registry) notify(it *Item) {
	for _, fn := range r.listeners {
		if it == nil {
			fn(Item{}, false)
		} else {
			fn(*it, true)
		}
	}
}

func (r *Registry) indexOf(control any) int {
	if !validControl(control) {
		return -1
	}
	return slices.IndexFunc(r.items, func(it *Item) bool {
		return it.Control == control
	})
}

func (r *Registry) indexOfItem(target *Item) int {
	if target == nil {
		return -1
	}
	return slices.Index(r.items, target)
}

func validControl(control any) bool {
	if control == nil {
		return false
	}
	v := reflect.ValueOf(control)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}
	return v.Type().Comparable()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
