package nav_test

import (
	"testing"

	"github.com/soar/inputnav/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type control struct {
	name string
}

func newControls(names ...string) map[string]*control {
	out := make(map[string]*control, len(names))
	for _, n := range names {
		out[n] = &control{name: n}
	}
	return out
}

func selectedName(t *testing.T, r *nav.Registry) string {
	t.Helper()

	it, ok := r.Selected()
	if !ok {
		return ""
	}
	return it.Control.(*control).name
}

func order(r *nav.Registry) []string {
	var names []string
	for _, it := range r.Items() {
		names = append(names, it.Control.(*control).name)
	}
	return names
}

// gridABC builds A(tab0,row0,col0), B(tab1,row0,col1), C(tab2,row1,col0).
func gridABC(t *testing.T) (*nav.Registry, map[string]*control) {
	t.Helper()

	c := newControls("A", "B", "C")
	r := nav.NewRegistry()
	r.SetGridNavigation(true)
	require.True(t, r.Register(nav.Registration{Control: c["A"], TabIndex: 0, Row: 0, Column: 0}))
	require.True(t, r.Register(nav.Registration{Control: c["B"], TabIndex: 1, Row: 0, Column: 1}))
	require.True(t, r.Register(nav.Registration{Control: c["C"], TabIndex: 2, Row: 1, Column: 0}))
	return r, c
}

func TestRegisterOrder(t *testing.T) {
	t.Run("enumeration is a stable sort by tab index", func(t *testing.T) {
		c := newControls("a", "b", "c", "d", "e")
		r := nav.NewRegistry()

		r.Register(nav.Registration{Control: c["a"], TabIndex: 3})
		r.Register(nav.Registration{Control: c["b"], TabIndex: 1})
		r.Register(nav.Registration{Control: c["c"], TabIndex: 3})
		r.Register(nav.Registration{Control: c["d"], TabIndex: 0})
		r.Register(nav.Registration{Control: c["e"], TabIndex: 1})

		assert.Equal(t, []string{"d", "b", "e", "a", "c"}, order(r))
	})

	t.Run("first item is selected", func(t *testing.T) {
		c := newControls("a", "b")
		r := nav.NewRegistry()

		r.Register(nav.Registration{Control: c["a"], TabIndex: 5})
		r.Register(nav.Registration{Control: c["b"], TabIndex: 1})

		assert.Equal(t, "a", selectedName(t, r))
		assert.Equal(t, 1, r.SelectedIndex())
	})

	t.Run("disabled first item is not selected", func(t *testing.T) {
		c := newControls("a")
		r := nav.NewRegistry()

		r.Register(nav.Registration{Control: c["a"], Disabled: true})

		_, ok := r.Selected()
		assert.False(t, ok)
	})

	t.Run("invalid registrations are rejected", func(t *testing.T) {
		c := newControls("a")
		r := nav.NewRegistry()
		var nilControl *control

		assert.True(t, r.Register(nav.Registration{Control: c["a"]}))
		assert.False(t, r.Register(nav.Registration{Control: c["a"], TabIndex: 2}), "duplicate")
		assert.False(t, r.Register(nav.Registration{Control: nil}), "nil")
		assert.False(t, r.Register(nav.Registration{Control: nilControl}), "typed nil")
		assert.False(t, r.Register(nav.Registration{Control: []int{1}}), "not comparable")
		assert.False(t, r.Register(nav.Registration{Control: &control{}, Row: -1}), "negative row")
		assert.False(t, r.Register(nav.Registration{Control: &control{}, Column: -2}), "negative column")
		assert.Equal(t, 1, r.Len())
	})
}

func TestSelect(t *testing.T) {
	c := newControls("a", "b")
	r := nav.NewRegistry()
	r.Register(nav.Registration{Control: c["a"]})
	r.Register(nav.Registration{Control: c["b"], TabIndex: 1, Disabled: true})

	assert.False(t, r.Select(-1))
	assert.False(t, r.Select(2))
	assert.False(t, r.Select(1), "disabled")
	assert.Equal(t, "a", selectedName(t, r))

	r.SetEnabled(c["b"], true)
	assert.True(t, r.Select(1))
	assert.Equal(t, "b", selectedName(t, r))
}

func TestSelectCallbacks(t *testing.T) {
	c := newControls("a", "b")
	r := nav.NewRegistry()

	var focused []string
	var changes []string
	r.OnSelectionChanged(func(it nav.Item, selected bool) {
		if !selected {
			changes = append(changes, "<none>")
			return
		}
		changes = append(changes, it.Control.(*control).name)
	})

	r.Register(nav.Registration{Control: c["a"], OnSelected: func() { focused = append(focused, "a") }})
	r.Register(nav.Registration{Control: c["b"], TabIndex: 1, OnSelected: func() { focused = append(focused, "b") }})
	r.SelectNext()
	r.SelectNext()
	r.Clear()

	assert.Equal(t, []string{"a", "b", "a"}, focused)
	assert.Equal(t, []string{"a", "b", "a", "<none>"}, changes)
	assert.Equal(t, 0, r.Len())
}

func TestNextPreviousCycle(t *testing.T) {
	c := newControls("a", "b", "c", "d", "e")
	r := nav.NewRegistry()
	for i, n := range []string{"a", "b", "c", "d", "e"} {
		r.Register(nav.Registration{Control: c[n], TabIndex: i, Disabled: n == "c"})
	}
	r.SelectControl(c["b"])

	enabled := 4
	t.Run("next", func(t *testing.T) {
		var seen []string
		for i := 0; i < enabled; i++ {
			require.True(t, r.SelectNext())
			seen = append(seen, selectedName(t, r))
		}
		assert.Equal(t, []string{"d", "e", "a", "b"}, seen)
	})

	t.Run("previous", func(t *testing.T) {
		var seen []string
		for i := 0; i < enabled; i++ {
			require.True(t, r.SelectPrevious())
			seen = append(seen, selectedName(t, r))
		}
		assert.Equal(t, []string{"a", "e", "d", "b"}, seen)
	})
}

func TestNextPreviousWithoutSelection(t *testing.T) {
	c := newControls("a", "b", "c")
	build := func() *nav.Registry {
		r := nav.NewRegistry()
		r.Register(nav.Registration{Control: c["a"], Disabled: true})
		r.Register(nav.Registration{Control: c["b"], TabIndex: 1})
		r.Register(nav.Registration{Control: c["c"], TabIndex: 2})
		return r
	}

	r := build()
	require.True(t, r.SelectNext())
	assert.Equal(t, "b", selectedName(t, r))

	r = build()
	require.True(t, r.SelectPrevious())
	assert.Equal(t, "c", selectedName(t, r))
}

func TestSingleEnabledItemDoesNotMove(t *testing.T) {
	c := newControls("a", "b")
	r := nav.NewRegistry()
	r.Register(nav.Registration{Control: c["a"]})
	r.Register(nav.Registration{Control: c["b"], TabIndex: 1, Disabled: true})

	assert.False(t, r.SelectNext())
	assert.False(t, r.SelectPrevious())
	assert.Equal(t, "a", selectedName(t, r))
}

func TestGridExample(t *testing.T) {
	testCases := []struct {
		name     string
		from     string
		move     func(r *nav.Registry) bool
		expected string
	}{
		{"right from A", "A", (*nav.Registry).SelectRight, "B"},
		{"right from B wraps to A", "B", (*nav.Registry).SelectRight, "A"},
		{"left from A wraps to B", "A", (*nav.Registry).SelectLeft, "B"},
		{"down from A", "A", (*nav.Registry).SelectDown, "C"},
		{"up from C prefers same column", "C", (*nav.Registry).SelectUp, "A"},
		{"down from B goes to nearest column", "B", (*nav.Registry).SelectDown, "C"},
		{"down from C wraps to top row", "C", (*nav.Registry).SelectDown, "A"},
		{"up from B wraps to bottom row", "B", (*nav.Registry).SelectUp, "C"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, c := gridABC(t)
			require.True(t, r.SelectControl(c[tc.from]))

			assert.True(t, tc.move(r))
			assert.Equal(t, tc.expected, selectedName(t, r))
		})
	}
}

func TestGridLeftRightAloneInRow(t *testing.T) {
	r, c := gridABC(t)
	require.True(t, r.SelectControl(c["C"]))

	assert.False(t, r.SelectRight())
	assert.False(t, r.SelectLeft())
	assert.Equal(t, "C", selectedName(t, r))
}

func TestGridTieBreaks(t *testing.T) {
	t.Run("equal distance resolves to lower tab index", func(t *testing.T) {
		c := newControls("mid", "left", "right")
		r := nav.NewRegistry()
		r.SetGridNavigation(true)
		r.Register(nav.Registration{Control: c["mid"], TabIndex: 0, Row: 0, Column: 1})
		r.Register(nav.Registration{Control: c["right"], TabIndex: 2, Row: 2, Column: 2})
		r.Register(nav.Registration{Control: c["left"], TabIndex: 1, Row: 2, Column: 0})

		require.True(t, r.SelectDown())
		assert.Equal(t, "left", selectedName(t, r))
	})

	t.Run("nearest row wins over column distance", func(t *testing.T) {
		c := newControls("top", "far", "near")
		r := nav.NewRegistry()
		r.SetGridNavigation(true)
		r.Register(nav.Registration{Control: c["top"], TabIndex: 0, Row: 0, Column: 0})
		r.Register(nav.Registration{Control: c["far"], TabIndex: 1, Row: 7, Column: 0})
		r.Register(nav.Registration{Control: c["near"], TabIndex: 2, Row: 3, Column: 9})

		require.True(t, r.SelectDown())
		assert.Equal(t, "near", selectedName(t, r))
	})

	t.Run("rows need not be contiguous", func(t *testing.T) {
		c := newControls("a", "b", "c")
		r := nav.NewRegistry()
		r.SetGridNavigation(true)
		r.Register(nav.Registration{Control: c["a"], TabIndex: 0, Row: 2, Column: 4})
		r.Register(nav.Registration{Control: c["b"], TabIndex: 1, Row: 10, Column: 4})
		r.Register(nav.Registration{Control: c["c"], TabIndex: 2, Row: 2, Column: 30})

		require.True(t, r.SelectRight())
		assert.Equal(t, "c", selectedName(t, r))
		require.True(t, r.SelectDown())
		assert.Equal(t, "b", selectedName(t, r))
	})
}

func TestGridWrapIgnoresDisabledRows(t *testing.T) {
	c := newControls("a", "b", "c")
	r := nav.NewRegistry()
	r.SetGridNavigation(true)
	r.Register(nav.Registration{Control: c["a"], TabIndex: 0, Row: 0})
	r.Register(nav.Registration{Control: c["b"], TabIndex: 1, Row: 1})
	r.Register(nav.Registration{Control: c["c"], TabIndex: 2, Row: 5, Disabled: true})

	require.True(t, r.SelectUp())
	assert.Equal(t, "b", selectedName(t, r))
}

func TestGridDisabledAliasesTabOrder(t *testing.T) {
	r, c := gridABC(t)
	r.SetGridNavigation(false)
	require.True(t, r.SelectControl(c["A"]))

	require.True(t, r.SelectDown())
	assert.Equal(t, "B", selectedName(t, r))
	require.True(t, r.SelectRight())
	assert.Equal(t, "C", selectedName(t, r))
	require.True(t, r.SelectUp())
	assert.Equal(t, "B", selectedName(t, r))
	require.True(t, r.SelectLeft())
	assert.Equal(t, "A", selectedName(t, r))
}

func TestDisabledItemsLeaveCandidateSets(t *testing.T) {
	r, c := gridABC(t)
	require.True(t, r.SetEnabled(c["C"], false))

	assert.False(t, r.Select(2))

	require.True(t, r.SelectControl(c["A"]))
	assert.False(t, r.SelectDown(), "only row 0 remains, wrap lands on A itself")
	assert.Equal(t, "A", selectedName(t, r))

	require.True(t, r.SelectNext())
	require.True(t, r.SelectNext())
	assert.Equal(t, "A", selectedName(t, r))

	require.True(t, r.SetEnabled(c["C"], true))
	require.True(t, r.SelectDown())
	assert.Equal(t, "C", selectedName(t, r))
	assert.True(t, r.Select(0))
}

func TestDisablingSelectionMovesIt(t *testing.T) {
	r, c := gridABC(t)
	require.True(t, r.SelectControl(c["B"]))

	require.True(t, r.SetEnabled(c["B"], false))
	assert.Equal(t, "C", selectedName(t, r))

	r.SetEnabled(c["A"], false)
	r.SetEnabled(c["C"], false)
	_, ok := r.Selected()
	assert.False(t, ok)
}

func TestUnregisterKeepsSelectionIdentity(t *testing.T) {
	r, c := gridABC(t)
	require.True(t, r.SelectControl(c["B"]))

	extra := &control{name: "X"}
	require.True(t, r.Register(nav.Registration{Control: extra, TabIndex: -1}))
	assert.Equal(t, "B", selectedName(t, r))
	assert.Equal(t, 2, r.SelectedIndex())

	require.True(t, r.Unregister(c["A"]))
	assert.Equal(t, "B", selectedName(t, r))

	require.True(t, r.Unregister(c["B"]))
	assert.Equal(t, "C", selectedName(t, r))
	assert.False(t, r.Unregister(c["B"]))
}

func TestNavigate(t *testing.T) {
	r, c := gridABC(t)
	r.SelectControl(c["A"])

	assert.True(t, r.Navigate(nav.Right))
	assert.Equal(t, "B", selectedName(t, r))
	assert.True(t, r.Navigate(nav.Previous))
	assert.Equal(t, "A", selectedName(t, r))
	assert.False(t, r.Navigate(nav.Cancel))
	assert.False(t, r.Navigate(nav.Confirm), "plain controls have nothing to activate")
}

func TestIntentNames(t *testing.T) {
	for _, intent := range []nav.Intent{nav.Up, nav.Down, nav.Left, nav.Right, nav.Next, nav.Previous, nav.Confirm, nav.Cancel} {
		parsed, ok := nav.ParseIntent(intent.String())
		assert.True(t, ok, intent.String())
		assert.Equal(t, intent, parsed)
	}

	parsed, ok := nav.ParseIntent("  Confirm ")
	assert.True(t, ok)
	assert.Equal(t, nav.Confirm, parsed)

	_, ok = nav.ParseIntent("jump")
	assert.False(t, ok)
	assert.Equal(t, "none", nav.NoIntent.String())
	assert.True(t, nav.Previous.IsDirectional())
	assert.False(t, nav.Confirm.IsDirectional())
}
