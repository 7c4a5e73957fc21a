package gamepad

import (
	"math"

	"github.com/soar/inputnav/internal/nav"
)

// DefaultDeadzone is the fraction of full axis scale an axis must pass to
// count as a press.
const DefaultDeadzone = 0.5

var buttonIntents = map[string]nav.Intent{
	"a":          nav.Confirm,
	"start":      nav.Confirm,
	"b":          nav.Cancel,
	"back":       nav.Cancel,
	"dpad_up":    nav.Up,
	"dpad_down":  nav.Down,
	"dpad_left":  nav.Left,
	"dpad_right": nav.Right,
	"lb":         nav.Previous,
	"rb":         nav.Next,
	"left_x-":    nav.Left,
	"left_x+":    nav.Right,
	"left_y-":    nav.Up,
	"left_y+":    nav.Down,
	"dpad_x-":    nav.Left,
	"dpad_x+":    nav.Right,
	"dpad_y-":    nav.Up,
	"dpad_y+":    nav.Down,
}

// IntentFor returns the intent bound to a button or synthesized axis name.
func IntentFor(name string) (nav.Intent, bool) {
	intent, ok := buttonIntents[name]
	return intent, ok
}

// Decoder turns level-triggered button and axis state into press edges.
type Decoder struct {
	threshold int32
	down      map[string]bool
}

// NewDecoder creates a decoder. deadzone is clamped to (0, 1]; values outside
// fall back to DefaultDeadzone.
func NewDecoder(deadzone float64) *Decoder {
	if deadzone <= 0 || deadzone > 1 {
		deadzone = DefaultDeadzone
	}
	return &Decoder{
		threshold: int32(deadzone * math.MaxInt16),
		down:      make(map[string]bool),
	}
}

// CheckPress stores the state of name and reports a false-to-true transition.
func (d *Decoder) CheckPress(name string, down bool) bool {
	was := d.down[name]
	d.down[name] = down
	return down && !was
}

// CheckAxis treats both directions of an axis as virtual buttons named
// name+"-" and name+"+". It returns the names that were just pressed.
func (d *Decoder) CheckAxis(name string, value int16) []string {
	var pressed []string
	v := int32(value)
	if d.CheckPress(name+"-", v <= -d.threshold) {
		pressed = append(pressed, name+"-")
	}
	if d.CheckPress(name+"+", v >= d.threshold) {
		pressed = append(pressed, name+"+")
	}
	return pressed
}

// Decode feeds a snapshot through edge detection, buttons first and then
// axes, each in name order, and returns the intents for new presses.
func (d *Decoder) Decode(s Snapshot) []nav.Intent {
	var intents []nav.Intent
	for _, name := range s.ButtonNames() {
		if !d.CheckPress(name, s.Buttons[name]) {
			continue
		}
		if intent, ok := IntentFor(name); ok {
			intents = append(intents, intent)
		}
	}
	for _, name := range s.AxisNames() {
		for _, pressed := range d.CheckAxis(name, s.Axes[name]) {
			if intent, ok := IntentFor(pressed); ok {
				intents = append(intents, intent)
			}
		}
	}
	return intents
}

// Reset forgets all stored state, so held buttons fire again after reconnect.
func (d *Decoder) Reset() {
	clear(d.down)
}
