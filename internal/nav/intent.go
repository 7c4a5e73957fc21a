package nav

import "strings"

// Intent is an abstract navigation or activation signal, independent of the
// device that produced it.
type Intent uint8

const (
	NoIntent Intent = iota
	Up
	Down
	Left
	Right
	Next
	Previous
	Confirm
	Cancel
)

var intentNames = map[Intent]string{
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	Next:     "next",
	Previous: "previous",
	Confirm:  "confirm",
	Cancel:   "cancel",
}

var intentsByName = func() map[string]Intent {
	m := make(map[string]Intent, len(intentNames))
	for intent, name := range intentNames {
		m[name] = intent
	}
	return m
}()

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "none"
}

// IsDirectional reports whether the intent moves the selection.
func (i Intent) IsDirectional() bool {
	return i >= Up && i <= Previous
}

// ParseIntent resolves a case-insensitive intent name such as "up" or "Confirm".
func ParseIntent(name string) (Intent, bool) {
	intent, ok := intentsByName[strings.ToLower(strings.TrimSpace(name))]
	return intent, ok
}
