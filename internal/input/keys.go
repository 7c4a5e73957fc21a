package input

import (
	"strings"

	"github.com/soar/inputnav/internal/nav"
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

var modifierPrefixes = map[string]Modifier{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
	"cmd":   ModMeta,
	"super": ModMeta,
}

// keyIntents accepts both terminal (bubbletea) and browser (KeyboardEvent.key)
// spellings, lower-cased.
var keyIntents = map[string]nav.Intent{
	"up":         nav.Up,
	"arrowup":    nav.Up,
	"down":       nav.Down,
	"arrowdown":  nav.Down,
	"left":       nav.Left,
	"arrowleft":  nav.Left,
	"right":      nav.Right,
	"arrowright": nav.Right,
	"tab":        nav.Next,
	"backtab":    nav.Previous,
	"enter":      nav.Confirm,
	"return":     nav.Confirm,
	"space":      nav.Confirm,
	" ":          nav.Confirm,
	"esc":        nav.Cancel,
	"escape":     nav.Cancel,
	"backspace":  nav.Cancel,
}

// ParseKey splits a key combination such as "shift+tab" or "Ctrl+Enter" into the key
// name and its modifiers. Unknown prefixes are kept as part of the name.
func ParseKey(combo string) (string, Modifier) {
	if combo == " " || combo == "+" {
		return combo, ModNone
	}

	var mods Modifier
	name := strings.ToLower(strings.TrimSpace(combo))
	for {
		prefix, rest, found := strings.Cut(name, "+")
		if !found || rest == "" {
			break
		}
		m, ok := modifierPrefixes[prefix]
		if !ok {
			break
		}
		mods |= m
		name = rest
	}
	return name, mods
}

// KeyIntent maps a key and its modifiers to an intent. Keys held with Ctrl,
// Alt or Meta are left to the host.
func KeyIntent(key string, mods Modifier) (nav.Intent, bool) {
	name, parsed := ParseKey(key)
	mods |= parsed
	if mods&(ModCtrl|ModAlt|ModMeta) != 0 {
		return nav.NoIntent, false
	}

	intent, ok := keyIntents[name]
	if !ok {
		return nav.NoIntent, false
	}
	if intent == nav.Next && mods&ModShift != 0 {
		intent = nav.Previous
	}
	return intent, true
}
