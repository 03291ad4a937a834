// Package keybind describes key bindings as strings such as "ctrl+n" or
// "pgdn" and matches them against tcell key events.
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of keys bound to one action, with its help text.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the text shown for a keybind in a help view.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys binds keys. Keys are normalized, so "Ctrl+N" and "ctrl+n" are the
// same key.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) { k.SetKeys(keys...) }
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) { k.SetHelp(key, desc) }
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) { k.disabled = true }
}

func (k Keybind) Keys() []string { return k.keys }

func (k *Keybind) SetKeys(keys ...string) {
	k.keys = nil
	for _, key := range keys {
		if key = normalizeKey(key); key != "" {
			k.keys = append(k.keys, key)
		}
	}
}

func (k Keybind) Help() Help { return k.help }

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows in help. A
// keybind without keys is never enabled.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKey(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

// modifiers in the order they are written in a normalized key.
var modifiers = []struct {
	name string
	mask tcell.ModMask
}{
	{"ctrl", tcell.ModCtrl},
	{"alt", tcell.ModAlt},
	{"shift", tcell.ModShift},
	{"meta", tcell.ModMeta},
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"meta":    "meta",
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"backtab":  "shift+tab",
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

// joinKey writes a key in normalized form: the modifiers in a fixed order
// followed by the key. Single characters are lowercased when a modifier is
// present.
func joinKey(mods map[string]bool, key string) string {
	var parts []string
	for _, m := range modifiers {
		if mods[m.name] {
			parts = append(parts, m.name)
		}
	}
	if len(parts) == 0 {
		return key
	}
	if len([]rune(key)) == 1 {
		key = strings.ToLower(key)
	}
	return strings.Join(append(parts, key), "+")
}

func normalizeKey(key string) string {
	mods := map[string]bool{}
	primary := ""
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod, ok := modifierAliases[strings.ToLower(part)]; ok {
			mods[mod] = true
			continue
		}
		primary = part
	}
	if primary == "" {
		return ""
	}

	lower := strings.ToLower(primary)
	switch {
	case strings.HasPrefix(primary, "Rune[") && strings.HasSuffix(primary, "]") && len(primary) > len("Rune[]"):
		primary = primary[len("Rune[") : len(primary)-1]
	case strings.HasPrefix(lower, "ctrl-") && len(lower) > len("ctrl-"):
		mods["ctrl"] = true
		primary = lower[len("ctrl-"):]
	case len([]rune(primary)) > 1:
		primary = lower
		if alias, ok := keyAliases[lower]; ok {
			primary = alias
		}
	}
	if rest, ok := strings.CutPrefix(primary, "shift+"); ok {
		mods["shift"] = true
		primary = rest
	}
	return joinKey(mods, primary)
}

func eventKey(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary, ok := keyNames[key]
	if !ok && key == tcell.KeyRune {
		primary, ok = event.Str(), true
	}
	if !ok || primary == "" {
		return normalizeKey(event.Name())
	}

	mods := map[string]bool{}
	for _, m := range modifiers {
		if event.Modifiers()&m.mask != 0 {
			mods[m.name] = true
		}
	}
	if rest, found := strings.CutPrefix(primary, "shift+"); found {
		mods["shift"] = true
		primary = rest
	}
	return joinKey(mods, primary)
}
