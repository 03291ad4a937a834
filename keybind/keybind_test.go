package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"Ctrl+C":      "ctrl+c",
		"ctrl-x":      "ctrl+x",
		"Escape":      "esc",
		"PageDown":    "pgdn",
		"backtab":     "shift+tab",
		"Rune[q]":     "q",
		"alt+ctrl+K":  "ctrl+alt+k",
		"ctrl+ctrl+a": "ctrl+a",
		" ":           "",
		"shift+Right": "shift+right",
	} {
		assert.Equal(t, want, normalizeKey(in), in)
	}
}

func TestMatches(t *testing.T) {
	next := NewKeybind(WithKeys("right", "l"), WithHelp("→/l", "next"))
	quit := NewKeybind(WithKeys("q"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRight, "", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "l", tcell.ModNone), next))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "L", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "q", tcell.ModNone), next, quit))
	assert.False(t, Matches(nil, next))
}

func TestDisabledKeybindDoesNotMatch(t *testing.T) {
	k := NewKeybind(WithKeys("home"), WithDisabled())
	event := tcell.NewEventKey(tcell.KeyHome, "", tcell.ModNone)

	assert.False(t, k.Enabled())
	assert.False(t, Matches(event, k))

	k.SetEnabled(true)
	assert.True(t, Matches(event, k))

	assert.False(t, NewKeybind(WithHelp("x", "nothing")).Enabled(), "a keybind without keys is disabled")
}
