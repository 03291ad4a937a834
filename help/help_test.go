package help

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"

	"github.com/xqrs/swipeview"
	"github.com/xqrs/swipeview/keybind"
)

type testKeyMap struct {
	prev, next, first, last keybind.Keybind
}

func newTestKeyMap() testKeyMap {
	return testKeyMap{
		prev:  keybind.NewKeybind(keybind.WithKeys("left"), keybind.WithHelp("←", "previous")),
		next:  keybind.NewKeybind(keybind.WithKeys("right"), keybind.WithHelp("→", "next")),
		first: keybind.NewKeybind(keybind.WithKeys("home"), keybind.WithHelp("home", "first")),
		last:  keybind.NewKeybind(keybind.WithKeys("end"), keybind.WithHelp("end", "last"), keybind.WithDisabled()),
	}
}

func (k testKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.prev, k.next}
}

func (k testKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.prev, k.next, k.first, k.last}}
}

func text(line swipeview.Line) string {
	var b strings.Builder
	for _, s := range line {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestShortHelpJoinsBindings(t *testing.T) {
	h := New()
	km := newTestKeyMap()

	assert.Equal(t, "← previous • → next", text(h.shortHelp(km.ShortHelp(), 0)))
	assert.Equal(t, "← previous …", text(h.shortHelp(km.ShortHelp(), 14)), "bindings that do not fit are cut")
}

func TestShortHelpSkipsDisabled(t *testing.T) {
	h := New()
	km := newTestKeyMap()
	km.next.SetEnabled(false)

	assert.Equal(t, "← previous", text(h.shortHelp(km.ShortHelp(), 0)))
}

func TestHeightFollowsMode(t *testing.T) {
	h := New().SetKeyMap(newTestKeyMap())
	assert.Equal(t, 1, h.Height())

	cmd := h.InputHandler(tcell.NewEventKey(tcell.KeyRune, "?", tcell.ModNone))
	assert.Equal(t, swipeview.RedrawCommand{}, cmd)
	assert.True(t, h.ShowAll())
	assert.Equal(t, 3, h.Height(), "disabled bindings take no row")

	assert.Nil(t, h.InputHandler(tcell.NewEventKey(tcell.KeyRune, "x", tcell.ModNone)))
}

func TestFullHelpAlignsColumns(t *testing.T) {
	h := New()
	groups := [][]keybind.Keybind{
		{
			keybind.NewKeybind(keybind.WithKeys("left"), keybind.WithHelp("←", "previous")),
			keybind.NewKeybind(keybind.WithKeys("home"), keybind.WithHelp("home", "first")),
		},
		{keybind.NewKeybind(keybind.WithKeys("q"), keybind.WithHelp("q", "quit"))},
	}

	lines := h.fullHelp(groups, 0)
	if assert.Len(t, lines, 2) {
		assert.Equal(t, "←    previous    q quit", text(lines[0]))
		assert.Equal(t, "home first       ", text(lines[1]))
	}

	lines = h.fullHelp(groups, 16)
	assert.Equal(t, "←    previous …", text(lines[0]), "columns that do not fit are dropped")
}
