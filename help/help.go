// Package help draws the bindings of a key map as a one-line bar or, when
// expanded, as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/swipeview"
	"github.com/xqrs/swipeview/keybind"
)

type KeyMap interface {
	// ShortHelp returns the bindings of the one-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns the columns of the full help.
	FullHelp() [][]keybind.Keybind
}

type Styles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
	Status    tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		Key:       dim,
		Desc:      tcell.StyleDefault,
		Separator: dim,
		Status:    tcell.StyleDefault.Bold(true),
	}
}

const (
	shortSeparator = " • "
	fullSeparator  = "    "
	ellipsis       = " …"
)

// Help lists the bindings of a key map. A status text, such as the page of a
// swiper, is printed right-aligned next to them.
type Help struct {
	*swipeview.Box
	Styles Styles

	keyMap  KeyMap
	toggle  keybind.Keybind
	status  string
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    swipeview.NewBox(),
		Styles: DefaultStyles(),
		toggle: keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "more")),
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetStatus sets the right-aligned status text.
func (h *Help) SetStatus(status string) *Help {
	if h.status != status {
		h.status = status
		h.MarkDirty()
	}
	return h
}

// SetShowAll switches between the short and the full help.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

// Height returns the number of rows the help needs in its current mode.
func (h *Help) Height() int {
	if !h.showAll || h.keyMap == nil {
		return 1
	}
	rows := 1
	for _, group := range h.keyMap.FullHelp() {
		rows = max(rows, len(entries(group)))
	}
	return rows
}

func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	if h.status != "" && height > 0 {
		_, printed := swipeview.PrintWithStyle(screen, h.status, x, y, width, swipeview.AlignmentRight, h.Styles.Status)
		width = max(width-printed-1, 0)
	}

	lines := []swipeview.Line{h.shortHelp(h.keyMap.ShortHelp(), width)}
	if h.showAll {
		lines = h.fullHelp(h.keyMap.FullHelp(), width)
	}
	for row, line := range lines {
		if row >= height {
			break
		}
		cx, remaining := x, width
		for _, s := range line {
			if remaining <= 0 {
				break
			}
			_, printed := swipeview.PrintWithStyle(screen, s.Text, cx, y+row, remaining, swipeview.AlignmentLeft, s.Style)
			cx += printed
			remaining -= printed
		}
	}
}

// InputHandler switches between the short and the full help on "?".
func (h *Help) InputHandler(event *tcell.EventKey) swipeview.Command {
	if !keybind.Matches(event, h.toggle) {
		return nil
	}
	h.SetShowAll(!h.showAll)
	return swipeview.RedrawCommand{}
}

// entries returns the help of the enabled bindings that have one.
func entries(bindings []keybind.Keybind) []keybind.Help {
	var out []keybind.Help
	for _, kb := range bindings {
		if help := kb.Help(); kb.Enabled() && (help.Key != "" || help.Desc != "") {
			out = append(out, help)
		}
	}
	return out
}

func (h *Help) writeEntry(b *swipeview.LineBuilder, e keybind.Help) {
	b.Write(e.Key, h.Styles.Key)
	if e.Key != "" && e.Desc != "" {
		b.Write(" ", h.Styles.Desc)
	}
	b.Write(e.Desc, h.Styles.Desc)
}

func lineWidth(line swipeview.Line) int {
	width := 0
	for _, s := range line {
		width += swipeview.StringWidth(s.Text)
	}
	return width
}

// shortHelp joins the bindings into one line. Bindings that do not fit in
// maxWidth are replaced by an ellipsis. A maxWidth of 0 means no limit.
func (h *Help) shortHelp(bindings []keybind.Keybind, maxWidth int) swipeview.Line {
	var line swipeview.Line
	for i, e := range entries(bindings) {
		b := swipeview.NewLineBuilder()
		if i > 0 {
			b.Write(shortSeparator, h.Styles.Separator)
		}
		h.writeEntry(b, e)
		item := b.Finish()[0]
		if maxWidth > 0 && lineWidth(line)+lineWidth(item) > maxWidth {
			if i == 0 {
				return nil
			}
			return h.withEllipsis(line, maxWidth)
		}
		line = append(line, item...)
	}
	return line
}

// withEllipsis appends an ellipsis to line if it fits.
func (h *Help) withEllipsis(line swipeview.Line, maxWidth int) swipeview.Line {
	if lineWidth(line)+swipeview.StringWidth(ellipsis) <= maxWidth {
		line = append(line, swipeview.Segment{Text: ellipsis, Style: h.Styles.Separator})
	}
	return line
}

// fullHelp lays the groups out as columns, with the keys of a column aligned.
// Columns that do not fit are dropped and an ellipsis is put on the first row.
func (h *Help) fullHelp(groups [][]keybind.Keybind, maxWidth int) []swipeview.Line {
	type column struct {
		entries  []keybind.Help
		keyWidth int
		width    int
	}
	var (
		columns []column
		total   int
		cut     bool
	)
	for _, group := range groups {
		col := column{entries: entries(group)}
		if len(col.entries) == 0 {
			continue
		}
		for _, e := range col.entries {
			col.keyWidth = max(col.keyWidth, swipeview.StringWidth(e.Key))
		}
		for _, e := range col.entries {
			w := col.keyWidth + swipeview.StringWidth(e.Desc)
			if e.Key != "" && e.Desc != "" {
				w++
			}
			col.width = max(col.width, w)
		}
		need := col.width
		if len(columns) > 0 {
			need += swipeview.StringWidth(fullSeparator)
		}
		if maxWidth > 0 && total+need > maxWidth {
			cut = true
			break
		}
		total += need
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		if cut {
			return []swipeview.Line{{{Text: strings.TrimSpace(ellipsis), Style: h.Styles.Separator}}}
		}
		return nil
	}

	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col.entries))
	}
	b := swipeview.NewLineBuilder()
	for row := range rows {
		if row > 0 {
			b.NewLine()
		}
		for i, col := range columns {
			if i > 0 {
				b.Write(fullSeparator, h.Styles.Separator)
			}
			written := 0
			if row < len(col.entries) {
				e := col.entries[row]
				b.Write(e.Key, h.Styles.Key)
				b.Write(strings.Repeat(" ", col.keyWidth-swipeview.StringWidth(e.Key)), h.Styles.Key)
				written = col.keyWidth
				if e.Key != "" && e.Desc != "" {
					b.Write(" ", h.Styles.Desc)
					written++
				}
				b.Write(e.Desc, h.Styles.Desc)
				written += swipeview.StringWidth(e.Desc)
			}
			// Pad all but the last column so the separators line up.
			if i < len(columns)-1 {
				b.Write(strings.Repeat(" ", col.width-written), h.Styles.Desc)
			}
		}
	}
	lines := b.Finish()
	if cut {
		lines[0] = h.withEllipsis(lines[0], maxWidth)
	}
	return lines
}
