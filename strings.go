package swipeview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Segment is a styled piece of text.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Line is a list of styled segments.
type Line []Segment

// LineBuilder collects styled text into lines. Adjacent writes with the same
// style are merged into one segment.
type LineBuilder struct {
	lines   []Line
	current Line
}

// NewLineBuilder returns a new line builder.
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{}
}

// Write appends text with style. Newlines in text start new lines.
func (b *LineBuilder) Write(text string, style tcell.Style) {
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.NewLine()
		}
		if part == "" {
			continue
		}
		if n := len(b.current); n > 0 && b.current[n-1].Style == style {
			b.current[n-1].Text += part
		} else {
			b.current = append(b.current, Segment{Text: part, Style: style})
		}
	}
}

// NewLine ends the current line.
func (b *LineBuilder) NewLine() {
	b.lines = append(b.lines, b.current)
	b.current = nil
}

// Finish returns the lines written so far. An unterminated last line is
// included, and at least one line is always returned.
func (b *LineBuilder) Finish() []Line {
	if len(b.current) > 0 || len(b.lines) == 0 {
		b.NewLine()
	}
	return b.lines
}

// StringWidth returns the number of cells text takes on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap splits text into lines no wider than width. Lines break at the
// opportunities of the Unicode line breaking algorithm; words longer than a
// line are split. Spaces at the end of a line are kept and may exceed width.
func WordWrap(text string, width int) (lines []string) {
	if width <= 0 {
		return nil
	}
	var (
		line      strings.Builder
		lineWidth int
		state     = -1
	)
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	for text != "" {
		var (
			segment   string
			mustBreak bool
		)
		segment, text, mustBreak, state = uniseg.FirstLineSegmentInString(text, state)
		segment = strings.TrimRight(segment, "\r\n")
		if lineWidth > 0 && lineWidth+uniseg.StringWidth(strings.TrimRight(segment, " ")) > width {
			flush()
		}
		for _, g := range graphemes(segment) {
			if lineWidth > 0 && lineWidth+g.width > width && g.text != " " {
				flush()
			}
			line.WriteString(g.text)
			lineWidth += g.width
		}
		if mustBreak && text != "" {
			flush()
		}
	}
	if line.Len() > 0 {
		flush()
	}
	return lines
}
