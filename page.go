package swipeview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/mattn/go-runewidth"
)

// TextPage is a swiper page showing a heading above word-wrapped text. A
// page can be created before its text is known; it then shows a placeholder
// and reports that it is not ready until [TextPage.SetText] is called.
type TextPage struct {
	*Box

	heading string
	text    string
	loading bool

	placeholder  string
	alignment    Alignment
	style        tcell.Style
	headingStyle tcell.Style
}

// NewTextPage returns a page with the given heading and text.
func NewTextPage(heading, text string) *TextPage {
	return &TextPage{
		Box:          NewBox(),
		heading:      heading,
		text:         text,
		placeholder:  "Loading" + SemigraphicsHorizontalEllipsis,
		alignment:    AlignmentLeft,
		style:        tcell.StyleDefault.Foreground(Styles.Text),
		headingStyle: tcell.StyleDefault.Foreground(Styles.Heading).Bold(true),
	}
}

// NewLoadingPage returns a page that waits for its text.
func NewLoadingPage() *TextPage {
	p := NewTextPage("", "")
	p.loading = true
	return p
}

// SetText sets the heading and text and marks the page as ready.
func (p *TextPage) SetText(heading, text string) *TextPage {
	if p.heading != heading || p.text != text || p.loading {
		p.heading, p.text, p.loading = heading, text, false
		p.MarkDirty()
	}
	return p
}

// Text returns the heading and the text.
func (p *TextPage) Text() (heading, text string) {
	return p.heading, p.text
}

// SetPlaceholder sets the text shown while the page is loading.
func (p *TextPage) SetPlaceholder(placeholder string) *TextPage {
	p.placeholder = placeholder
	p.MarkDirty()
	return p
}

// SetAlignment sets the horizontal alignment of the text.
func (p *TextPage) SetAlignment(alignment Alignment) *TextPage {
	if p.alignment != alignment {
		p.alignment = alignment
		p.MarkDirty()
	}
	return p
}

// SetStyles sets the styles of the text and of the heading.
func (p *TextPage) SetStyles(text, heading tcell.Style) *TextPage {
	p.style, p.headingStyle = text, heading
	p.MarkDirty()
	return p
}

// Ready implements Loadable.
func (p *TextPage) Ready() bool {
	return !p.loading
}

// lines lays out the heading and the paragraphs for the given width.
func (p *TextPage) lines(width int) []Line {
	if width <= 0 {
		return nil
	}
	b := NewLineBuilder()
	if p.heading != "" {
		b.Write(runewidth.Truncate(p.heading, width, SemigraphicsHorizontalEllipsis), p.headingStyle)
		b.NewLine()
		if p.text != "" {
			b.NewLine()
		}
	}
	for i, paragraph := range strings.Split(p.text, "\n") {
		if i > 0 {
			b.NewLine()
		}
		wrapped := WordWrap(paragraph, width)
		for j, line := range wrapped {
			if j > 0 {
				b.NewLine()
			}
			b.Write(strings.TrimRight(line, " "), p.style)
		}
	}
	return b.Finish()
}

// MeasureSize implements Measurer. The natural width is that of the widest
// line, the natural height the number of lines.
func (p *TextPage) MeasureSize(maxWidth, maxHeight int) (width, height int) {
	cw, ch := p.chromeSize()
	if p.loading {
		return min(StringWidth(p.placeholder)+cw, maxWidth), min(1+ch, maxHeight)
	}
	lines := p.lines(maxWidth - cw)
	for _, line := range lines {
		w := 0
		for _, segment := range line {
			w += StringWidth(segment.Text)
		}
		width = max(width, w)
	}
	return min(width+cw, maxWidth), min(len(lines)+ch, maxHeight)
}

// Draw draws the page.
func (p *TextPage) Draw(screen tcell.Screen) {
	p.DrawForSubclass(screen, p)

	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	if p.loading {
		printWithStyle(screen, p.placeholder, x, y+height/2, width, AlignmentCenter, p.style.Dim(true), true)
		return
	}

	for row, line := range p.lines(width) {
		if row >= height {
			break
		}
		lineWidth := 0
		for _, segment := range line {
			lineWidth += StringWidth(segment.Text)
		}
		offset := 0
		switch p.alignment {
		case AlignmentCenter:
			offset = (width - lineWidth) / 2
		case AlignmentRight:
			offset = width - lineWidth
		}
		cx := x + max(offset, 0)
		for _, segment := range line {
			_, _, printed := printWithStyle(screen, segment.Text, cx, y+row, x+width-cx, AlignmentLeft, segment.Style, true)
			cx += printed
		}
	}
}
