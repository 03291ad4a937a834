package swipeview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Alignment is the horizontal placement of text within its space.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// PrintWithStyle prints one line of text at x, y using at most maxWidth
// cells. Text that does not fit is cut on the side opposite to the
// alignment. It returns the number of bytes and the number of cells printed.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
	return end - start, width
}

// grapheme is one user-perceived character and its width in cells.
type grapheme struct {
	text  string
	width int
}

func graphemes(text string) []grapheme {
	var out []grapheme
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, grapheme{text: g.Str(), width: g.Width()})
	}
	return out
}

// printWithStyle is PrintWithStyle returning the byte range of text that was
// printed. With keepBackground a style without a background color keeps the
// background already on screen.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (start, end, printed int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0, 0
	}

	gs := graphemes(text)
	textWidth := 0
	for _, g := range gs {
		textWidth += g.width
	}
	first := 0
	drop := func(n int) {
		for ; n > 0 && first < len(gs); first++ {
			n -= gs[first].width
			textWidth -= gs[first].width
			start += len(gs[first].text)
		}
	}
	switch alignment {
	case AlignmentRight:
		drop(textWidth - maxWidth)
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		drop((textWidth - maxWidth) / 2)
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	keepBackground = keepBackground && style.GetBackground() == tcell.ColorDefault
	end = start
	right := min(x+maxWidth, screenWidth)
	for _, g := range gs[first:] {
		if x >= right {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if keepBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			// The tail cells of a wide character are written first so the
			// character itself ends up on top.
			for i := g.width - 1; i > 0; i-- {
				screen.Put(x+i, y, " ", cellStyle)
			}
			screen.Put(x, y, g.text, cellStyle)
		}
		x += g.width
		end += len(g.text)
		printed += g.width
	}
	return start, end, printed
}
