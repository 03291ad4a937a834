package swipeview

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// cell is one screen cell of a frame. The cells after the lead of a wide
// grapheme are continuation cells pointing back at it.
type cell struct {
	text  string
	style tcell.Style
	width uint8
	cont  bool
	leadX int
	// pass is the pass the cell was written in.
	pass uint32
}

// frame is an offscreen cell buffer. Pages of a swiper are drawn into a frame
// at their full size and then copied onto the screen with a translation, so a
// page that is only partly inside the viewport is clipped instead of squeezed.
//
// A cell only counts when it was written in the current pass, so starting a
// pass does not need to clear the buffer.
type frame struct {
	width, height int
	pass          uint32
	cells         []cell
}

func newFrame(width, height int) *frame {
	f := &frame{}
	f.resize(width, height)
	return f
}

func (f *frame) resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if f.cells != nil && f.width == width && f.height == height {
		return
	}
	f.width, f.height = width, height
	f.cells = make([]cell, width*height)
	f.pass = 0
}

// beginPass forgets all cells.
func (f *frame) beginPass() {
	f.pass++
	if f.pass == 0 {
		clear(f.cells)
		f.pass = 1
	}
}

func (f *frame) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

func (f *frame) cellAt(x, y int) (cell, bool) {
	if !f.inside(x, y) {
		return cell{}, false
	}
	c := f.cells[y*f.width+x]
	return c, c.pass == f.pass
}

// set writes c at x, y. Overwriting the lead of a wide grapheme clears its
// continuation cells.
func (f *frame) set(x, y int, c cell) {
	if !f.inside(x, y) {
		return
	}
	row := f.cells[y*f.width : (y+1)*f.width]
	if old := row[x]; old.pass == f.pass && !old.cont && old.width > 1 {
		clear(row[x+1 : min(x+int(old.width), f.width)])
	}
	c.pass = f.pass
	row[x] = c
}

// blitOptions controls how a frame is copied onto a screen.
type blitOptions struct {
	// dx and dy translate frame coordinates into screen coordinates.
	dx, dy int
	// The screen rectangle outside of which nothing is written.
	clipX, clipY, clipWidth, clipHeight int
	// shade, if set, rewrites the style of every copied cell.
	shade func(tcell.Style) tcell.Style
}

func (o blitOptions) contains(x, y int) bool {
	return x >= o.clipX && x < o.clipX+o.clipWidth && y >= o.clipY && y < o.clipY+o.clipHeight
}

// blit copies the cells written during this pass onto screen. Wide graphemes
// cut by the clip rectangle are replaced with blanks.
func (f *frame) blit(screen tcell.Screen, o blitOptions) {
	for y := range f.height {
		sy := y + o.dy
		if sy < o.clipY || sy >= o.clipY+o.clipHeight {
			continue
		}
		for x := range f.width {
			sx := x + o.dx
			if !o.contains(sx, sy) {
				continue
			}
			c, ok := f.cellAt(x, y)
			if !ok {
				continue
			}
			style := c.style
			if o.shade != nil {
				style = o.shade(style)
			}
			text := c.text
			switch {
			case c.cont:
				if o.contains(c.leadX+o.dx, sy) {
					continue
				}
				text = " "
			case c.width > 1 && !o.contains(sx+int(c.width)-1, sy):
				text = " "
			}
			screen.Put(sx, sy, text, style)
		}
	}
}

// captureScreen is a tcell.Screen that draws into a frame. Methods that are
// not overridden are not supported and must not be called by primitives
// drawn onto it.
type captureScreen struct {
	tcell.Screen
	frame        *frame
	defaultStyle tcell.Style
}

func newCaptureScreen(width, height int) *captureScreen {
	return &captureScreen{frame: newFrame(width, height)}
}

// reset resizes the underlying frame and starts a new pass.
func (s *captureScreen) reset(width, height int) {
	s.frame.resize(width, height)
	s.frame.beginPass()
}

func (s *captureScreen) Size() (int, int) {
	return s.frame.width, s.frame.height
}

func (s *captureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	s.Put(x, y, text, style)
}

func (s *captureScreen) Clear() {
	s.frame.beginPass()
}

func (s *captureScreen) Fill(r rune, style tcell.Style) {
	for y := range s.frame.height {
		for x := range s.frame.width {
			s.SetContent(x, y, r, nil, style)
		}
	}
}

func (s *captureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *captureScreen) ShowCursor(x, y int) {}

func (s *captureScreen) HideCursor() {}

func (s *captureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	if c, ok := s.frame.cellAt(x, y); ok {
		return c.text, c.style, max(uniseg.StringWidth(c.text), 1)
	}
	return "", tcell.StyleDefault, 1
}

func (s *captureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster = string(r)
		remain = str[size:]
		width = 1
	}
	if width <= 0 {
		return remain, 0
	}

	// A terminal shows a wide grapheme in the last column as a blank.
	if width > 1 && x == s.frame.width-1 {
		cluster = " "
		width = 1
	}

	s.frame.set(x, y, cell{text: cluster, style: style, width: uint8(min(width, 255))})
	for i := 1; i < width; i++ {
		s.frame.set(x+i, y, cell{style: style, cont: true, leadX: x})
	}

	return remain, width
}

func (s *captureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *captureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.frame.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// line returns row y as plain text. Absent cells read as spaces.
func (s *captureScreen) line(y int) string {
	var b []byte
	for x := 0; x < s.frame.width; x++ {
		c, ok := s.frame.cellAt(x, y)
		switch {
		case !ok:
			b = append(b, ' ')
		case c.cont:
		default:
			b = append(b, c.text...)
		}
	}
	return string(b)
}
