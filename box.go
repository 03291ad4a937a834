package swipeview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
	"github.com/mattn/go-runewidth"
)

// Box is the base of all primitives. It draws a background, optional borders
// and a title, and keeps the rectangle, the focus and the dirty state.
// Primitives embed a *Box and draw their content into its inner rectangle.
type Box struct {
	x, y, width, height int

	padding struct{ top, bottom, left, right int }

	background  tcell.Color
	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	focused bool

	// dirty is set when the box needs to be drawn again. A swiper keeps the
	// last drawing of a clean page and only moves it.
	dirty atomic.Bool
	// container is marked dirty along with the box.
	container atomic.Pointer[Box]
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:          15,
		height:         10,
		background:     Styles.Background,
		borderSet:      BorderSetPlain(),
		borderStyle:    tcell.StyleDefault.Foreground(Styles.Border).Background(Styles.Background),
		titleStyle:     tcell.StyleDefault.Foreground(Styles.Title),
		titleAlignment: AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

// update stores value in *field and marks b dirty if that changed anything.
func update[T comparable](b *Box, field *T, value T) {
	if *field != value {
		*field = value
		b.MarkDirty()
	}
}

// SetBorderPadding sets the space between the border and the content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	update(b, &b.padding, struct{ top, bottom, left, right int }{top, bottom, left, right})
	return b
}

func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	update(b, &b.background, color)
	update(b, &b.borderStyle, b.borderStyle.Background(color))
	return b
}

// SetBorders sets which edges get a border.
func (b *Box) SetBorders(flag Borders) *Box {
	update(b, &b.borders, flag)
	return b
}

func (b *Box) SetBorderSet(set BorderSet) *Box {
	update(b, &b.borderSet, set)
	return b
}

func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	update(b, &b.borderStyle, style)
	return b
}

// SetTitle sets the text printed over the top border. A title takes the top
// row even without a border.
func (b *Box) SetTitle(title string) *Box {
	update(b, &b.title, title)
	return b
}

func (b *Box) SetTitleStyle(style tcell.Style) *Box {
	update(b, &b.titleStyle, style)
	return b
}

func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	update(b, &b.titleAlignment, alignment)
	return b
}

func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect moves the box. Containers call it before every draw.
func (b *Box) SetRect(x, y, width, height int) {
	update(b, &b.x, x)
	update(b, &b.y, y)
	update(b, &b.width, width)
	update(b, &b.height, height)
}

// edges returns the rows and columns taken by the border and the title on
// each side.
func (b *Box) edges() (top, bottom, left, right int) {
	flag := func(edge Borders) int {
		if b.borders.Has(edge) {
			return 1
		}
		return 0
	}
	top = flag(BordersTop)
	if b.title != "" {
		top = 1
	}
	return top, flag(BordersBottom), flag(BordersLeft), flag(BordersRight)
}

// chromeSize returns the number of columns and rows taken by the border, the
// title and the padding.
func (b *Box) chromeSize() (width, height int) {
	top, bottom, left, right := b.edges()
	p := b.padding
	return left + right + p.left + p.right, top + bottom + p.top + p.bottom
}

// GetInnerRect returns the rectangle inside the border and the padding. Its
// size is never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	top, _, left, _ := b.edges()
	cw, ch := b.chromeSize()
	return b.x + left + b.padding.left, b.y + top + b.padding.top, max(b.width-cw, 0), max(b.height-ch, 0)
}

// InRect reports whether the cell at x, y lies inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// InInnerRect reports whether the cell at x, y lies inside the border and
// the padding.
func (b *Box) InInnerRect(x, y int) bool {
	ix, iy, width, height := b.GetInnerRect()
	return x >= ix && x < ix+width && y >= iy && y < iy+height
}

// IsDirty reports whether the box needs to be drawn again.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty marks the box and its container as needing a redraw.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if c := b.container.Load(); c != nil {
		c.MarkDirty()
	}
}

// MarkClean marks the box as drawn.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

func (b *Box) box() *Box { return b }

// dirtyTracker is implemented by primitives embedding a *Box.
type dirtyTracker interface {
	IsDirty() bool
	MarkClean()
	box() *Box
}

// bindDirtyParent makes parent dirty whenever child turns dirty.
func bindDirtyParent(child Primitive, parent *Box) {
	if t, ok := child.(dirtyTracker); ok && parent != nil && t.box() != parent {
		t.box().container.Store(parent)
	}
}

func unbindDirtyParent(child Primitive, parent *Box) {
	if t, ok := child.(dirtyTracker); ok && parent != nil {
		t.box().container.CompareAndSwap(parent, nil)
	}
}

func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler focuses the box on a left press inside it.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the background, the border and the title of the
// primitive p embedding the box. Primitives call it first in their Draw.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1

	fill := tcell.StyleDefault.Background(b.background)
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			screen.Put(x, y, " ", fill)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen, left, top, right, bottom)
	}

	if b.title != "" && b.width >= 4 {
		title := runewidth.Truncate(b.title, b.width-2, SemigraphicsHorizontalEllipsis)
		printWithStyle(screen, title, left+1, top, b.width-2, b.titleAlignment, b.titleStyle, true)
	}
}

func (b *Box) drawBorder(screen tcell.Screen, left, top, right, bottom int) {
	set, style := b.borderSet, b.borderStyle
	for _, edge := range []struct {
		side           Borders
		glyph          string
		x0, y0, x1, y1 int
	}{
		{BordersTop, set.Top, left + 1, top, right - 1, top},
		{BordersBottom, set.Bottom, left + 1, bottom, right - 1, bottom},
		{BordersLeft, set.Left, left, top + 1, left, bottom - 1},
		{BordersRight, set.Right, right, top + 1, right, bottom - 1},
	} {
		if !b.borders.Has(edge.side) {
			continue
		}
		for y := edge.y0; y <= edge.y1; y++ {
			for x := edge.x0; x <= edge.x1; x++ {
				screen.Put(x, y, edge.glyph, style)
			}
		}
	}
	// A corner joins two borders or continues a single one.
	for _, corner := range []struct {
		horizontal, vertical Borders
		glyph                string
		x, y                 int
	}{
		{BordersTop, BordersLeft, set.TopLeft, left, top},
		{BordersTop, BordersRight, set.TopRight, right, top},
		{BordersBottom, BordersLeft, set.BottomLeft, left, bottom},
		{BordersBottom, BordersRight, set.BottomRight, right, bottom},
	} {
		h, v := b.borders.Has(corner.horizontal), b.borders.Has(corner.vertical)
		switch {
		case h && v:
			screen.Put(corner.x, corner.y, corner.glyph, style)
		case h && corner.horizontal == BordersTop:
			screen.Put(corner.x, corner.y, set.Top, style)
		case h:
			screen.Put(corner.x, corner.y, set.Bottom, style)
		case v && corner.vertical == BordersLeft:
			screen.Put(corner.x, corner.y, set.Left, style)
		case v:
			screen.Put(corner.x, corner.y, set.Right, style)
		}
	}
}

// Focus is called when the box receives the focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	update(b, &b.focused, true)
}

// Blur is called when the box loses the focus.
func (b *Box) Blur() {
	update(b, &b.focused, false)
}

func (b *Box) HasFocus() bool {
	return b.focused
}
