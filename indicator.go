package swipeview

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
)

// IndicatorState is the position of a swiper as shown by its indicator.
type IndicatorState struct {
	// Index is the page to highlight. It changes at the start of a move.
	Index int
	Total int
	// DisplayCount is the number of pages sharing the viewport.
	DisplayCount int
	// Position is the page at the viewport start including the fraction
	// scrolled past it, in [0, Total).
	Position float64
	Loop     bool
}

// SwiperIndicator is a primitive that mirrors a swiper's position.
type SwiperIndicator interface {
	Primitive
	// UpdateIndicator is called before every draw of the swiper.
	UpdateIndicator(state IndicatorState)
	// BindIndicator sets the function the indicator calls to select a page.
	BindIndicator(selected func(index int))
}

// DotIndicator draws one dot per page and highlights the current one. When
// the dots do not fit, it prints the page number instead.
type DotIndicator struct {
	*Box

	state    IndicatorState
	selected func(index int)

	active   string
	inactive string
	gap      int

	activeStyle   tcell.Style
	inactiveStyle tcell.Style
}

// NewDotIndicator returns a dot indicator.
func NewDotIndicator() *DotIndicator {
	return &DotIndicator{
		Box:           NewBox(),
		active:        GeometricBlackCircle,
		inactive:      GeometricWhiteCircle,
		gap:           1,
		activeStyle:   tcell.StyleDefault.Foreground(Styles.Text),
		inactiveStyle: tcell.StyleDefault.Foreground(Styles.Text).Dim(true),
	}
}

// SetGlyphs sets the glyphs of the current and the other pages.
func (d *DotIndicator) SetGlyphs(active, inactive string) *DotIndicator {
	if d.active != active || d.inactive != inactive {
		d.active, d.inactive = active, inactive
		d.MarkDirty()
	}
	return d
}

// SetGap sets the number of cells between two dots.
func (d *DotIndicator) SetGap(gap int) *DotIndicator {
	gap = max(gap, 0)
	if d.gap != gap {
		d.gap = gap
		d.MarkDirty()
	}
	return d
}

// SetStyles sets the styles of the current and the other pages.
func (d *DotIndicator) SetStyles(active, inactive tcell.Style) *DotIndicator {
	d.activeStyle, d.inactiveStyle = active, inactive
	d.MarkDirty()
	return d
}

// UpdateIndicator implements SwiperIndicator.
func (d *DotIndicator) UpdateIndicator(state IndicatorState) {
	if d.state != state {
		d.state = state
		d.MarkDirty()
	}
}

// BindIndicator implements SwiperIndicator.
func (d *DotIndicator) BindIndicator(selected func(index int)) {
	d.selected = selected
}

// dotWidth returns the width of one dot including its gap.
func (d *DotIndicator) dotWidth() int {
	return max(StringWidth(d.active), StringWidth(d.inactive)) + d.gap
}

// dotsWidth returns the width of all dots and whether they fit.
func (d *DotIndicator) dotsWidth() (int, bool) {
	_, _, width, _ := d.GetInnerRect()
	total := d.state.Total*d.dotWidth() - d.gap
	return total, total <= width
}

// Draw draws the dots centered in the inner rectangle.
func (d *DotIndicator) Draw(screen tcell.Screen) {
	d.DrawForSubclass(screen, d)

	x, y, width, height := d.GetInnerRect()
	if width <= 0 || height <= 0 || d.state.Total <= 0 {
		return
	}
	y += height / 2

	total, ok := d.dotsWidth()
	if !ok {
		label := fmt.Sprintf("%d/%d", d.state.Index+1, d.state.Total)
		printWithStyle(screen, label, x, y, width, AlignmentCenter, d.activeStyle, true)
		return
	}

	x += (width - total) / 2
	step := d.dotWidth()
	for i := range d.state.Total {
		glyph, style := d.inactive, d.inactiveStyle
		if i == d.state.Index {
			glyph, style = d.active, d.activeStyle
		}
		printWithStyle(screen, glyph, x+i*step, y, step-d.gap, AlignmentLeft, style, true)
	}
}

// MouseHandler selects the page whose dot was clicked.
func (d *DotIndicator) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if action != MouseLeftClick || d.selected == nil || !d.InInnerRect(x, y) {
		return nil, nil
	}
	total, ok := d.dotsWidth()
	if !ok {
		return nil, nil
	}
	ix, _, width, _ := d.GetInnerRect()
	rel := x - (ix + (width-total)/2)
	if rel < 0 || rel >= total {
		return nil, nil
	}
	d.selected(rel / d.dotWidth())
	return nil, RedrawCommand{}
}

var _ SwiperIndicator = &DotIndicator{}
