package swipeview

import (
	"math"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/swipeview/swiper"
)

// subcell is the number of steps a cell of the bar is divided into.
const subcell = 8

// ProgressGlyphs are the glyphs of a progress bar. Fill[n-1] covers n
// eighths of a cell from its start, Tail[n-1] n eighths from its end.
type ProgressGlyphs struct {
	Track string
	Fill  [subcell]string
	Tail  [subcell]string
}

// LegacyProgressGlyphs uses the symbols for legacy computing, which have all
// eighths in both directions. Not every font has them.
func LegacyProgressGlyphs(axis swiper.Axis) ProgressGlyphs {
	if axis == swiper.Vertical {
		return ProgressGlyphs{
			Track: BoxDrawingsLightVertical,
			Fill:  [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
			Tail:  [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		}
	}
	return ProgressGlyphs{
		Track: BoxDrawingsLightHorizontal,
		Fill:  [subcell]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		Tail:  [subcell]string{"▕", "🮇", "🮈", "▐", "🮉", "🮊", "🮋", "█"},
	}
}

// UnicodeProgressGlyphs approximates the legacy symbols with block elements.
func UnicodeProgressGlyphs(axis swiper.Axis) ProgressGlyphs {
	g := LegacyProgressGlyphs(axis)
	if axis == swiper.Vertical {
		g.Fill = [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"}
	} else {
		g.Tail = [subcell]string{"▕", "▕", "▐", "▐", "▐", "▐", "█", "█"}
	}
	return g
}

// ProgressBar is a swiper indicator drawn as a bar. Its thumb spans the
// pages on screen and follows drags in eighths of a cell.
type ProgressBar struct {
	*Box

	axis      swiper.Axis
	glyphs    ProgressGlyphs
	showTrack bool

	trackStyle tcell.Style
	thumbStyle tcell.Style

	// In subcell units.
	contentLen, viewportLen, offset int

	state    IndicatorState
	selected func(index int)
}

// NewProgressBar returns a horizontal progress bar.
func NewProgressBar() *ProgressBar {
	return &ProgressBar{
		Box:        NewBox(),
		glyphs:     LegacyProgressGlyphs(swiper.Horizontal),
		showTrack:  true,
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault,
	}
}

// SetAxis sets the direction of the bar and picks the matching glyphs.
func (p *ProgressBar) SetAxis(axis swiper.Axis) *ProgressBar {
	if p.axis != axis {
		p.axis = axis
		p.glyphs = LegacyProgressGlyphs(axis)
		p.MarkDirty()
	}
	return p
}

func (p *ProgressBar) SetGlyphs(glyphs ProgressGlyphs) *ProgressBar {
	p.glyphs = glyphs
	p.MarkDirty()
	return p
}

// SetShowTrack sets whether the cells outside the thumb show the track glyph.
func (p *ProgressBar) SetShowTrack(show bool) *ProgressBar {
	p.showTrack = show
	p.MarkDirty()
	return p
}

func (p *ProgressBar) SetStyles(track, thumb tcell.Style) *ProgressBar {
	p.trackStyle, p.thumbStyle = track, thumb
	p.MarkDirty()
	return p
}

// UpdateIndicator implements SwiperIndicator. The content is one unit per
// page and the viewport covers the pages on screen.
func (p *ProgressBar) UpdateIndicator(state IndicatorState) {
	if p.state == state {
		return
	}
	p.state = state
	p.contentLen = state.Total * subcell
	p.viewportLen = max(state.DisplayCount, 1) * subcell
	p.offset = max(int(math.Round(state.Position*subcell)), 0)
	p.MarkDirty()
}

// BindIndicator implements SwiperIndicator.
func (p *ProgressBar) BindIndicator(selected func(index int)) {
	p.selected = selected
}

// thumb is the thumb's place on a track, in subcell units.
type thumb struct {
	cells int
	start int
	len   int
}

func (t thumb) end() int { return t.start + t.len }

// fill returns the part of cell covered by the thumb, relative to the cell.
func (t thumb) fill(cell int) (from, n int) {
	lo, hi := cell*subcell, (cell+1)*subcell
	start, end := max(t.start, lo), min(t.end(), hi)
	if end <= start {
		return 0, 0
	}
	return start - lo, end - start
}

// placeThumb sizes the thumb in proportion to viewport/content and places it
// in proportion to the offset. It is never shorter than one cell.
func placeThumb(cells, contentLen, viewportLen, offset int) thumb {
	track := cells * subcell
	if track == 0 {
		return thumb{}
	}
	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		return thumb{cells: cells, len: track}
	}
	offset = min(max(offset, 0), maxOffset)
	length := min(max(track*viewportLen/contentLen, subcell), track)
	return thumb{cells: cells, start: (track - length) * offset / maxOffset, len: length}
}

func (p *ProgressBar) thumb() thumb {
	_, _, width, height := p.GetInnerRect()
	cells := width
	if p.axis == swiper.Vertical {
		cells = height
	}
	return placeThumb(cells, p.contentLen, p.viewportLen, p.offset)
}

func (p *ProgressBar) glyph(from, n int) (string, tcell.Style) {
	switch {
	case n <= 0 && p.showTrack:
		return p.glyphs.Track, p.trackStyle
	case n <= 0:
		return " ", p.trackStyle
	case from == 0:
		return p.glyphs.Fill[n-1], p.thumbStyle
	}
	return p.glyphs.Tail[n-1], p.thumbStyle
}

// Draw draws the bar. Nothing is drawn without pages.
func (p *ProgressBar) Draw(screen tcell.Screen) {
	p.DrawForSubclass(screen, p)
	if p.contentLen <= 0 {
		return
	}
	x, y, _, _ := p.GetInnerRect()
	t := p.thumb()
	for cell := range t.cells {
		glyph, style := p.glyph(t.fill(cell))
		if p.axis == swiper.Vertical {
			screen.Put(x, y+cell, glyph, style)
		} else {
			screen.Put(x+cell, y, glyph, style)
		}
	}
}

// MouseHandler turns a click before or after the thumb into a page turn.
func (p *ProgressBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if action != MouseLeftClick || p.selected == nil || p.state.Total <= 0 || !p.InInnerRect(x, y) {
		return nil, nil
	}
	ix, iy, _, _ := p.GetInnerRect()
	pos := x - ix
	if p.axis == swiper.Vertical {
		pos = y - iy
	}
	t := p.thumb()
	switch at := pos*subcell + subcell/2; {
	case at < t.start:
		p.selected(p.state.Index - 1)
	case at >= t.end():
		p.selected(p.state.Index + 1)
	default:
		return nil, ConsumeEventCommand{}
	}
	return nil, RedrawCommand{}
}

var _ SwiperIndicator = &ProgressBar{}
