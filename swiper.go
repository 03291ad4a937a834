package swipeview

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/swipeview/internal/debug"
	"github.com/xqrs/swipeview/keybind"
	"github.com/xqrs/swipeview/swiper"
)

// PageFunc returns the primitive shown as the page with the given index. It
// is called when the page scrolls into the cached window and the primitive
// is dropped again when it leaves it.
type PageFunc func(index int) Primitive

// Runner schedules timers and animation frames for a swiper. *Application
// is a Runner.
type Runner interface {
	swiper.Scheduler
	RequestFrame(animator Animator)
}

// Loadable is implemented by pages whose content arrives asynchronously. A
// page that is not ready takes no space until [Swiper.Remeasure] is called.
type Loadable interface {
	Ready() bool
}

// Measurer is implemented by pages that have a natural size. It is consulted
// when the swiper lays pages out by their own size.
type Measurer interface {
	MeasureSize(maxWidth, maxHeight int) (width, height int)
}

// TerminalPhysics returns motion constants scaled to terminal cells.
func TerminalPhysics() swiper.Physics {
	ph := swiper.DefaultPhysics()
	ph.VelocityThreshold = 40
	ph.RestDistance = 0.05
	ph.RestVelocity = 0.2
	return ph
}

// dragIdle is the pause after which a release no longer counts as a fling.
const dragIdle = 100 * time.Millisecond

// page is a realized child of a swiper. Its last drawing is kept in screen
// and reused while the page stays clean.
type page struct {
	index  int
	item   Primitive
	screen *captureScreen
	drawn  bool
}

// pageSet supplies the children of a swiper to its pattern.
type pageSet struct {
	parent  *Box
	count   int
	pages   PageFunc
	nodes   *swiper.Arena[*page]
	byIndex map[int]swiper.NodeID

	axis swiper.Axis
	// area is the content rectangle, used for unbounded measurements.
	area swiper.Size
}

func (ps *pageSet) Count() int {
	if ps.pages == nil {
		return 0
	}
	return ps.count
}

func (ps *pageSet) Realize(index int) swiper.NodeID {
	if id, ok := ps.byIndex[index]; ok {
		return id
	}
	item := ps.pages(index)
	if item == nil {
		item = NewBox()
	}
	id := ps.nodes.Insert(&page{index: index, item: item, screen: newCaptureScreen(0, 0)})
	ps.byIndex[index] = id
	bindDirtyParent(item, ps.parent)
	return id
}

func (ps *pageSet) Release(id swiper.NodeID) {
	pg, ok := ps.nodes.Remove(id)
	if !ok {
		return
	}
	if ps.byIndex[pg.index] == id {
		delete(ps.byIndex, pg.index)
	}
	unbindDirtyParent(pg.item, ps.parent)
}

func (ps *pageSet) Measure(id swiper.NodeID, c swiper.Constraints) (swiper.Size, bool) {
	pg, ok := ps.nodes.Get(id)
	if !ok {
		return swiper.Size{}, true
	}
	if l, ok := pg.item.(Loadable); ok && !l.Ready() {
		return swiper.Size{}, false
	}
	main := cells(c.Main, ps.area.Main)
	cross := cells(c.Cross, ps.area.Cross)
	m, ok := pg.item.(Measurer)
	if !ok {
		return swiper.Size{Main: float64(main), Cross: float64(cross)}, true
	}
	if ps.axis == swiper.Vertical {
		w, h := m.MeasureSize(cross, main)
		return swiper.Size{Main: float64(h), Cross: float64(w)}, true
	}
	w, h := m.MeasureSize(main, cross)
	return swiper.Size{Main: float64(w), Cross: float64(h)}, true
}

// cells converts a constraint to a cell count. Unbounded constraints fall
// back to the given extent.
func cells(v, fallback float64) int {
	if math.IsInf(v, 1) || math.IsNaN(v) {
		v = fallback
	}
	return max(int(math.Floor(v)), 0)
}

// SwiperKeyMap holds the key bindings of a swiper.
type SwiperKeyMap struct {
	Prev  keybind.Keybind
	Next  keybind.Keybind
	First keybind.Keybind
	Last  keybind.Keybind
}

// DefaultSwiperKeyMap returns the default key bindings of a swiper.
func DefaultSwiperKeyMap() SwiperKeyMap {
	return SwiperKeyMap{
		Prev: keybind.NewKeybind(
			keybind.WithKeys("left", "h", "up", "k"),
			keybind.WithHelp("←/h", "previous"),
		),
		Next: keybind.NewKeybind(
			keybind.WithKeys("right", "l", "down", "j"),
			keybind.WithHelp("→/l", "next"),
		),
		First: keybind.NewKeybind(
			keybind.WithKeys("home"),
			keybind.WithHelp("home", "first"),
		),
		Last: keybind.NewKeybind(
			keybind.WithKeys("end"),
			keybind.WithHelp("end", "last"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k SwiperKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Prev, k.Next}
}

// FullHelp implements help.KeyMap.
func (k SwiperKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{{k.Prev, k.Next}, {k.First, k.Last}}
}

// dragState tracks a pointer drag in screen cells.
type dragState struct {
	pending  bool
	started  bool
	x, y     int
	last     time.Time
	velocity float64
}

// Swiper is a carousel of pages. Pages are laid out along one axis and can
// be turned with the keyboard, the mouse wheel, by dragging, or
// programmatically. An optional indicator and a pair of arrow buttons mirror
// and control the current page.
//
// A swiper needs a [Runner] for animations and autoplay, see [Swiper.Bind].
type Swiper struct {
	*Box

	pattern *swiper.Pattern
	pages   *pageSet
	runner  Runner

	indicator SwiperIndicator
	prev      *Button
	next      *Button

	keyMap SwiperKeyMap
	drag   dragState
	now    func() time.Time

	// The content rectangle of the last draw.
	contentX, contentY, contentWidth, contentHeight int
}

// NewSwiper returns a swiper of count pages created by pages.
func NewSwiper(count int, pages PageFunc) *Swiper {
	s := &Swiper{
		Box:     NewBox(),
		pattern: swiper.NewPattern(swiper.DefaultProps()),
		keyMap:  DefaultSwiperKeyMap(),
		now:     time.Now,
	}
	s.pages = &pageSet{
		parent:  s.Box,
		count:   max(count, 0),
		pages:   pages,
		nodes:   swiper.NewArena[*page](),
		byIndex: make(map[int]swiper.NodeID),
	}
	s.pattern.SetPhysics(TerminalPhysics())
	return s
}

// Bind attaches the swiper to a runner. Until it is bound, a swiper draws
// nothing.
func (s *Swiper) Bind(r Runner) *Swiper {
	if s.runner != nil {
		s.pattern.Detach()
	}
	s.runner = r
	if r != nil {
		s.pattern.Attach(swiper.Host{
			Children:  s.pages,
			Scheduler: r,
			Clock:     frameRequester{s},
		})
	}
	s.MarkDirty()
	return s
}

// Unbind detaches the swiper from its runner and releases all pages.
func (s *Swiper) Unbind() {
	if s.runner == nil {
		return
	}
	s.pattern.Detach()
	s.runner = nil
}

type frameRequester struct {
	s *Swiper
}

func (f frameRequester) RequestFrame() {
	if f.s.runner != nil {
		f.s.runner.RequestFrame(f.s)
	}
}

// Animate implements Animator.
func (s *Swiper) Animate(dt time.Duration) bool {
	running := s.pattern.Tick(dt)
	s.MarkDirty()
	// A settle callback may start the next move within the same tick.
	return running || s.pattern.Animating()
}

// Pattern returns the engine driving the swiper.
func (s *Swiper) Pattern() *swiper.Pattern {
	return s.pattern
}

// SetKeyMap replaces the key bindings.
func (s *Swiper) SetKeyMap(k SwiperKeyMap) *Swiper {
	s.keyMap = k
	return s
}

// KeyMap returns the key bindings.
func (s *Swiper) KeyMap() SwiperKeyMap {
	return s.keyMap
}

// SetIndicator sets the primitive mirroring the position. It takes the
// last row of the swiper. nil removes the indicator.
func (s *Swiper) SetIndicator(indicator SwiperIndicator) *Swiper {
	if s.indicator != nil {
		s.indicator.BindIndicator(nil)
	}
	s.indicator = indicator
	if indicator != nil {
		indicator.BindIndicator(s.selectFromIndicator)
	}
	s.MarkDirty()
	return s
}

// SetArrows sets the previous and next buttons. They are drawn over the
// edges of the content and never take the focus. nil removes an arrow.
func (s *Swiper) SetArrows(prev, next *Button) *Swiper {
	s.prev, s.next = prev, next
	if prev != nil {
		prev.SetFocusable(false).SetSelectedFunc(s.ShowPrevious)
	}
	if next != nil {
		next.SetFocusable(false).SetSelectedFunc(s.ShowNext)
	}
	s.MarkDirty()
	return s
}

// NewArrows returns a pair of arrow buttons for the given axis.
func NewArrows(axis swiper.Axis) (prev, next *Button) {
	if axis == swiper.Vertical {
		return NewButton(GeometricBlackUpPointingTriangle), NewButton(GeometricBlackDownPointingTriangle)
	}
	return NewButton(GeometricBlackLeftPointingTriangle), NewButton(GeometricBlackRightPointingTriangle)
}

func (s *Swiper) selectFromIndicator(index int) {
	current := s.pattern.IndicatorIndex()
	total := s.pattern.Total()
	next, prev := current+1, current-1
	if s.pattern.Loop() {
		index = swiper.LoopIndex(index, total)
		next, prev = swiper.LoopIndex(next, total), swiper.LoopIndex(prev, total)
	}
	switch {
	case index == current:
	case index == next:
		s.ShowNext()
	case index == prev:
		s.ShowPrevious()
	default:
		s.SwipeTo(index)
	}
}

// SetCount changes the number of pages. Pages are created anew as they
// scroll into view.
func (s *Swiper) SetCount(count int) *Swiper {
	count = max(count, 0)
	if s.pages.count == count {
		return s
	}
	s.pages.count = count
	s.pattern.ChildrenChanged()
	s.MarkDirty()
	return s
}

// Count returns the number of pages.
func (s *Swiper) Count() int {
	return s.pages.Count()
}

// Page returns the primitive of a realized page.
func (s *Swiper) Page(index int) (Primitive, bool) {
	id, ok := s.pages.byIndex[index]
	if !ok {
		return nil, false
	}
	pg, ok := s.pages.nodes.Get(id)
	if !ok {
		return nil, false
	}
	return pg.item, true
}

// Remeasure lays the pages out again, for example after a page finished
// loading.
func (s *Swiper) Remeasure() {
	s.pattern.Remeasure()
	s.MarkDirty()
}

// SwipeTo animates to the page with the given index.
func (s *Swiper) SwipeTo(index int) {
	s.pattern.SwipeTo(index)
	s.MarkDirty()
}

// SwipeToWithoutAnimation jumps to the page with the given index.
func (s *Swiper) SwipeToWithoutAnimation(index int) {
	s.pattern.SwipeToWithoutAnimation(index)
	s.MarkDirty()
}

// ShowNext animates to the next page.
func (s *Swiper) ShowNext() {
	s.pattern.ShowNext()
	s.MarkDirty()
}

// ShowPrevious animates to the previous page.
func (s *Swiper) ShowPrevious() {
	s.pattern.ShowPrevious()
	s.MarkDirty()
}

// FinishAnimation jumps to the end of the running move. done, if not nil,
// is called once the swiper rests.
func (s *Swiper) FinishAnimation(done func()) {
	s.pattern.FinishAnimation(done)
	s.MarkDirty()
}

// CurrentIndex returns the committed page.
func (s *Swiper) CurrentIndex() int {
	return s.pattern.CurrentIndex()
}

// PerformAction runs an accessibility action and reports whether it applied.
func (s *Swiper) PerformAction(a swiper.Action) bool {
	ok := s.pattern.PerformAction(a)
	if ok {
		s.MarkDirty()
	}
	return ok
}

// SetVisible tells the swiper whether it is inside the visible area.
// Autoplay pauses while it is not. A layers container calls it when the
// swiper's layer is shown or hidden.
func (s *Swiper) SetVisible(visible bool) {
	s.pattern.SetVisible(visible)
}

// SetWindowShown tells the swiper whether the terminal is shown.
func (s *Swiper) SetWindowShown(shown bool) {
	s.pattern.SetWindowShown(shown)
}

// SetEvents replaces the event callbacks.
func (s *Swiper) SetEvents(e swiper.Events) *Swiper {
	s.pattern.SetEvents(e)
	return s
}

// SetPrefetcher registers a loader warmed after every move.
func (s *Swiper) SetPrefetcher(pf swiper.Prefetcher) *Swiper {
	s.pattern.SetPrefetcher(pf)
	return s
}

// SetProps replaces the whole configuration.
func (s *Swiper) SetProps(props swiper.Props) *Swiper {
	s.pattern.SetProps(props)
	s.pages.axis = s.pattern.Props().Axis
	s.MarkDirty()
	return s
}

// Props returns the configuration in use.
func (s *Swiper) Props() swiper.Props {
	return s.pattern.Props()
}

func (s *Swiper) updateProps(update func(p *swiper.Props)) *Swiper {
	props := s.pattern.Props()
	update(&props)
	return s.SetProps(props)
}

// SetLoop enables wrapping around from the last page to the first.
func (s *Swiper) SetLoop(loop bool) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.Loop = loop })
}

// SetDisplayCount sets the number of pages sharing the viewport.
func (s *Swiper) SetDisplayCount(count int) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.DisplayCount = count })
}

// SetMinSize derives the display count from the viewport so that every
// page is at least size cells long. Zero disables it.
func (s *Swiper) SetMinSize(size int) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.MinSize = float64(size) })
}

// SetDisplayMode selects how the page length is determined.
func (s *Swiper) SetDisplayMode(mode swiper.DisplayMode) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.DisplayMode = mode })
}

// SetItemSize forces the page length. Zero disables it.
func (s *Swiper) SetItemSize(size int) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.ItemSize = float64(size) })
}

// SetMargins sets the space that shows the neighbors before and after the
// current page.
func (s *Swiper) SetMargins(prev, next int) *Swiper {
	return s.updateProps(func(p *swiper.Props) {
		p.PrevMargin = float64(prev)
		p.NextMargin = float64(next)
	})
}

// SetItemSpace sets the gap between two pages.
func (s *Swiper) SetItemSpace(space int) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.ItemSpace = float64(space) })
}

// SetCachedCount sets the number of pages kept beyond each visible edge.
func (s *Swiper) SetCachedCount(count int) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.CachedCount = count })
}

// SetDuration sets the length of programmatic moves.
func (s *Swiper) SetDuration(d time.Duration) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.Duration = d })
}

// SetCurve sets the easing of moves. nil selects the default.
func (s *Swiper) SetCurve(c swiper.Curve) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.Curve = c })
}

// SetAutoPlay enables turning the page every interval.
func (s *Swiper) SetAutoPlay(enabled bool, interval time.Duration) *Swiper {
	return s.updateProps(func(p *swiper.Props) {
		p.AutoPlay = enabled
		if interval > 0 {
			p.Interval = interval
		}
	})
}

// SetDisableSwipe disables dragging.
func (s *Swiper) SetDisableSwipe(disabled bool) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.DisableSwipe = disabled })
}

// SetEdgeEffect selects what happens when dragging past the ends.
func (s *Swiper) SetEdgeEffect(effect swiper.EdgeEffect) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.EdgeEffect = effect })
}

// SetAxis sets the axis pages are laid out on.
func (s *Swiper) SetAxis(axis swiper.Axis) *Swiper {
	return s.updateProps(func(p *swiper.Props) { p.Axis = axis })
}

// Draw lays the pages out and draws the visible ones.
func (s *Swiper) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, width, height := s.GetInnerRect()
	if s.indicator != nil && height > 1 {
		height--
		s.indicator.SetRect(x, y+height, width, 1)
	}
	s.contentX, s.contentY, s.contentWidth, s.contentHeight = x, y, max(width, 0), max(height, 0)
	if s.runner == nil || width <= 0 || height <= 0 {
		return
	}

	props := s.pattern.Props()
	vertical := props.Axis == swiper.Vertical
	main, cross := width, height
	if vertical {
		main, cross = height, width
	}
	s.pages.axis = props.Axis
	s.pages.area = swiper.Size{Main: float64(main), Cross: float64(cross)}
	s.pattern.Layout(swiper.Constraints{Main: float64(main), Cross: float64(cross)})

	origin := props.PrevMargin - s.pattern.ViewportStart()
	clip := blitOptions{clipX: x, clipY: y, clipWidth: width, clipHeight: height}
	for item := range s.pattern.Items() {
		pg, ok := s.pages.nodes.Get(item.Node)
		if !ok {
			continue
		}
		start := int(math.Round(origin + item.StartPos))
		length := int(math.Round(origin+item.EndPos)) - start
		if length <= 0 || start >= main || start+length <= 0 {
			continue
		}
		pw, ph := length, height
		o := clip
		o.dx, o.dy = x+start, y
		if vertical {
			pw, ph = width, length
			o.dx, o.dy = x, y+start
		}
		pg.item.SetRect(0, 0, pw, ph)
		s.drawPage(pg, pw, ph)
		pg.screen.frame.blit(screen, o)
	}
	if fade := s.pattern.FadeOffset(); fade != 0 {
		s.drawFade(screen, fade, vertical)
	}

	s.updatePeers()
	if s.indicator != nil {
		s.indicator.Draw(screen)
	}
	if s.prev != nil {
		s.prev.Draw(screen)
	}
	if s.next != nil {
		s.next.Draw(screen)
	}
}

// drawPage draws a page into its frame unless the frame is still current.
func (s *Swiper) drawPage(pg *page, width, height int) {
	tracker, tracked := pg.item.(dirtyTracker)
	if pg.drawn && tracked && !tracker.IsDirty() {
		return
	}
	pg.screen.reset(width, height)
	pg.item.Draw(pg.screen)
	pg.drawn = true
	if tracked {
		tracker.MarkClean()
	}
}

// drawFade dims the content at the edge the user drags past. The number of
// dimmed lines grows with the overscroll.
func (s *Swiper) drawFade(screen tcell.Screen, fade float64, vertical bool) {
	x, y, width, height := s.contentX, s.contentY, s.contentWidth, s.contentHeight
	main := width
	if vertical {
		main = height
	}
	n := min(int(math.Ceil(math.Abs(fade))), main/2)
	for i := range n {
		line := i
		if fade > 0 {
			line = main - 1 - i
		}
		if vertical {
			for cx := x; cx < x+width; cx++ {
				dim(screen, cx, y+line)
			}
		} else {
			for cy := y; cy < y+height; cy++ {
				dim(screen, x+line, cy)
			}
		}
	}
}

func dim(screen tcell.Screen, x, y int) {
	str, style, _ := screen.Get(x, y)
	if str == "" {
		str = " "
	}
	screen.Put(x, y, str, style.Dim(true))
}

// position returns the page at the viewport start including the fraction
// scrolled past it, in [0, total).
func (s *Swiper) position() float64 {
	total := s.pattern.Total()
	if total <= 0 {
		return 0
	}
	start := s.pattern.ViewportStart()
	var cur swiper.ItemPosition
	found := false
	for item := range s.pattern.Items() {
		if found && item.StartPos > start+1e-6 {
			break
		}
		cur, found = item, true
	}
	if !found {
		return float64(s.pattern.CurrentIndex())
	}
	pos := float64(swiper.LoopIndex(cur.Index, total))
	if pitch := cur.Size() + s.pattern.Props().ItemSpace; pitch > 0 {
		pos += min(max((start-cur.StartPos)/pitch, 0), 1)
	}
	if !s.pattern.Loop() {
		return min(pos, float64(total-1))
	}
	if pos >= float64(total) {
		pos -= float64(total)
	}
	return pos
}

// updatePeers places the indicator and arrows and mirrors the position.
func (s *Swiper) updatePeers() {
	index := s.pattern.IndicatorIndex()
	if s.indicator != nil {
		s.indicator.UpdateIndicator(IndicatorState{
			Index:        index,
			Total:        s.pattern.Total(),
			DisplayCount: max(s.pattern.Metrics().DisplayCount, 1),
			Position:     s.position(),
			Loop:         s.pattern.Loop(),
		})
	}

	loop := s.pattern.Loop()
	vertical := s.pattern.Props().Axis == swiper.Vertical
	x, y, width, height := s.contentX, s.contentY, s.contentWidth, s.contentHeight
	place := func(b *Button, end bool, disabled bool) {
		if b == nil {
			return
		}
		w := StringWidth(b.GetLabel()) + 2
		switch {
		case vertical && end:
			b.SetRect(x+(width-w)/2, y+height-1, w, 1)
		case vertical:
			b.SetRect(x+(width-w)/2, y, w, 1)
		case end:
			b.SetRect(x+width-w, y+height/2, w, 1)
		default:
			b.SetRect(x, y+height/2, w, 1)
		}
		b.SetDisabled(disabled)
	}
	total := s.pattern.Total()
	place(s.prev, false, total == 0 || !loop && index <= 0)
	place(s.next, true, total == 0 || !loop && index >= s.pattern.Metrics().MaxIndex())
}

// InputHandler turns pages with the key map.
func (s *Swiper) InputHandler(event *tcell.EventKey) Command {
	switch {
	case keybind.Matches(event, s.keyMap.Prev):
		s.ShowPrevious()
	case keybind.Matches(event, s.keyMap.Next):
		s.ShowNext()
	case keybind.Matches(event, s.keyMap.First):
		s.SwipeTo(0)
	case keybind.Matches(event, s.keyMap.Last):
		s.SwipeTo(s.pattern.Total() - 1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler drags the content and turns pages with the wheel. The
// indicator and the arrows get the first chance at every event.
func (s *Swiper) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if s.drag.pending {
		return s.handleDrag(action, x, y)
	}
	if !s.InRect(x, y) {
		return nil, nil
	}

	for _, peer := range s.peers() {
		if capture, cmd := peer.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}

	inContent := x >= s.contentX && x < s.contentX+s.contentWidth &&
		y >= s.contentY && y < s.contentY+s.contentHeight
	switch action {
	case MouseLeftDown:
		if !inContent {
			return nil, SetFocusCommand{Target: s}
		}
		s.drag = dragState{pending: true, x: x, y: y, last: s.now()}
		return s, SetFocusCommand{Target: s}
	case MouseScrollDown, MouseScrollRight:
		s.ShowNext()
		return nil, RedrawCommand{}
	case MouseScrollUp, MouseScrollLeft:
		s.ShowPrevious()
		return nil, RedrawCommand{}
	}
	return nil, nil
}

func (s *Swiper) peers() []Primitive {
	peers := make([]Primitive, 0, 3)
	if s.prev != nil {
		peers = append(peers, s.prev)
	}
	if s.next != nil {
		peers = append(peers, s.next)
	}
	if s.indicator != nil {
		peers = append(peers, s.indicator)
	}
	return peers
}

// handleDrag follows a pointer that went down inside the content. The
// drag starts with the first movement.
func (s *Swiper) handleDrag(action MouseAction, x, y int) (Primitive, Command) {
	switch action {
	case MouseMove:
		delta := x - s.drag.x
		if s.pattern.Props().Axis == swiper.Vertical {
			delta = y - s.drag.y
		}
		s.drag.x, s.drag.y = x, y
		if delta == 0 {
			return s, nil
		}
		if !s.drag.started {
			s.pattern.DragStart()
			s.drag.started = s.pattern.Dragging()
			if !s.drag.started {
				return s, ConsumeEventCommand{}
			}
		}
		now := s.now()
		if dt := now.Sub(s.drag.last).Seconds(); dt > 0 {
			s.drag.velocity = 0.6*float64(delta)/dt + 0.4*s.drag.velocity
		}
		s.drag.last = now
		s.pattern.DragUpdate(float64(delta))
		s.MarkDirty()
		return s, RedrawCommand{}
	case MouseLeftUp:
		drag := s.drag
		s.drag = dragState{}
		if !drag.started {
			return nil, nil
		}
		velocity := drag.velocity
		if s.now().Sub(drag.last) > dragIdle {
			velocity = 0
		}
		debug.Log("swiper: release velocity=%.1f cells/s", velocity)
		s.pattern.DragEnd(velocity)
		s.MarkDirty()
		return nil, RedrawCommand{}
	}
	return s, nil
}

// Blur cancels a drag in progress.
func (s *Swiper) Blur() {
	if s.drag.started {
		s.pattern.DragCancel()
	}
	s.drag = dragState{}
	s.Box.Blur()
}
