package swiper

import (
	"iter"
	"math"

	"github.com/xqrs/swipeview/internal/debug"
)

const epsilon = 1e-6

// FrameClock schedules animation frames. The host answers RequestFrame by
// calling [Pattern.Tick] on its next frame for as long as
// [Pattern.Animating] reports true.
type FrameClock interface {
	RequestFrame()
}

// Prefetcher warms children that are likely to be realized soon.
type Prefetcher interface {
	Prefetch(indices []int)
}

// Host bundles the collaborators a pattern needs while attached.
type Host struct {
	Children  Children
	Scheduler Scheduler
	Clock     FrameClock
}

// GestureState is the externally visible state of the interaction.
type GestureState uint8

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureSnapping
	GestureSpring
	GestureFade
)

func (g GestureState) String() string {
	switch g {
	case GestureDragging:
		return "dragging"
	case GestureSnapping:
		return "snapping"
	case GestureSpring:
		return "spring"
	case GestureFade:
		return "fade"
	default:
		return "idle"
	}
}

// Pattern owns the scroll, index and animation state of one swiper. It is
// not safe for concurrent use; every method must run on the thread that
// drives the host's frames.
type Pattern struct {
	props   Props
	physics Physics
	events  Events

	host     Host
	attached bool

	positions   *Positions
	metrics     Metrics
	result      Result
	constraints Constraints
	measured    bool
	dirty       bool

	currentOffset float64
	currentDelta  float64
	fadeOffset    float64
	translate     float64
	lastReported  float64

	currentIndex   int
	jumpIndex      *int
	targetIndex    *int
	indicatorIndex int
	gestureIndex   int

	session  Session
	dragging bool

	autoplay *Autoplay

	parent       NestedParent
	nestedActive bool

	prefetcher  Prefetcher
	longPredict bool
}

// NewPattern returns a detached pattern configured with props.
func NewPattern(props Props) *Pattern {
	p := &Pattern{
		props:        props.normalized(),
		physics:      DefaultPhysics(),
		positions:    NewPositions(),
		lastReported: math.NaN(),
		longPredict:  true,
	}
	p.autoplay = NewAutoplay(nil, p.autoplayTick)
	return p
}

// Attach connects the pattern to its host and places the configured index.
func (p *Pattern) Attach(h Host) {
	p.host = h
	p.attached = true

	index := 0
	if total := p.total(); total > 0 {
		index = min(max(p.props.Index, 0), total-1)
	}
	p.currentIndex = index
	p.indicatorIndex = index
	p.jumpIndex = &index
	p.dirty = true

	p.autoplay.scheduler = h.Scheduler
	p.autoplay.SetInterval(p.props.Interval)
	p.refreshAutoplay()
	debug.Log("pattern: attached at index %d", index)
}

// Detach stops every activity and releases all realized children.
func (p *Pattern) Detach() {
	if !p.attached {
		return
	}
	p.stopSession()
	p.dragging = false
	p.autoplay.Cancel()
	p.autoplay.scheduler = nil
	p.SetNestedParent(nil)

	NewAlgorithm(p.props, p.host.Children, p.positions, Snapshot{}).releaseAll()
	p.attached = false
	p.measured = false
	p.host = Host{}
	debug.Log("pattern: detached")
}

// SetEvents replaces the event callbacks.
func (p *Pattern) SetEvents(e Events) {
	p.events = e
}

// SetPhysics replaces the motion constants.
func (p *Pattern) SetPhysics(ph Physics) {
	p.physics = ph
}

// Physics returns the motion constants in use.
func (p *Pattern) Physics() Physics {
	return p.physics
}

// SetPrefetcher registers the lazy loader that is warmed after each settle.
func (p *Pattern) SetPrefetcher(pf Prefetcher) {
	p.prefetcher = pf
}

// Props returns the normalized configuration.
func (p *Pattern) Props() Props {
	return p.props
}

// Layout runs a layout pass against c if anything changed since the last
// one and returns its result. Hosts call it before every draw.
func (p *Pattern) Layout(c Constraints) Result {
	if !p.attached {
		return Result{EndIndex: -1}
	}
	if p.measured && (c.Main != p.constraints.Main || c.Cross != p.constraints.Cross) {
		p.constraints = c
		p.OnWindowSizeChanged()
		return p.result
	}
	first := !p.measured
	p.constraints = c
	p.measured = true
	switch {
	case !first && p.metrics.Total != p.total():
		p.ChildrenChanged()
	case first || p.dirty || p.currentDelta != 0 || p.jumpIndex != nil:
		p.relayout()
	}
	if first && p.targetIndex != nil && !p.session.Active() {
		target := *p.targetIndex
		p.targetIndex = nil
		p.animateTo(target, 0, false)
	}
	return p.result
}

// ChildrenChanged tells the pattern that the number of children changed.
// A committed index past the new end is clamped and reported.
func (p *Pattern) ChildrenChanged() {
	total := p.total()
	p.stopSession()
	if total <= 0 {
		p.relayout()
		return
	}
	if p.loop() {
		p.currentIndex = LoopIndex(p.currentIndex, total)
	} else if p.currentIndex >= total {
		p.SwipeToWithoutAnimation(total - 1)
		return
	}
	index := p.currentIndex
	p.jumpIndex = &index
	p.relayout()
	p.refreshAutoplay()
}

// Remeasure reruns layout after the natural size of a child changed, for
// example when its content finished loading.
func (p *Pattern) Remeasure() {
	p.relayout()
}

// relayout runs a layout pass with the stored constraints.
func (p *Pattern) relayout() {
	if !p.attached || !p.measured {
		p.dirty = true
		return
	}
	snap := Snapshot{
		Offset:          p.currentOffset,
		Delta:           p.currentDelta,
		Current:         p.currentIndex,
		JumpIndex:       p.jumpIndex,
		TargetIndex:     p.targetIndex,
		Pinned:          p.pinned(),
		Translate:       p.translate,
		AllowOverscroll: p.dragging || p.session.Kind == SessionSpringOverscroll,
	}
	alg := NewAlgorithm(p.props, p.host.Children, p.positions, snap)
	alg.Measure(p.constraints)
	p.result = alg.Layout()
	p.metrics = alg.Metrics()
	p.currentOffset = p.result.Offset
	p.currentDelta = 0
	p.jumpIndex = nil
	p.dirty = false
	p.contentDidScroll()
}

func (p *Pattern) pinned() []int {
	pins := make([]int, 0, 2+len(p.session.pinned))
	pins = append(pins, p.currentIndex)
	if p.targetIndex != nil {
		pins = append(pins, *p.targetIndex)
	}
	return append(pins, p.session.pinned...)
}

func (p *Pattern) requestFrame() {
	if p.host.Clock != nil {
		p.host.Clock.RequestFrame()
	}
}

func (p *Pattern) contentDidScroll() {
	if p.events.OnContentDidScroll == nil {
		return
	}
	start := p.ViewportStart()
	if start == p.lastReported {
		return
	}
	p.lastReported = start
	total := p.total()
	selected := p.CurrentIndex()
	for pos := range p.positions.All() {
		length := pos.Size()
		if length <= 0 {
			continue
		}
		p.events.OnContentDidScroll(selected, LoopIndex(pos.Index, total), (pos.StartPos-start)/length, length)
	}
}

func (p *Pattern) total() int {
	if p.host.Children == nil {
		return 0
	}
	return p.host.Children.Count()
}

func (p *Pattern) loop() bool {
	count := p.props.DisplayCount
	if p.measured {
		count = p.metrics.DisplayCount
	}
	return EffectiveLoop(p.props.Loop, count, p.total())
}

// maxIndex returns the last index a non-looping swiper settles on.
func (p *Pattern) maxIndex() int {
	count := p.props.DisplayCount
	if p.measured {
		count = p.metrics.DisplayCount
		if p.contentFits() {
			return 0
		}
	}
	return max(p.total()-count, 0)
}

// contentFits reports whether every item fits in the content area at once.
func (p *Pattern) contentFits() bool {
	first, ok := p.positions.Get(0)
	if !ok {
		return false
	}
	last, ok := p.positions.Get(p.total() - 1)
	return ok && last.EndPos-first.StartPos <= p.metrics.ContentMain
}

func (p *Pattern) clampTarget(i int) int {
	if p.loop() {
		return i
	}
	return min(max(i, 0), p.maxIndex())
}

// moveTo places the viewport start at v, dropping pending scroll.
func (p *Pattern) moveTo(v float64) {
	p.currentOffset = v
	p.currentDelta = 0
	p.dirty = true
}

// offset returns the viewport start including pending scroll.
func (p *Pattern) offset() float64 {
	return p.currentOffset + p.currentDelta
}

func (p *Pattern) itemStart(i int) (float64, bool) {
	pos, ok := p.positions.Get(i)
	if !ok {
		return 0, false
	}
	return pos.StartPos, true
}

func (p *Pattern) atRest() bool {
	start, ok := p.itemStart(p.currentIndex)
	return ok && math.Abs(start-p.offset()) < epsilon && p.fadeOffset == 0
}

// straddling returns the realized item whose extent, including its trailing
// space, contains the viewport start. Before the first item it returns the
// first item.
func (p *Pattern) straddling() (ItemPosition, bool) {
	res, ok := p.positions.First()
	if !ok {
		return res, false
	}
	o := p.offset()
	for pos := range p.positions.All() {
		if pos.StartPos > o {
			break
		}
		res = pos
	}
	return res, true
}

// bounds returns the lowest and highest viewport start of a non-looping
// swiper. Edges that are not realized are extrapolated from the realized
// items.
func (p *Pattern) bounds() (lo, hi float64) {
	first, ok := p.positions.First()
	if !ok {
		return p.offset(), p.offset()
	}
	last, _ := p.positions.Last()
	pitch := (last.EndPos - first.StartPos + p.props.ItemSpace) / float64(last.Index-first.Index+1)
	lo = first.StartPos - float64(first.Index)*pitch
	hi = last.EndPos + float64(p.total()-1-last.Index)*pitch - p.metrics.ContentMain
	return lo, max(hi, lo)
}

// overscroll returns how far the viewport is past the nearest edge.
func (p *Pattern) overscroll() float64 {
	if p.loop() {
		return 0
	}
	lo, hi := p.bounds()
	o := p.offset()
	switch {
	case o < lo-epsilon:
		return lo - o
	case o > hi+epsilon:
		return o - hi
	}
	return 0
}

// CurrentIndex returns the committed bounded index.
func (p *Pattern) CurrentIndex() int {
	return LoopIndex(p.currentIndex, p.total())
}

// TargetIndex returns the bounded index an in-flight move is heading to.
func (p *Pattern) TargetIndex() (int, bool) {
	if p.targetIndex == nil {
		return 0, false
	}
	return LoopIndex(*p.targetIndex, p.total()), true
}

// IndicatorIndex returns the index indicators should highlight.
func (p *Pattern) IndicatorIndex() int {
	return p.indicatorIndex
}

// Total returns the number of children.
func (p *Pattern) Total() int {
	return p.total()
}

// Loop reports whether looping is in effect.
func (p *Pattern) Loop() bool {
	return p.loop()
}

// Metrics returns the values derived by the last layout pass.
func (p *Pattern) Metrics() Metrics {
	return p.metrics
}

// Result returns the last layout result.
func (p *Pattern) Result() Result {
	return p.result
}

// Offset returns the committed viewport start in content space.
func (p *Pattern) Offset() float64 {
	return p.currentOffset
}

// Translate returns the render translation of an in-flight property
// animation.
func (p *Pattern) Translate() float64 {
	return p.translate
}

// ViewportStart returns the content-space position drawn at the start of
// the content area.
func (p *Pattern) ViewportStart() float64 {
	return p.currentOffset + p.translate
}

// FadeOffset returns the paint-time overscroll of the fade edge effect.
// Negative values are past the start edge.
func (p *Pattern) FadeOffset() float64 {
	return p.fadeOffset
}

// Items iterates over the realized items in index order.
func (p *Pattern) Items() iter.Seq[ItemPosition] {
	return p.positions.All()
}

// Item returns the realized item with the given logical index.
func (p *Pattern) Item(i int) (ItemPosition, bool) {
	return p.positions.Get(i)
}

// Dragging reports whether a drag is in progress.
func (p *Pattern) Dragging() bool {
	return p.dragging
}

// GestureState returns the interaction state.
func (p *Pattern) GestureState() GestureState {
	if p.dragging {
		return GestureDragging
	}
	switch p.session.Kind {
	case SessionCurveTranslate, SessionPropertyTranslate:
		return GestureSnapping
	case SessionSpringOverscroll:
		return GestureSpring
	case SessionFadeOverscroll:
		return GestureFade
	}
	return GestureIdle
}

// Autoplay returns the autoplay driver.
func (p *Pattern) Autoplay() *Autoplay {
	return p.autoplay
}

func (p *Pattern) setIndicator(index int) {
	if p.indicatorIndex == index {
		return
	}
	p.indicatorIndex = index
	p.events.indicatorChange(index)
}

func (p *Pattern) refreshAutoplay() {
	a := p.autoplay
	a.SetInterval(p.props.Interval)
	a.enabled = p.props.AutoPlay
	if !p.loop() && p.CurrentIndex() >= p.maxIndex() {
		a.suspended |= SuspendAtEnd
	} else {
		a.suspended &^= SuspendAtEnd
	}
	a.Schedule()
}

func (p *Pattern) prefetch() {
	if p.prefetcher == nil || !p.longPredict {
		return
	}
	total := p.total()
	if total <= 0 || p.result.EndIndex < p.result.StartIndex {
		return
	}
	reach := p.props.CachedCount + 1
	seen := make(map[int]bool)
	var indices []int
	for i := p.result.StartIndex - reach; i <= p.result.EndIndex+reach; i++ {
		if !p.loop() && (i < 0 || i >= total) {
			continue
		}
		b := LoopIndex(i, total)
		if !seen[b] {
			seen[b] = true
			indices = append(indices, b)
		}
	}
	p.prefetcher.Prefetch(indices)
}
