package swiper

import (
	"math"

	"github.com/xqrs/swipeview/internal/debug"
)

// Drag deltas and release velocities are in pointer space: positive values
// move the pointer toward the end of the axis, which reveals lower indices.

// DragStart begins a drag. It cancels autoplay and any running animation.
func (p *Pattern) DragStart() {
	if p.props.DisableSwipe || !p.attached || p.dragging || p.total() <= 0 {
		return
	}
	p.autoplay.Suspend(SuspendDragging)
	p.stopSession()
	p.dragging = true
	p.gestureIndex = p.CurrentIndex()
	p.longPredict = false
	p.nestedStart()
	debug.Log("gesture: drag start at %d", p.gestureIndex)
}

// DragUpdate moves the content by delta, applying the edge effect past the
// first or last item.
func (p *Pattern) DragUpdate(delta float64) {
	if !p.dragging || delta == 0 {
		return
	}
	p.scroll(-delta)
	index := p.CurrentIndex()
	if pos, ok := p.straddling(); ok {
		index = LoopIndex(pos.Index, p.total())
	}
	p.events.gestureSwipe(index, p.animationInfo(0, p.ViewportStart()))
}

// DragEnd releases the drag with the given velocity in units per second.
func (p *Pattern) DragEnd(velocity float64) {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.autoplay.Resume(SuspendDragging)
	scroll := -velocity
	debug.Log("gesture: drag end velocity=%.1f", velocity)

	if !p.loop() {
		switch {
		case p.fadeOffset != 0:
			p.nestedEnd()
			p.startFade()
			return
		case p.overscroll() > 0:
			friction := p.friction()
			if p.nestedFling(scroll) {
				scroll = 0
			}
			p.nestedEnd()
			p.startSpring(scroll * friction)
			return
		case p.pushingEdge(scroll):
			consumed := p.nestedFling(scroll)
			if consumed || p.props.EdgeEffect == EdgeNone {
				p.nestedEnd()
				p.settleNow(p.nearestIndex())
				return
			}
		}
	}

	target := p.flingTarget(velocity)
	p.nestedEnd()
	p.animateTo(target, scroll, true)
}

// DragCancel abandons a drag and returns to the nearest index.
func (p *Pattern) DragCancel() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.autoplay.Resume(SuspendDragging)
	p.nestedEnd()
	if p.fadeOffset != 0 {
		p.startFade()
		return
	}
	if p.overscroll() > 0 {
		p.startSpring(0)
		return
	}
	p.animateTo(p.nearestIndex(), 0, false)
}

// scroll applies a content-space delta: in-bounds movement first, then the
// parent, then the edge effect.
func (p *Pattern) scroll(delta float64) {
	if p.loop() {
		p.scrollBy(delta)
		return
	}
	if p.fadeOffset != 0 && (p.fadeOffset > 0) != (delta > 0) {
		if math.Abs(delta) <= math.Abs(p.fadeOffset) {
			p.fadeOffset += delta
			return
		}
		delta += p.fadeOffset
		p.fadeOffset = 0
	}

	lo, hi := p.bounds()
	o := p.offset()
	reached := min(max(o+delta, min(lo, o)), max(hi, o))
	inside := reached - o
	outside := delta - inside
	if inside != 0 {
		p.scrollBy(inside)
	}
	if math.Abs(outside) < epsilon {
		return
	}

	outside = p.nestedScroll(outside, PhaseScroll)
	if outside == 0 {
		return
	}
	if p.props.NestedScroll != NestedSelfOverScrollFirst {
		if outside = p.nestedScroll(outside, PhaseOverScroll); outside == 0 {
			return
		}
	}
	rest := p.overscrollBy(outside)
	if rest != 0 && p.props.NestedScroll == NestedSelfOverScrollFirst {
		p.nestedScroll(rest, PhaseOverScroll)
	}
}

func (p *Pattern) scrollBy(delta float64) {
	p.currentDelta += delta
	p.relayout()
}

// overscrollBy applies the edge effect to movement past an edge and returns
// the part it rejected.
func (p *Pattern) overscrollBy(delta float64) float64 {
	switch p.props.EdgeEffect {
	case EdgeSpring:
		p.scrollBy(delta * p.friction())
		return 0
	case EdgeFade:
		limit := p.metrics.ContentMain
		p.fadeOffset = min(max(p.fadeOffset+delta, -limit), limit)
		return 0
	default:
		return delta
	}
}

// friction returns the spring resistance for the current overscroll.
func (p *Pattern) friction() float64 {
	ratio := 1.0
	if c := p.metrics.ContentMain; c > 0 {
		ratio = min(max(p.overscroll()/c, 0), 1)
	}
	return p.physics.Friction * (1 - ratio) * (1 - ratio)
}

// pushingEdge reports whether a scroll-space velocity pushes against an
// edge the viewport rests on.
func (p *Pattern) pushingEdge(velocity float64) bool {
	lo, hi := p.bounds()
	o := p.offset()
	return (velocity < 0 && o <= lo+epsilon) || (velocity > 0 && o >= hi-epsilon)
}

// settleNow moves to index without animation and commits it.
func (p *Pattern) settleNow(index int) {
	if dest, ok := p.itemStart(index); ok {
		p.moveTo(dest)
	}
	p.settle(index)
}

// flingTarget picks the index a release with the given pointer velocity
// snaps to.
func (p *Pattern) flingTarget(velocity float64) int {
	pos, ok := p.straddling()
	if !ok {
		return p.currentIndex
	}
	length := pos.Size()
	if length <= 0 {
		return pos.Index
	}
	visible := pos.EndPos - p.offset()
	fast := math.Abs(velocity) > p.physics.VelocityThreshold
	if velocity > 0 {
		if fast || visible > length/2 {
			return pos.Index
		}
		return pos.Index + 1
	}
	if fast || length-visible > length/2 {
		return pos.Index + 1
	}
	return pos.Index
}
