package swiper

import (
	"math"

	"github.com/xqrs/swipeview/internal/debug"
)

// Action is an accessibility action.
type Action uint8

const (
	ActionScrollForward Action = iota
	ActionScrollBackward
)

// SwipeTo animates to the bounded index. In loop mode the move stays within
// the current lap. A request for the target already in flight is dropped.
func (p *Pattern) SwipeTo(index int) {
	target, ok := p.resolve(index)
	if !ok || p.dragging {
		return
	}
	if p.targetIndex != nil && *p.targetIndex == target {
		return
	}
	if !p.session.Active() && target == p.currentIndex && p.atRest() {
		return
	}
	debug.Log("controller: swipe to %d", index)
	p.animateTo(target, 0, false)
}

// SwipeToWithoutAnimation jumps to the bounded index and commits it.
func (p *Pattern) SwipeToWithoutAnimation(index int) {
	target, ok := p.resolve(index)
	if !ok {
		return
	}
	p.stopSession()
	p.fadeOffset = 0
	prev := p.CurrentIndex()
	p.currentIndex = target
	p.jumpIndex = &target
	p.relayout()
	debug.Log("controller: jump to %d", index)

	now := p.CurrentIndex()
	p.setIndicator(now)
	if now != prev {
		p.events.change(now)
	}
	p.refreshAutoplay()
}

// ShowNext animates one item forward. Repeated calls during a move advance
// from the in-flight target.
func (p *Pattern) ShowNext() {
	p.step(1)
}

// ShowPrevious animates one item backward.
func (p *Pattern) ShowPrevious() {
	p.step(-1)
}

func (p *Pattern) step(dir int) {
	if p.total() <= 0 || p.dragging {
		return
	}
	base := p.currentIndex
	if p.session.translating() {
		base = p.session.Target
	} else if p.targetIndex != nil {
		base = *p.targetIndex
	}
	next := base + dir
	if !p.loop() && (next < 0 || next > p.maxIndex()) {
		return
	}
	p.animateTo(next, 0, false)
}

// FinishAnimation completes the running animation immediately, then calls
// done if it is not nil.
func (p *Pattern) FinishAnimation(done func()) {
	switch s := p.session; s.Kind {
	case SessionCurveTranslate:
		p.settleNow(s.Target)
	case SessionPropertyTranslate:
		p.finishPropertyTranslate()
	case SessionSpringOverscroll:
		p.moveTo(p.edge(s.startEdge))
		p.settle(p.nearestIndex())
	case SessionFadeOverscroll:
		p.fadeOffset = 0
		p.settle(p.nearestIndex())
	}
	if done != nil {
		done()
	}
}

// SetProps applies a new configuration. Layout-affecting changes relayout
// around the committed index; a changed Index jumps without animation.
func (p *Pattern) SetProps(props Props) {
	props = props.normalized()
	old := p.props
	p.props = props
	if !p.attached {
		return
	}

	if props.DisableSwipe && p.dragging {
		p.DragCancel()
	}
	switch {
	case props.Index != old.Index:
		p.SwipeToWithoutAnimation(props.Index)
	case !old.layoutEqual(props):
		p.stopSession()
		if !p.loop() {
			p.currentIndex = min(max(p.currentIndex, 0), max(p.total()-1, 0))
		}
		index := p.currentIndex
		p.jumpIndex = &index
		p.relayout()
	}
	if !old.layoutEqual(props) || old.AutoPlay != props.AutoPlay || old.Interval != props.Interval {
		p.refreshAutoplay()
	}
}

// SetVisible reports whether the swiper is inside the visible area.
func (p *Pattern) SetVisible(visible bool) {
	if visible {
		p.autoplay.Resume(SuspendHidden)
	} else {
		p.autoplay.Suspend(SuspendHidden)
	}
}

// SetWindowShown reports whether the window hosting the swiper is shown.
func (p *Pattern) SetWindowShown(shown bool) {
	if shown {
		p.autoplay.Resume(SuspendWindowHidden)
	} else {
		p.autoplay.Suspend(SuspendWindowHidden)
	}
}

// OnWindowSizeChanged cancels every animation and relocates to the
// committed index against the new geometry.
func (p *Pattern) OnWindowSizeChanged() {
	p.stopSession()
	p.fadeOffset = 0
	p.translate = 0
	index := p.currentIndex
	p.jumpIndex = &index
	p.relayout()
}

// PerformAction runs an accessibility action and reports whether it
// applied.
func (p *Pattern) PerformAction(a Action) bool {
	if p.total() <= 0 || p.dragging {
		return false
	}
	switch a {
	case ActionScrollForward:
		p.ShowNext()
	case ActionScrollBackward:
		p.ShowPrevious()
	default:
		return false
	}
	return true
}

// autoplayTick advances one item. A tick that arrives while the content is
// busy is dropped; the next settle arms a new one.
func (p *Pattern) autoplayTick() {
	if p.dragging || p.session.Active() {
		return
	}
	if !p.loop() && p.currentIndex >= p.maxIndex() {
		p.autoplay.Suspend(SuspendAtEnd)
		return
	}
	p.animateTo(p.currentIndex+1, 0, false)
}

// resolve maps a bounded index to the logical index a request targets.
func (p *Pattern) resolve(index int) (int, bool) {
	total := p.total()
	if total <= 0 || !p.attached {
		return 0, false
	}
	index = min(max(index, 0), total-1)
	if p.loop() {
		return lapIndex(p.currentIndex, index, total), true
	}
	return p.clampTarget(index), true
}

// IndexOffset returns the distance of the viewport from the committed
// item's rest position; zero while settled.
func (p *Pattern) IndexOffset() float64 {
	v := -p.offsetFromCurrent(p.ViewportStart())
	if math.Abs(v) < epsilon {
		return 0
	}
	return v
}
