package swiper

import (
	"math"
	"time"

	"github.com/xqrs/swipeview/internal/debug"
)

// SessionKind identifies the animation that owns the scroll state.
type SessionKind uint8

const (
	SessionNone SessionKind = iota
	// SessionCurveTranslate moves the offset and relayouts every tick.
	SessionCurveTranslate
	SessionSpringOverscroll
	SessionFadeOverscroll
	// SessionPropertyTranslate animates a render translation of the
	// realized items without relayout.
	SessionPropertyTranslate
)

func (k SessionKind) String() string {
	switch k {
	case SessionCurveTranslate:
		return "curve-translate"
	case SessionSpringOverscroll:
		return "spring-overscroll"
	case SessionFadeOverscroll:
		return "fade-overscroll"
	case SessionPropertyTranslate:
		return "property-translate"
	default:
		return "none"
	}
}

// Session is the single in-flight animation. Only the fields of its kind
// are meaningful.
type Session struct {
	Kind SessionKind
	// Target is the logical index a translate session settles on.
	Target int

	motion motion
	pinned []int
	info   AnimationInfo
	// startEdge marks a spring returning to the start edge.
	startEdge bool
}

// Active reports whether the session owns the scroll state.
func (s Session) Active() bool {
	return s.Kind != SessionNone
}

func (s Session) translating() bool {
	return s.Kind == SessionCurveTranslate || s.Kind == SessionPropertyTranslate
}

// Session returns the kind of the running animation.
func (p *Pattern) Session() SessionKind {
	return p.session.Kind
}

// Animating reports whether Tick has work to do.
func (p *Pattern) Animating() bool {
	return p.session.Active()
}

// Tick advances the running session by dt and reports whether it is still
// running.
func (p *Pattern) Tick(dt time.Duration) bool {
	s := &p.session
	switch s.Kind {
	case SessionNone:
		return false
	case SessionCurveTranslate:
		if dest, ok := p.itemStart(s.Target); ok {
			s.motion.to = dest
		}
		v, done := s.motion.step(dt)
		p.moveTo(v)
		p.relayout()
		if done {
			p.settle(s.Target)
			return false
		}
	case SessionPropertyTranslate:
		v, done := s.motion.step(dt)
		p.translate = v
		p.contentDidScroll()
		if done {
			p.finishPropertyTranslate()
			return false
		}
	case SessionSpringOverscroll:
		s.motion.to = p.edge(s.startEdge)
		v, done := s.motion.step(dt)
		p.moveTo(v)
		p.relayout()
		if done {
			p.settle(p.nearestIndex())
			return false
		}
	case SessionFadeOverscroll:
		v, done := s.motion.step(dt)
		p.fadeOffset = v
		if done {
			p.fadeOffset = 0
			p.settle(p.nearestIndex())
			return false
		}
	}
	p.requestFrame()
	return true
}

func (p *Pattern) finishPropertyTranslate() {
	p.translate = 0
	if dest, ok := p.itemStart(p.session.Target); ok {
		p.moveTo(dest)
	}
	p.settle(p.session.Target)
}

// edge returns the offset of the start or end edge.
func (p *Pattern) edge(start bool) float64 {
	lo, hi := p.bounds()
	if start {
		return lo
	}
	return hi
}

func (p *Pattern) startSession(s Session) {
	p.stopSession()
	p.session = s
	debug.Log("animation: start %s target=%d", s.Kind, s.Target)
	p.requestFrame()
}

// stopSession interrupts the running session without committing its
// target. A property translation is folded into the offset.
func (p *Pattern) stopSession() {
	s := p.session
	if !s.Active() {
		return
	}
	p.session = Session{}
	p.targetIndex = nil
	if s.Kind == SessionPropertyTranslate {
		p.currentDelta += p.translate
		p.translate = 0
	}
	p.relayout()
	debug.Log("animation: stop %s", s.Kind)
	p.setIndicator(p.CurrentIndex())
	info := s.info
	info.CurrentOffset = p.offsetFromCurrent(p.ViewportStart())
	p.events.animationEnd(p.CurrentIndex(), info)
}

// settle commits index as the current index and ends the session. Every
// animation, and every immediate move, ends here.
func (p *Pattern) settle(index int) {
	wasAnimating := p.session.Active()
	info := p.session.info
	p.session = Session{}
	p.targetIndex = nil
	p.translate = 0

	prev := p.CurrentIndex()
	p.currentIndex = index
	p.relayout()
	now := p.CurrentIndex()
	info.CurrentOffset = p.offsetFromCurrent(p.ViewportStart())
	debug.Log("animation: settled at %d (logical %d)", now, index)

	p.setIndicator(now)
	if now != prev {
		p.events.change(now)
	}
	if wasAnimating {
		p.events.animationEnd(now, info)
	}
	p.longPredict = true
	p.prefetch()
	p.refreshAutoplay()
}

// offsetFromCurrent returns the distance of the committed item's rest
// position from a viewport start.
func (p *Pattern) offsetFromCurrent(viewport float64) float64 {
	base, ok := p.itemStart(p.currentIndex)
	if !ok {
		return 0
	}
	return base - viewport
}

func (p *Pattern) animationInfo(velocity, dest float64) AnimationInfo {
	return AnimationInfo{
		Velocity:      velocity,
		CurrentOffset: p.offsetFromCurrent(p.ViewportStart()),
		TargetOffset:  p.offsetFromCurrent(dest),
	}
}

// covers reports whether the realized items fill the window of a viewport
// starting at dest.
func (p *Pattern) covers(dest float64) bool {
	space := p.props.ItemSpace
	need := dest - p.props.PrevMargin
	end := dest + p.metrics.ContentMain + p.props.NextMargin
	total := p.total()
	loop := p.loop()
	for pos := range p.positions.All() {
		if !loop && pos.Index == 0 {
			need = max(need, pos.StartPos)
		}
		if pos.StartPos > need+epsilon {
			return false
		}
		need = max(need, pos.EndPos+space)
		if !loop && pos.Index == total-1 {
			return true
		}
		if need >= end-epsilon {
			return true
		}
	}
	return false
}

// animateTo moves to the logical index target. velocity is in scroll
// space and seeds spring curves of gesture releases.
func (p *Pattern) animateTo(target int, velocity float64, gesture bool) {
	p.stopSession()
	target = p.clampTarget(target)
	if !p.measured {
		p.targetIndex = &target
		return
	}
	p.targetIndex = &target
	p.relayout()
	dest, ok := p.itemStart(target)
	if !ok {
		p.targetIndex = nil
		p.relayout()
		return
	}
	from := p.offset()
	if math.Abs(dest-from) < epsilon {
		p.moveTo(dest)
		p.settle(target)
		return
	}

	curve := p.props.Curve
	switch c := curve.(type) {
	case nil:
		if gesture {
			curve = p.physics.spring(velocity)
		}
	case SpringCurve:
		if gesture {
			c.Velocity = velocity
			curve = c
		}
	}

	info := p.animationInfo(-velocity, dest)
	s := Session{Kind: SessionCurveTranslate, Target: target, info: info}
	if p.covers(dest) {
		s.Kind = SessionPropertyTranslate
		s.motion = newMotion(0, dest-from, curve, p.props.Duration, p.physics)
		s.pinned = p.positions.Keys()
	} else {
		s.motion = newMotion(from, dest, curve, p.props.Duration, p.physics)
	}
	p.startSession(s)
	p.targetIndex = &target

	total := p.total()
	p.setIndicator(LoopIndex(target, total))
	p.events.animationStart(p.CurrentIndex(), LoopIndex(target, total), info)
}

func (p *Pattern) startSpring(velocity float64) {
	start := p.offset() < p.edge(true)
	from := p.offset()
	s := Session{
		Kind:      SessionSpringOverscroll,
		Target:    p.currentIndex,
		startEdge: start,
		motion:    newMotion(from, p.edge(start), p.physics.spring(velocity), 0, p.physics),
		info:      p.animationInfo(-velocity, p.edge(start)),
	}
	p.startSession(s)
	p.events.animationStart(p.CurrentIndex(), p.CurrentIndex(), s.info)
}

func (p *Pattern) startFade() {
	s := Session{
		Kind:   SessionFadeOverscroll,
		Target: p.currentIndex,
		motion: newMotion(p.fadeOffset, 0, EaseOut, p.physics.FadeDuration, p.physics),
		info:   p.animationInfo(0, p.offset()),
	}
	p.startSession(s)
	p.events.animationStart(p.CurrentIndex(), p.CurrentIndex(), s.info)
}

// nearestIndex returns the index whose item shows at least half of its
// length at the viewport start.
func (p *Pattern) nearestIndex() int {
	pos, ok := p.straddling()
	if !ok {
		return p.currentIndex
	}
	index := pos.Index
	if p.offset()-pos.StartPos > pos.Size()/2 {
		index++
	}
	return p.clampTarget(index)
}
