package swiper

import "github.com/xqrs/swipeview/internal/debug"

// NestedPhase tells the parent which part of a scroll it is offered.
type NestedPhase uint8

const (
	// PhaseScroll offers scroll the parent may consume within its bounds.
	PhaseScroll NestedPhase = iota
	// PhaseOverScroll offers what is left after every in-bounds consumer
	// had its turn.
	PhaseOverScroll
)

// NestedParent is an ancestor scrollable that shares drag and fling with the
// swiper. Offsets and velocities are in the swiper's scroll direction:
// positive moves content toward higher indices.
type NestedParent interface {
	OnScrollStart()
	// HandleScroll consumes part of offset and returns what is left and
	// whether the parent is at its own edge.
	HandleScroll(offset float64, phase NestedPhase) (remaining float64, reachedEdge bool)
	// HandleScrollVelocity reports whether the parent took over the fling.
	HandleScrollVelocity(velocity float64) bool
	OnScrollEnd()
}

// SetNestedParent registers the ancestor that receives residual scroll. A
// nil parent disables nesting.
func (p *Pattern) SetNestedParent(parent NestedParent) {
	if p.nestedActive && p.parent != nil {
		p.parent.OnScrollEnd()
		p.nestedActive = false
	}
	p.parent = parent
}

func (p *Pattern) nestedEnabled() bool {
	return p.parent != nil && p.props.NestedScroll != NestedSelfOnly
}

func (p *Pattern) nestedStart() {
	if !p.nestedEnabled() || p.nestedActive {
		return
	}
	p.nestedActive = true
	p.parent.OnScrollStart()
}

func (p *Pattern) nestedEnd() {
	if !p.nestedActive {
		return
	}
	p.nestedActive = false
	if p.parent != nil {
		p.parent.OnScrollEnd()
	}
}

// nestedScroll offers scroll to the parent and returns the unconsumed rest.
func (p *Pattern) nestedScroll(scroll float64, phase NestedPhase) float64 {
	if !p.nestedEnabled() || scroll == 0 {
		return scroll
	}
	p.nestedStart()
	remaining, _ := p.parent.HandleScroll(scroll, phase)
	if remaining != scroll {
		debug.Log("nested: parent consumed %.2f of %.2f (phase %d)", scroll-remaining, scroll, phase)
	}
	return remaining
}

// nestedFling offers a residual velocity to the parent.
func (p *Pattern) nestedFling(velocity float64) bool {
	if !p.nestedEnabled() || velocity == 0 {
		return false
	}
	p.nestedStart()
	consumed := p.parent.HandleScrollVelocity(velocity)
	debug.Log("nested: parent fling %.2f consumed=%t", velocity, consumed)
	return consumed
}
