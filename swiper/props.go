package swiper

import "time"

// Axis is the main axis along which items are laid out.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// EdgeEffect selects what happens when content is dragged past its first or
// last item while looping is disabled.
type EdgeEffect uint8

const (
	// EdgeSpring lets content move past the edge with increasing resistance
	// and springs back on release.
	EdgeSpring EdgeEffect = iota
	// EdgeFade keeps content at the edge and accumulates the overscroll into
	// a paint-time fade offset.
	EdgeFade
	// EdgeNone rejects any movement past the edge.
	EdgeNone
)

func (e EdgeEffect) String() string {
	switch e {
	case EdgeFade:
		return "fade"
	case EdgeNone:
		return "none"
	default:
		return "spring"
	}
}

// DisplayMode controls how the main-axis size of items is determined.
type DisplayMode uint8

const (
	// DisplayStretch divides the content area evenly among DisplayCount items.
	DisplayStretch DisplayMode = iota
	// DisplayAutoLinear uses each child's natural main-axis size.
	DisplayAutoLinear
)

// NestedMode configures how scroll and fling are shared with an ancestor
// scrollable registered through [Pattern.SetNestedParent].
type NestedMode uint8

const (
	// NestedSelfFirst consumes in this order: self scroll, parent scroll,
	// parent overscroll, self overscroll.
	NestedSelfFirst NestedMode = iota
	// NestedSelfOverScrollFirst lets the swiper apply its own edge effect
	// before the parent gets an overscroll phase.
	NestedSelfOverScrollFirst
	// NestedSelfOnly never propagates to the parent.
	NestedSelfOnly
)

const (
	DefaultDuration = 400 * time.Millisecond
	DefaultInterval = 3000 * time.Millisecond
)

// Props is the declarative configuration of a swiper. Every field can be
// changed between cycles with [Pattern.SetProps].
type Props struct {
	// Index is the requested index. Changing it relocates without animation.
	Index int
	// Loop enables wrap-around. It is ignored when DisplayCount is not
	// smaller than the number of children.
	Loop bool
	// DisplayCount is the number of items sharing the viewport.
	DisplayCount int
	// MinSize, when positive, derives DisplayCount from the viewport so that
	// every item is at least MinSize long.
	MinSize     float64
	DisplayMode DisplayMode
	// ItemSize forces a main-axis item size when positive.
	ItemSize float64

	PrevMargin float64
	NextMargin float64
	ItemSpace  float64
	// CachedCount is the number of items realized beyond each visible edge.
	CachedCount int

	Duration time.Duration
	Interval time.Duration
	// Curve eases programmatic and gesture-driven moves. A nil curve uses a
	// linear curve for programmatic moves and a spring seeded with the
	// release velocity for gestures.
	Curve Curve

	AutoPlay     bool
	DisableSwipe bool
	EdgeEffect   EdgeEffect
	Axis         Axis
	NestedScroll NestedMode
}

// DefaultProps returns the configuration of a freshly created swiper.
func DefaultProps() Props {
	return Props{
		Loop:         true,
		DisplayCount: 1,
		Duration:     DefaultDuration,
		Interval:     DefaultInterval,
		EdgeEffect:   EdgeSpring,
	}
}

// normalized replaces degenerate values with their defaults.
func (p Props) normalized() Props {
	if p.DisplayCount <= 0 {
		p.DisplayCount = 1
	}
	if p.ItemSpace < 0 {
		p.ItemSpace = 0
	}
	if p.PrevMargin < 0 {
		p.PrevMargin = 0
	}
	if p.NextMargin < 0 {
		p.NextMargin = 0
	}
	if p.MinSize < 0 {
		p.MinSize = 0
	}
	if p.ItemSize < 0 {
		p.ItemSize = 0
	}
	if p.CachedCount < 0 {
		p.CachedCount = 0
	}
	if p.Duration < 0 {
		p.Duration = 0
	}
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	return p
}

// layoutEqual reports whether two configurations produce the same layout.
func (p Props) layoutEqual(o Props) bool {
	return p.Loop == o.Loop &&
		p.DisplayCount == o.DisplayCount &&
		p.MinSize == o.MinSize &&
		p.DisplayMode == o.DisplayMode &&
		p.ItemSize == o.ItemSize &&
		p.PrevMargin == o.PrevMargin &&
		p.NextMargin == o.NextMargin &&
		p.ItemSpace == o.ItemSpace &&
		p.CachedCount == o.CachedCount &&
		p.Axis == o.Axis
}

// Physics holds the tuned motion constants. The defaults reproduce a
// specific motion feel and are kept exact; hosts with different units (for
// example terminal cells instead of density-independent pixels) adjust
// VelocityThreshold and the rest thresholds.
type Physics struct {
	// Friction scales drag deltas while overscrolled with EdgeSpring.
	Friction float64

	SpringMass      float64
	SpringStiffness float64
	SpringDamping   float64

	// VelocityThreshold is the release speed above which a fling always
	// turns the page.
	VelocityThreshold float64

	// RestDistance and RestVelocity end a spring once both are undercut.
	RestDistance float64
	RestVelocity float64
	// MaxSpringDuration bounds every spring motion.
	MaxSpringDuration time.Duration

	FadeDuration time.Duration
}

// DefaultPhysics returns the reference motion constants.
func DefaultPhysics() Physics {
	return Physics{
		Friction:          0.72,
		SpringMass:        1,
		SpringStiffness:   328,
		SpringDamping:     34,
		VelocityThreshold: 780,
		RestDistance:      0.5,
		RestVelocity:      1,
		MaxSpringDuration: 2 * time.Second,
		FadeDuration:      500 * time.Millisecond,
	}
}

func (ph Physics) spring(velocity float64) SpringCurve {
	return SpringCurve{
		Mass:      ph.SpringMass,
		Stiffness: ph.SpringStiffness,
		Damping:   ph.SpringDamping,
		Velocity:  velocity,
	}
}
