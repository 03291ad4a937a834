package swiper

// AnimationInfo describes a move in the engine's units. Offsets are measured
// from the rest position of the committed item; a negative offset means the
// content has moved toward higher indices.
type AnimationInfo struct {
	Velocity      float64
	CurrentOffset float64
	TargetOffset  float64
}

// Events holds the optional callbacks of a swiper. All indices are bounded.
type Events struct {
	// OnChange fires when the committed index changes.
	OnChange func(index int)
	// OnAnimationStart fires when a move toward next begins.
	OnAnimationStart func(current, next int, info AnimationInfo)
	// OnAnimationEnd fires when a move settles.
	OnAnimationEnd func(current int, info AnimationInfo)
	// OnGestureSwipe fires on every drag update.
	OnGestureSwipe func(index int, info AnimationInfo)
	// OnIndicatorChange fires when the index shown by indicators changes. It
	// runs ahead of OnChange, at the start of a move.
	OnIndicatorChange func(index int)
	// OnContentDidScroll fires for every realized item after a pass that
	// moved the viewport. position is the item's distance from the
	// viewport start as a fraction of mainAxisLength.
	OnContentDidScroll func(selected, index int, position, mainAxisLength float64)
}

func (e *Events) change(index int) {
	if e.OnChange != nil {
		e.OnChange(index)
	}
}

func (e *Events) animationStart(current, next int, info AnimationInfo) {
	if e.OnAnimationStart != nil {
		e.OnAnimationStart(current, next, info)
	}
}

func (e *Events) animationEnd(current int, info AnimationInfo) {
	if e.OnAnimationEnd != nil {
		e.OnAnimationEnd(current, info)
	}
}

func (e *Events) gestureSwipe(index int, info AnimationInfo) {
	if e.OnGestureSwipe != nil {
		e.OnGestureSwipe(index, info)
	}
}

func (e *Events) indicatorChange(index int) {
	if e.OnIndicatorChange != nil {
		e.OnIndicatorChange(index)
	}
}
