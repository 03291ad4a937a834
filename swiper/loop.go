package swiper

// LoopIndex maps a logical, unbounded index onto [0, total). A non-positive
// total returns i unchanged.
func LoopIndex(i, total int) int {
	if total <= 0 {
		return i
	}
	return ((i % total) + total) % total
}

// EffectiveLoop reports whether looping actually applies. There is nothing to
// loop over when every child is already on screen, so the declared flag is
// overridden whenever displayCount >= total.
func EffectiveLoop(loop bool, displayCount, total int) bool {
	return loop && total > 0 && displayCount < total
}

// lapIndex returns the logical index in the lap of current that resolves to
// the bounded index.
func lapIndex(current, index, total int) int {
	if total <= 0 {
		return index
	}
	return current - LoopIndex(current, total) + index
}
