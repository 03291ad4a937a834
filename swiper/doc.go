// Package swiper implements the interaction engine of a paged carousel: the
// layout of children along one axis, loop index arithmetic, drag and fling
// handling with edge effects, animations, autoplay and nested scrolling.
//
// The engine knows nothing about rendering. A host supplies children
// through [Children], a [Scheduler] for timers and a [FrameClock] for
// animation frames, calls [Pattern.Layout] before drawing and
// [Pattern.Tick] on every frame while [Pattern.Animating] is true, and
// forwards pointer gestures to [Pattern.DragStart], [Pattern.DragUpdate]
// and [Pattern.DragEnd].
//
// Positions are kept in content space. The viewport start is the content
// position drawn at the start of the content area, after the previous
// margin; an item is drawn at
//
//	prevMargin + item.StartPos - pattern.ViewportStart()
//
// All methods must be called from the thread that runs the host's frames.
package swiper
