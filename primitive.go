package swipeview

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// Primitive is a rectangular element that draws itself and takes input.
type Primitive interface {
	// Draw draws the primitive inside its rectangle.
	Draw(screen tcell.Screen)

	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler receives key events while the primitive has the focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler receives mouse events. A non-nil capture primitive gets
	// all following mouse events until it returns nil.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)
	PasteHandler(text string) Command

	// HasFocus reports whether the primitive or one of its children has the
	// focus.
	HasFocus() bool
	// Focus gives the primitive the focus. It may pass it on with delegate.
	Focus(delegate func(p Primitive))
	Blur()
}

// Animator is advanced by the application's frame clock. Animate receives
// the time elapsed since the previous frame and reports whether it wants
// another one.
type Animator interface {
	Animate(dt time.Duration) bool
}
