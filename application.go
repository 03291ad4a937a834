package swipeview

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/swipeview/internal/debug"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two redraws caused by resize events.
	redrawPause = 50 * time.Millisecond
)

// FrameInterval is the period of the animation frame clock.
var FrameInterval = 16 * time.Millisecond

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// queuedUpdate is a function run on the event loop. If done is not nil, it
// receives exactly one element after f has run.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the screen and runs the event loop. Key, paste and mouse
// events go to the root primitive and the commands returned by its handlers
// are executed afterwards. Besides events, the loop serves three kinds of
// work: updates queued from other goroutines, timers scheduled with
// [Application.AfterFunc], and a frame clock that advances registered
// animators while any of them is running.
//
// An Application is a [Runner], so a swiper can be bound to it directly:
//
//	app := swipeview.NewApplication().EnableMouse(true)
//	sw := swipeview.NewSwiper(len(pages), func(i int) swipeview.Primitive { return pages[i] })
//	sw.Bind(app)
//	if err := app.SetRoot(sw).Run(); err != nil {
//		panic(err)
//	}
type Application struct {
	sync.RWMutex

	// Set by Run and cleared by Stop.
	screen tcell.Screen

	focus Primitive
	root  Primitive

	events  chan tcell.Event
	updates chan queuedUpdate

	// done is closed once the event loop has returned. Posts waiting for
	// room in updates give up then.
	done   chan struct{}
	postMu sync.Mutex
	posts  sync.WaitGroup

	mouse mouseState

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
	enableMouse bool

	// windowShown is called when the terminal gains or loses the focus.
	windowShown func(shown bool)

	// Animators advanced on every tick of the frame clock. The clock only runs
	// while this set is non-empty.
	animators  map[Animator]struct{}
	frameClock *time.Ticker
	lastFrame  time.Time
}

// mouseState turns raw button masks into mouse actions.
type mouseState struct {
	// capture receives all mouse events until its handler releases it.
	capture    Primitive
	lastX      int
	lastY      int
	downX      int
	downY      int
	lastClick  time.Time
	lastButton tcell.ButtonMask
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates:   make(chan queuedUpdate, updatesQueueSize),
		done:      make(chan struct{}),
		animators: make(map[Animator]struct{}),
	}
}

// EnableMouse enables mouse events. It must be called before Run.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enableMouse = enable
	return a
}

// SetWindowFunc sets a function called when the terminal window gains or
// loses the focus. Terminals without focus reporting never call it. It must be
// called before Run.
func (a *Application) SetWindowFunc(shown func(shown bool)) *Application {
	a.Lock()
	defer a.Unlock()
	a.windowShown = shown
	return a
}

// SetScreen sets the screen used by Run. Without it, Run creates one.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// Run initializes the screen and runs the event loop until [Application.Stop]
// is called or the root primitive returns a [QuitCommand].
//
// While an application is running it owns stdin, stdout and stderr.
func (a *Application) Run() error {
	a.Lock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err = screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	if a.enableMouse {
		a.screen.EnableMouse()
	}
	if a.windowShown != nil {
		a.screen.EnableFocus()
	}
	a.events = a.screen.EventQ()
	a.Unlock()
	defer a.finish()

	// A panic would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	return a.loop()
}

func (a *Application) loop() error {
	var (
		paste       strings.Builder
		pasting     bool
		lastResize  time.Time
		resizeTimer *time.Timer
	)
	for {
		a.RLock()
		var frames <-chan time.Time
		if a.frameClock != nil {
			frames = a.frameClock.C
		}
		a.RUnlock()

		select {
		case event := <-a.events:
			if event == nil {
				return nil
			}
			switch event := event.(type) {
			case *tcell.EventKey:
				if pasting {
					switch event.Key() {
					case tcell.KeyRune:
						paste.WriteString(event.Str())
					case tcell.KeyEnter:
						paste.WriteByte('\n')
					case tcell.KeyTab:
						paste.WriteByte('\t')
					}
					continue
				}
				if root := a.focusedRoot(); root != nil {
					a.execute(root.InputHandler(event))
				}
			case *tcell.EventPaste:
				switch {
				case event.Start():
					pasting = true
					paste.Reset()
				case event.End():
					pasting = false
					if root := a.focusedRoot(); root != nil && paste.Len() > 0 {
						a.execute(root.PasteHandler(paste.String()))
					}
				}
			case *tcell.EventResize:
				a.Lock()
				a.forceRedraw = true
				a.Unlock()
				// A burst of resizes is drawn once more after it settles.
				if time.Since(lastResize) < redrawPause {
					if resizeTimer != nil {
						resizeTimer.Stop()
					}
					resizeTimer = time.AfterFunc(redrawPause, func() {
						a.events <- event
					})
				}
				lastResize = time.Now()
				a.draw()
			case *tcell.EventFocus:
				a.RLock()
				shown := a.windowShown
				a.RUnlock()
				if shown != nil {
					debug.Log("application: window focused=%v", event.Focused)
					shown(event.Focused)
					a.draw()
				}
			case *tcell.EventMouse:
				if a.fireMouseActions(event) {
					a.draw()
				}
			case *tcell.EventError:
				a.Stop()
				return event
			}

		case now := <-frames:
			if a.animate(now) {
				a.draw()
			}

		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}
}

// focusedRoot returns the root primitive if it has the focus.
func (a *Application) focusedRoot() Primitive {
	a.RLock()
	root := a.root
	a.RUnlock()
	if root == nil || !root.HasFocus() {
		return nil
	}
	return root
}

// execute runs cmd and redraws if it asked for it.
func (a *Application) execute(cmd Command) {
	if a.executeCommand(cmd) {
		a.draw()
	}
}

// fireMouseActions derives mouse actions from event and passes them to the
// capturing primitive or the root. It reports whether a redraw is needed.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (redraw bool) {
	m := &a.mouse
	// Follow-up actions of one event go to the primitive that got the first.
	var target Primitive
	fire := func(action MouseAction) {
		p := a.root
		switch {
		case m.capture != nil:
			p = m.capture
			target = m.capture
		case target != nil:
			p = target
		}
		if p == nil {
			return
		}
		capture, cmd := p.MouseHandler(action, event)
		m.capture = capture
		if a.executeCommand(cmd) {
			redraw = true
		}
	}

	x, y := event.Position()
	buttons := event.Buttons()
	moved := x != m.downX || y != m.downY
	changed := buttons ^ m.lastButton

	if x != m.lastX || y != m.lastY {
		fire(MouseMove)
		m.lastX, m.lastY = x, y
	}

	down := false
	for _, b := range []struct {
		button                  tcell.ButtonMask
		down, up, click, dclick MouseAction
	}{
		{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
		{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
		{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
	} {
		if changed&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			fire(b.down)
			down = true
			continue
		}
		fire(b.up)
		if moved {
			continue
		}
		if now := time.Now(); m.lastClick.Add(DoubleClickInterval).Before(now) {
			fire(b.click)
			m.lastClick = now
		} else {
			fire(b.dclick)
			m.lastClick = time.Time{}
		}
	}

	for _, w := range []struct {
		button tcell.ButtonMask
		action MouseAction
	}{
		{tcell.WheelUp, MouseScrollUp},
		{tcell.WheelDown, MouseScrollDown},
		{tcell.WheelLeft, MouseScrollLeft},
		{tcell.WheelRight, MouseScrollRight},
	} {
		if buttons&w.button != 0 {
			fire(w.action)
		}
	}

	m.lastButton = buttons
	if down {
		m.downX, m.downY = x, y
	}
	return redraw
}

// Stop finalizes the screen, causing Run to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	a.stopFrameClock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// RequestFrame registers an animator with the frame clock. The animator is
// advanced on every frame until it reports that it is done. It must be called
// from the event loop, for example from an input handler or a posted update.
func (a *Application) RequestFrame(animator Animator) {
	if animator == nil {
		return
	}
	a.Lock()
	defer a.Unlock()
	a.animators[animator] = struct{}{}
	if a.frameClock == nil {
		a.frameClock = time.NewTicker(FrameInterval)
		a.lastFrame = time.Now()
	}
}

// animate advances all registered animators and reports whether any of them
// ran.
func (a *Application) animate(now time.Time) bool {
	a.Lock()
	dt := now.Sub(a.lastFrame)
	a.lastFrame = now
	animators := make([]Animator, 0, len(a.animators))
	for animator := range a.animators {
		animators = append(animators, animator)
	}
	a.Unlock()

	var done []Animator
	for _, animator := range animators {
		if !animator.Animate(dt) {
			done = append(done, animator)
		}
	}

	a.Lock()
	for _, animator := range done {
		delete(a.animators, animator)
	}
	if len(a.animators) == 0 {
		a.stopFrameClock()
	}
	a.Unlock()
	return len(animators) > 0
}

// stopFrameClock must be called with the lock held.
func (a *Application) stopFrameClock() {
	if a.frameClock != nil {
		a.frameClock.Stop()
		a.frameClock = nil
	}
}

// AfterFunc runs f on the event loop once d has elapsed. The returned
// function cancels the call and reports whether it was still pending. A call
// that already fired but has not run yet cannot be cancelled.
func (a *Application) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, func() {
		a.Post(f)
	})
	return t.Stop
}

// Post queues f for execution on the event loop and redraws afterwards. Unlike
// QueueUpdate it never waits, so it may be called from the event loop itself.
// Updates that find the queue full are handed over once there is room, or
// dropped when the loop stops first.
func (a *Application) Post(f func()) {
	update := queuedUpdate{f: func() {
		f()
		a.draw()
	}}
	select {
	case a.updates <- update:
		return
	default:
	}
	a.postMu.Lock()
	defer a.postMu.Unlock()
	select {
	case <-a.done:
		return
	default:
	}
	a.posts.Go(func() {
		select {
		case a.updates <- update:
		case <-a.done:
		}
	})
}

// finish marks the event loop as stopped and waits for pending posts to
// give up.
func (a *Application) finish() {
	a.postMu.Lock()
	select {
	case <-a.done:
	default:
		close(a.done)
	}
	a.postMu.Unlock()
	a.posts.Wait()
}

// draw lays the root out over the whole screen and draws it.
func (a *Application) draw() {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	// tcell only emits the cells that changed, so regular frames skip the
	// clear.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot sets the primitive drawn over the whole screen and gives it the
// focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p. p may pass the focus on
// to one of its children.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the primitive which has the current focus. If none has it,
// nil is returned.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns after it ran. Primitives
// must only be changed from the event loop, so goroutines use this to update
// them. It must not be called from the event loop itself. Once the loop has
// stopped, f is dropped.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: ch}:
	case <-a.done:
		return a
	}
	select {
	case <-ch:
	case <-a.done:
	}
	return a
}

// QueueUpdateDraw works like QueueUpdate and redraws after f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	a.QueueUpdate(func() {
		f()
		a.draw()
	})
	return a
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case nil:
		return false
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	case ConsumeEventCommand:
		return false
	}
	return false
}
