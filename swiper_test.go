package swipeview

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/swipeview/swiper"
)

// fakeRunner drives timers and frames by hand.
type fakeRunner struct {
	now       time.Duration
	animators map[Animator]struct{}
	timers    []*fakeTimer
	posted    []func()
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{animators: make(map[Animator]struct{})}
}

func (r *fakeRunner) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTimer{at: r.now + d, f: f}
	r.timers = append(r.timers, t)
	return func() bool {
		if t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (r *fakeRunner) Post(f func()) {
	r.posted = append(r.posted, f)
}

func (r *fakeRunner) RequestFrame(a Animator) {
	r.animators[a] = struct{}{}
}

// frame advances the clock by one frame interval.
func (r *fakeRunner) frame() {
	r.now += FrameInterval
	for a := range r.animators {
		if !a.Animate(FrameInterval) {
			delete(r.animators, a)
		}
	}
	for _, t := range r.timers {
		if !t.stopped && t.at <= r.now {
			t.stopped = true
			t.f()
		}
	}
	posted := r.posted
	r.posted = nil
	for _, f := range posted {
		f()
	}
}

// settle runs frames until no animator asks for more.
func (r *fakeRunner) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000 && len(r.animators) > 0; i++ {
		r.frame()
	}
	require.Empty(t, r.animators, "animation did not finish")
}

// letterPage fills its rectangle with one letter.
type letterPage struct {
	*Box
	letter string
	draws  int
}

func newLetterPage(index int) Primitive {
	return &letterPage{Box: NewBox(), letter: string(rune('A' + index))}
}

func (p *letterPage) Draw(screen tcell.Screen) {
	p.draws++
	x, y, width, height := p.GetRect()
	for row := range height {
		for col := range width {
			screen.Put(x+col, y+row, p.letter, tcell.StyleDefault)
		}
	}
}

type swiperFixture struct {
	s      *Swiper
	runner *fakeRunner
	screen *captureScreen
	clock  time.Time
}

func newSwiperFixture(t *testing.T, count, width, height int) *swiperFixture {
	t.Helper()
	f := &swiperFixture{
		runner: newFakeRunner(),
		screen: newCaptureScreen(width, height),
		clock:  time.Unix(0, 0),
	}
	f.s = NewSwiper(count, newLetterPage)
	f.s.now = func() time.Time { return f.clock }
	f.s.SetLoop(false)
	f.s.SetRect(0, 0, width, height)
	f.s.Bind(f.runner)
	f.draw()
	return f
}

func (f *swiperFixture) draw() {
	w, h := f.screen.Size()
	f.screen.reset(w, h)
	f.s.Draw(f.screen)
}

func (f *swiperFixture) mouse(action MouseAction, x, y int) (Primitive, Command) {
	buttons := tcell.ButtonNone
	if action == MouseLeftDown || action == MouseMove && f.s.drag.pending {
		buttons = tcell.ButtonPrimary
	}
	return f.s.MouseHandler(action, tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, "", tcell.ModNone)
}

func runeKey(r string) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSwiperDrawsCurrentPage(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 2)

	assert.Equal(t, "AAAAAAAAAA", f.screen.line(0))
	assert.Equal(t, "AAAAAAAAAA", f.screen.line(1))
	assert.Equal(t, 0, f.s.CurrentIndex())
}

func TestSwiperUnboundDrawsNothing(t *testing.T) {
	s := NewSwiper(3, newLetterPage)
	s.SetRect(0, 0, 10, 1)
	screen := newCaptureScreen(10, 1)
	screen.reset(10, 1)
	s.Draw(screen)

	assert.Equal(t, "          ", screen.line(0))
}

func TestSwiperKeysTurnPages(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	assert.Equal(t, RedrawCommand{}, f.s.InputHandler(key(tcell.KeyRight)))
	f.runner.settle(t)
	f.draw()
	assert.Equal(t, 1, f.s.CurrentIndex())
	assert.Equal(t, "BBBBBBBBBB", f.screen.line(0))

	f.s.InputHandler(key(tcell.KeyEnd))
	f.runner.settle(t)
	assert.Equal(t, 2, f.s.CurrentIndex())

	f.s.InputHandler(runeKey("h"))
	f.runner.settle(t)
	assert.Equal(t, 1, f.s.CurrentIndex())

	f.s.InputHandler(key(tcell.KeyHome))
	f.runner.settle(t)
	assert.Equal(t, 0, f.s.CurrentIndex())

	assert.Nil(t, f.s.InputHandler(runeKey("x")))
}

func TestSwiperInterruptedJumpShowsCommittedPage(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	f.s.InputHandler(key(tcell.KeyEnd))
	f.s.InputHandler(key(tcell.KeyHome))
	f.runner.frame()
	f.s.InputHandler(key(tcell.KeyRight))
	f.runner.settle(t)
	f.draw()

	assert.Equal(t, 1, f.s.CurrentIndex())
	assert.Equal(t, "BBBBBBBBBB", f.screen.line(0))
}

func TestSwiperAnimationShowsBothPages(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	f.s.ShowNext()
	for range 10 {
		f.runner.frame()
	}
	f.draw()
	line := f.screen.line(0)
	assert.Contains(t, line, "A")
	assert.Contains(t, line, "B")
	assert.Equal(t, 1, f.s.Pattern().IndicatorIndex(), "indicator moves at the start")

	f.runner.settle(t)
	f.draw()
	assert.Equal(t, "BBBBBBBBBB", f.screen.line(0))
}

func TestSwiperReusesCleanPages(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)
	first, ok := f.s.Page(0)
	require.True(t, ok)
	a := first.(*letterPage)
	require.Equal(t, 1, a.draws)

	f.s.ShowNext()
	for range 5 {
		f.runner.frame()
		f.draw()
	}
	assert.Equal(t, 1, a.draws, "moving a page does not draw it again")

	a.MarkDirty()
	f.draw()
	assert.Equal(t, 2, a.draws)
}

func TestSwiperDragSplitsPages(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	capture, cmd := f.mouse(MouseLeftDown, 5, 0)
	assert.Equal(t, f.s, capture)
	assert.Equal(t, SetFocusCommand{Target: f.s}, cmd)

	f.clock = f.clock.Add(10 * time.Millisecond)
	capture, _ = f.mouse(MouseMove, 2, 0)
	assert.Equal(t, f.s, capture)
	assert.Equal(t, swiper.GestureDragging, f.s.Pattern().GestureState())

	f.draw()
	assert.Equal(t, "AAAAAAABBB", f.screen.line(0))

	capture, _ = f.mouse(MouseLeftUp, 2, 0)
	assert.Nil(t, capture)
	f.runner.settle(t)
	assert.Equal(t, 1, f.s.CurrentIndex(), "a fast release turns the page")
}

func TestSwiperSlowReleaseReturns(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	f.mouse(MouseLeftDown, 5, 0)
	f.clock = f.clock.Add(10 * time.Millisecond)
	f.mouse(MouseMove, 2, 0)
	f.clock = f.clock.Add(time.Second)
	f.mouse(MouseLeftUp, 2, 0)
	f.runner.settle(t)
	f.draw()

	assert.Equal(t, 0, f.s.CurrentIndex())
	assert.Equal(t, "AAAAAAAAAA", f.screen.line(0))
}

func TestSwiperClickWithoutMoveDoesNotDrag(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	f.mouse(MouseLeftDown, 5, 0)
	capture, cmd := f.mouse(MouseLeftUp, 5, 0)
	assert.Nil(t, capture)
	assert.Nil(t, cmd)
	assert.Equal(t, swiper.GestureIdle, f.s.Pattern().GestureState())
}

func TestSwiperDisableSwipeIgnoresDrag(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)
	f.s.SetDisableSwipe(true)

	f.mouse(MouseLeftDown, 5, 0)
	f.mouse(MouseMove, 2, 0)
	f.draw()

	assert.False(t, f.s.Pattern().Dragging())
	assert.Equal(t, "AAAAAAAAAA", f.screen.line(0))
}

func TestSwiperWheelTurnsPages(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	_, cmd := f.mouse(MouseScrollDown, 3, 0)
	assert.Equal(t, RedrawCommand{}, cmd)
	f.runner.settle(t)
	assert.Equal(t, 1, f.s.CurrentIndex())

	f.mouse(MouseScrollUp, 3, 0)
	f.runner.settle(t)
	assert.Equal(t, 0, f.s.CurrentIndex())

	capture, cmd := f.mouse(MouseScrollDown, 30, 0)
	assert.Nil(t, capture)
	assert.Nil(t, cmd, "events outside the swiper are ignored")
}

func TestSwiperFadeDimsEdge(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)
	f.s.SetEdgeEffect(swiper.EdgeFade)

	f.mouse(MouseLeftDown, 2, 0)
	f.mouse(MouseMove, 4, 0)
	f.draw()

	require.Less(t, f.s.Pattern().FadeOffset(), 0.0)
	_, style, _ := f.screen.Get(0, 0)
	assert.True(t, style.HasDim())
	_, style, _ = f.screen.Get(1, 0)
	assert.True(t, style.HasDim())
	_, style, _ = f.screen.Get(5, 0)
	assert.False(t, style.HasDim())
	assert.Equal(t, "AAAAAAAAAA", f.screen.line(0), "content stays at the edge")
}

func TestSwiperVerticalAxis(t *testing.T) {
	f := newSwiperFixture(t, 3, 3, 4)
	f.s.SetAxis(swiper.Vertical)
	f.draw()

	f.mouse(MouseLeftDown, 1, 3)
	f.clock = f.clock.Add(10 * time.Millisecond)
	f.mouse(MouseMove, 1, 2)
	f.draw()

	assert.Equal(t, "AAA", f.screen.line(0))
	assert.Equal(t, "AAA", f.screen.line(2))
	assert.Equal(t, "BBB", f.screen.line(3))
}

func TestSwiperDotIndicator(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 2)
	f.s.SetIndicator(NewDotIndicator())
	f.draw()

	assert.Equal(t, "AAAAAAAAAA", f.screen.line(0))
	assert.Equal(t, "  ● ○ ○   ", f.screen.line(1))

	f.s.ShowNext()
	f.runner.settle(t)
	f.draw()
	assert.Equal(t, "  ○ ● ○   ", f.screen.line(1))

	// A click on the last dot selects it.
	_, cmd := f.mouse(MouseLeftClick, 6, 1)
	assert.Equal(t, RedrawCommand{}, cmd)
	f.runner.settle(t)
	assert.Equal(t, 2, f.s.CurrentIndex())
}

func TestSwiperProgressBarFollowsDrag(t *testing.T) {
	f := newSwiperFixture(t, 4, 8, 2)
	bar := NewProgressBar()
	f.s.SetIndicator(bar)
	f.draw()
	assert.Equal(t, 0, bar.offset)
	assert.Equal(t, 4*subcell, bar.contentLen)

	f.mouse(MouseLeftDown, 6, 0)
	f.mouse(MouseMove, 2, 0)
	f.draw()
	assert.Equal(t, subcell/2, bar.offset, "half a page dragged")
}

func TestSwiperArrowsDisabledAtEnds(t *testing.T) {
	f := newSwiperFixture(t, 3, 12, 3)
	prev, next := NewArrows(swiper.Horizontal)
	f.s.SetArrows(prev, next)
	f.draw()

	assert.True(t, prev.GetDisabled())
	assert.False(t, next.GetDisabled())

	x, y, _, _ := next.GetRect()
	_, cmd := f.s.MouseHandler(MouseLeftClick, tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, RedrawCommand{}, cmd)
	f.runner.settle(t)
	assert.Equal(t, 1, f.s.CurrentIndex())

	f.s.SwipeToWithoutAnimation(2)
	f.draw()
	assert.False(t, prev.GetDisabled())
	assert.True(t, next.GetDisabled())

	f.s.SetLoop(true)
	f.draw()
	assert.False(t, next.GetDisabled(), "a looping swiper has no end")
}

func TestSwiperSetCountClampsIndex(t *testing.T) {
	f := newSwiperFixture(t, 5, 10, 1)
	var changed []int
	f.s.SetEvents(swiper.Events{OnChange: func(i int) { changed = append(changed, i) }})
	f.s.SwipeToWithoutAnimation(4)
	f.draw()

	f.s.SetCount(2)
	f.draw()
	assert.Equal(t, 1, f.s.CurrentIndex())
	assert.Equal(t, "BBBBBBBBBB", f.screen.line(0))
	assert.Equal(t, []int{4, 1}, changed)
}

func TestSwiperReleasesPagesOutOfWindow(t *testing.T) {
	f := newSwiperFixture(t, 6, 10, 1)
	_, ok := f.s.Page(0)
	assert.True(t, ok)

	f.s.SwipeToWithoutAnimation(4)
	f.draw()
	_, ok = f.s.Page(0)
	assert.False(t, ok)
	page, ok := f.s.Page(4)
	require.True(t, ok)
	assert.Equal(t, "E", page.(*letterPage).letter)

	f.s.Unbind()
	assert.Zero(t, f.s.pages.nodes.Len())
}

func TestSwiperAutoplay(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)
	f.s.SetAutoPlay(true, 100*time.Millisecond)

	for range 20 {
		f.runner.frame()
	}
	f.runner.settle(t)
	assert.Positive(t, f.s.CurrentIndex())
}

func TestSwiperPerformAction(t *testing.T) {
	f := newSwiperFixture(t, 3, 10, 1)

	assert.True(t, f.s.PerformAction(swiper.ActionScrollForward))
	f.runner.settle(t)
	assert.Equal(t, 1, f.s.CurrentIndex())

	assert.True(t, f.s.PerformAction(swiper.ActionScrollBackward))
	f.runner.settle(t)
	assert.Equal(t, 0, f.s.CurrentIndex())
}

// loadingPage takes no space until it is ready.
type loadingPage struct {
	*letterPage
	ready bool
}

func (p *loadingPage) Ready() bool { return p.ready }

func (p *loadingPage) MeasureSize(maxWidth, maxHeight int) (int, int) {
	return min(4, maxWidth), maxHeight
}

func TestSwiperRemeasureAfterLoad(t *testing.T) {
	var pages []*loadingPage
	s := NewSwiper(3, func(index int) Primitive {
		p := &loadingPage{letterPage: newLetterPage(index).(*letterPage), ready: index != 1}
		pages = append(pages, p)
		return p
	})
	s.SetLoop(false)
	s.SetDisplayMode(swiper.DisplayAutoLinear)
	s.SetCachedCount(1)
	s.SetRect(0, 0, 10, 1)
	s.Bind(newFakeRunner())
	screen := newCaptureScreen(10, 1)
	screen.reset(10, 1)
	s.Draw(screen)
	assert.Equal(t, "AAAACCCC  ", screen.line(0))

	for _, p := range pages {
		p.ready = true
	}
	s.Remeasure()
	screen.reset(10, 1)
	s.Draw(screen)
	assert.Equal(t, "AAAABBBBCC", screen.line(0))
}
