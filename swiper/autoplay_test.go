package swiper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoplayFixture(t *testing.T, props Props, count int) *fixture {
	t.Helper()
	props.AutoPlay = true
	props.Interval = 3 * time.Second
	return newFixture(t, props, count)
}

func TestAutoplayAdvancesEveryInterval(t *testing.T) {
	f := autoplayFixture(t, DefaultProps(), 3)
	require.Equal(t, 1, f.sched.Pending())

	for range 3 {
		f.sched.Advance(3 * time.Second)
		require.True(t, f.p.Animating())
		f.settle(t)
	}

	assert.Equal(t, []int{1, 2, 0}, f.rec.changes)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestAutoplayWaitsFullInterval(t *testing.T) {
	f := autoplayFixture(t, DefaultProps(), 3)

	f.sched.Advance(2999 * time.Millisecond)
	assert.False(t, f.p.Animating())
	f.sched.Advance(time.Millisecond)
	assert.True(t, f.p.Animating())
}

func TestAutoplayPausedWhileHidden(t *testing.T) {
	f := autoplayFixture(t, DefaultProps(), 3)

	f.p.SetVisible(false)
	f.sched.Advance(10 * time.Second)
	assert.False(t, f.p.Animating())
	assert.Empty(t, f.rec.changes)

	f.p.SetVisible(true)
	f.sched.Advance(3 * time.Second)
	f.settle(t)
	assert.Equal(t, []int{1}, f.rec.changes)
}

func TestAutoplayPausedWhileWindowHidden(t *testing.T) {
	f := autoplayFixture(t, DefaultProps(), 3)

	f.p.SetWindowShown(false)
	assert.Zero(t, f.sched.Pending())
	f.p.SetWindowShown(true)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestAutoplayPausedWhileDragging(t *testing.T) {
	f := autoplayFixture(t, DefaultProps(), 3)

	f.drag(-10)
	assert.Equal(t, SuspendDragging, f.p.Autoplay().Suspended())
	f.sched.Advance(10 * time.Second)
	assert.Empty(t, f.rec.changes)

	f.p.DragEnd(0)
	f.settle(t)
	assert.Zero(t, f.p.Autoplay().Suspended())
	assert.Equal(t, 1, f.sched.Pending())
}

func TestAutoplayStopsAtEndWithoutLoop(t *testing.T) {
	f := autoplayFixture(t, nonLoop(), 3)

	for range 2 {
		f.sched.Advance(3 * time.Second)
		f.settle(t)
	}
	assert.Equal(t, []int{1, 2}, f.rec.changes)
	assert.Equal(t, SuspendAtEnd, f.p.Autoplay().Suspended())
	assert.Zero(t, f.sched.Pending())

	f.p.SwipeToWithoutAnimation(0)
	assert.Zero(t, f.p.Autoplay().Suspended())
	assert.Equal(t, 1, f.sched.Pending())
}

func TestAutoplayDisabledByProps(t *testing.T) {
	props := DefaultProps()
	f := autoplayFixture(t, props, 3)

	props.AutoPlay = false
	props.Interval = 3 * time.Second
	f.p.SetProps(props)
	assert.Zero(t, f.sched.Pending())
	assert.False(t, f.p.Autoplay().Enabled())
}

func TestAutoplaySuspendReasonsStack(t *testing.T) {
	s := &fakeScheduler{}
	fired := 0
	a := NewAutoplay(s, func() { fired++ })
	a.SetInterval(time.Second)
	a.SetEnabled(true)
	require.True(t, a.Scheduled())

	a.Suspend(SuspendHidden)
	a.Suspend(SuspendWindowHidden)
	assert.False(t, a.Scheduled())
	a.Resume(SuspendHidden)
	assert.False(t, a.Scheduled())
	a.Resume(SuspendWindowHidden)
	assert.True(t, a.Scheduled())

	s.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.False(t, a.Scheduled(), "ticks are rearmed by the owner")
}

func TestAutoplaySetIntervalRestartsPendingTick(t *testing.T) {
	s := &fakeScheduler{}
	fired := 0
	a := NewAutoplay(s, func() { fired++ })
	a.SetEnabled(true)

	s.Advance(2 * time.Second)
	a.SetInterval(5 * time.Second)
	s.Advance(4 * time.Second)
	assert.Zero(t, fired)
	s.Advance(time.Second)
	assert.Equal(t, 1, fired)
}

func TestAutoplayCancelDropsTick(t *testing.T) {
	s := &fakeScheduler{}
	fired := 0
	a := NewAutoplay(s, func() { fired++ })
	a.SetEnabled(true)

	a.Cancel()
	s.Advance(time.Minute)
	assert.Zero(t, fired)

	a.SetEnabled(false)
	a.Schedule()
	s.Advance(time.Minute)
	assert.Zero(t, fired)
}
