package swiper

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

// fakeChildren is an in-memory node tree. Items measure as size unless
// overridden in sizes; indices in notReady measure as not ready.
type fakeChildren struct {
	count    int
	size     float64
	cross    float64
	sizes    map[int]float64
	notReady map[int]bool

	nodes    *Arena[int]
	byIndex  map[int]NodeID
	released []int
}

func newFakeChildren(count int) *fakeChildren {
	return &fakeChildren{
		count:    count,
		size:     10,
		cross:    5,
		sizes:    make(map[int]float64),
		notReady: make(map[int]bool),
		nodes:    NewArena[int](),
		byIndex:  make(map[int]NodeID),
	}
}

func (c *fakeChildren) Count() int {
	return c.count
}

func (c *fakeChildren) Realize(index int) NodeID {
	if id, ok := c.byIndex[index]; ok {
		return id
	}
	id := c.nodes.Insert(index)
	c.byIndex[index] = id
	return id
}

func (c *fakeChildren) Release(id NodeID) {
	index, ok := c.nodes.Remove(id)
	if !ok {
		return
	}
	delete(c.byIndex, index)
	c.released = append(c.released, index)
}

func (c *fakeChildren) Measure(id NodeID, _ Constraints) (Size, bool) {
	index, ok := c.nodes.Get(id)
	if !ok || c.notReady[index] {
		return Size{}, false
	}
	main, ok := c.sizes[index]
	if !ok {
		main = c.size
	}
	return Size{Main: main, Cross: c.cross}, true
}

func (c *fakeChildren) realized() []int {
	var out []int
	c.nodes.Each(func(_ NodeID, index int) {
		out = append(out, index)
	})
	slices.Sort(out)
	return out
}

// fakeScheduler runs timers against a virtual clock.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return func() bool {
		pending := !t.stopped && !t.fired
		t.stopped = true
		return pending
	}
}

func (s *fakeScheduler) Post(f func()) {
	s.posted = append(s.posted, f)
}

// Advance moves the clock forward by d, firing due timers in order.
func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > end {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.f()
	}
	s.now = end
}

// Pending returns the number of armed timers.
func (s *fakeScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) RunPosted() {
	posted := s.posted
	s.posted = nil
	for _, f := range posted {
		f()
	}
}

// recorder collects events.
type recorder struct {
	changes    []int
	starts     [][2]int
	ends       []int
	indicators []int
	swipes     []int
}

func (r *recorder) events() Events {
	return Events{
		OnChange: func(index int) {
			r.changes = append(r.changes, index)
		},
		OnAnimationStart: func(current, next int, _ AnimationInfo) {
			r.starts = append(r.starts, [2]int{current, next})
		},
		OnAnimationEnd: func(current int, _ AnimationInfo) {
			r.ends = append(r.ends, current)
		},
		OnIndicatorChange: func(index int) {
			r.indicators = append(r.indicators, index)
		},
		OnGestureSwipe: func(index int, _ AnimationInfo) {
			r.swipes = append(r.swipes, index)
		},
	}
}

var viewport = Constraints{Main: 100, Cross: 20}

type fixture struct {
	p     *Pattern
	ch    *fakeChildren
	sched *fakeScheduler
	rec   *recorder
}

func newFixture(t *testing.T, props Props, count int) *fixture {
	t.Helper()
	f := &fixture{
		p:     NewPattern(props),
		ch:    newFakeChildren(count),
		sched: &fakeScheduler{},
		rec:   &recorder{},
	}
	f.ch.size = viewport.Main
	f.p.SetEvents(f.rec.events())
	f.p.Attach(Host{Children: f.ch, Scheduler: f.sched})
	f.p.Layout(viewport)
	return f
}

// settle ticks until the running animation finishes.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000 && f.p.Animating(); i++ {
		f.p.Tick(frame)
	}
	require.False(t, f.p.Animating(), "animation did not finish")
}

func (f *fixture) drag(deltas ...float64) {
	f.p.DragStart()
	for _, d := range deltas {
		f.p.DragUpdate(d)
	}
}

func nonLoop() Props {
	props := DefaultProps()
	props.Loop = false
	return props
}
