package swiper

import (
	"time"

	"github.com/xqrs/swipeview/internal/debug"
)

// Scheduler runs callbacks on the thread that owns the swiper.
type Scheduler interface {
	// AfterFunc runs f once d has elapsed. stop cancels it and reports
	// whether the call was still pending.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
	// Post runs f as soon as possible.
	Post(f func())
}

// SuspendReason is a set of reasons autoplay is paused.
type SuspendReason uint8

const (
	SuspendDragging SuspendReason = 1 << iota
	// SuspendHidden is set while the swiper is outside the visible area.
	SuspendHidden
	SuspendWindowHidden
	// SuspendAtEnd is set while a non-looping swiper rests on its last page.
	SuspendAtEnd
)

// Autoplay periodically fires a callback while enabled and not suspended.
type Autoplay struct {
	scheduler Scheduler
	fire      func()

	enabled   bool
	interval  time.Duration
	suspended SuspendReason

	stop       func() bool
	generation uint64
}

// NewAutoplay returns a disabled driver that calls fire on every tick.
func NewAutoplay(scheduler Scheduler, fire func()) *Autoplay {
	return &Autoplay{
		scheduler: scheduler,
		fire:      fire,
		interval:  DefaultInterval,
	}
}

// SetEnabled turns the driver on or off.
func (a *Autoplay) SetEnabled(enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	if enabled {
		a.Schedule()
	} else {
		a.Cancel()
	}
}

// Enabled reports whether autoplay is turned on.
func (a *Autoplay) Enabled() bool {
	return a.enabled
}

// SetInterval changes the delay between ticks. A pending tick is restarted
// with the new interval.
func (a *Autoplay) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	if a.interval == d {
		return
	}
	a.interval = d
	if a.Scheduled() {
		a.Schedule()
	}
}

// Suspend pauses the driver for reason.
func (a *Autoplay) Suspend(reason SuspendReason) {
	if a.suspended&reason == reason {
		return
	}
	a.suspended |= reason
	a.Cancel()
}

// Resume clears reason and reschedules once no reason is left.
func (a *Autoplay) Resume(reason SuspendReason) {
	if a.suspended&reason == 0 {
		return
	}
	a.suspended &^= reason
	a.Schedule()
}

// Suspended reports the active suspension reasons.
func (a *Autoplay) Suspended() SuspendReason {
	return a.suspended
}

// Scheduled reports whether a tick is pending.
func (a *Autoplay) Scheduled() bool {
	return a.stop != nil
}

// Schedule (re)arms the next tick if the driver may run.
func (a *Autoplay) Schedule() {
	a.Cancel()
	if !a.enabled || a.suspended != 0 || a.scheduler == nil {
		return
	}
	a.generation++
	gen := a.generation
	a.stop = a.scheduler.AfterFunc(a.interval, func() {
		if gen != a.generation {
			return
		}
		a.stop = nil
		debug.Log("autoplay: tick")
		a.fire()
	})
}

// Cancel drops a pending tick.
func (a *Autoplay) Cancel() {
	if a.stop == nil {
		return
	}
	a.stop()
	a.stop = nil
	a.generation++
}
