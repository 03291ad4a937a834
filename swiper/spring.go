package swiper

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// maxSpringStep bounds a single spring integration step in seconds.
const maxSpringStep = 1.0 / 120

// motion drives one scalar from a start value to a (possibly moving) target,
// either along a timing curve over a duration or as a damped spring.
type motion struct {
	from, to float64
	value    float64
	velocity float64

	curve    Curve
	duration time.Duration
	elapsed  time.Duration

	spring  bool
	sc      SpringCurve
	maxTime time.Duration
	restPos float64
	restVel float64
}

func newMotion(from, to float64, curve Curve, duration time.Duration, ph Physics) motion {
	m := motion{
		from:     from,
		to:       to,
		value:    from,
		curve:    curve,
		duration: duration,
		maxTime:  ph.MaxSpringDuration,
		restPos:  ph.RestDistance,
		restVel:  ph.RestVelocity,
	}
	if sc, ok := curve.(SpringCurve); ok {
		m.spring = true
		m.sc = sc
		m.velocity = sc.Velocity
	}
	if m.curve == nil {
		m.curve = Linear
	}
	return m
}

// progress returns the fraction of the way from start to target.
func (m *motion) progress() float64 {
	if m.to == m.from {
		return 1
	}
	return (m.value - m.from) / (m.to - m.from)
}

// step advances the motion by dt and reports the new value and whether the
// motion reached its target.
func (m *motion) step(dt time.Duration) (float64, bool) {
	m.elapsed += dt
	if m.spring {
		return m.stepSpring(dt)
	}
	if m.duration <= 0 || m.elapsed >= m.duration {
		m.finish()
		return m.value, true
	}
	t := float64(m.elapsed) / float64(m.duration)
	m.value = m.from + (m.to-m.from)*m.curve.Ease(t)
	return m.value, false
}

func (m *motion) stepSpring(dt time.Duration) (float64, bool) {
	if secs := dt.Seconds(); secs > 0 {
		omega, zeta := m.sc.params()
		steps := int(math.Ceil(secs / maxSpringStep))
		s := harmonica.NewSpring(secs/float64(steps), omega, zeta)
		for range steps {
			m.value, m.velocity = s.Update(m.value, m.velocity, m.to)
		}
	}
	atRest := math.Abs(m.value-m.to) < m.restPos && math.Abs(m.velocity) < m.restVel
	if atRest || (m.maxTime > 0 && m.elapsed >= m.maxTime) {
		m.finish()
		return m.value, true
	}
	return m.value, false
}

func (m *motion) finish() {
	m.value = m.to
	m.velocity = 0
}
