package swiper

import (
	"math"

	"github.com/fogleman/ease"
)

// Curve maps normalized time in [0, 1] to normalized progress.
type Curve interface {
	Ease(t float64) float64
}

// CurveFunc adapts a plain easing function to [Curve].
type CurveFunc func(t float64) float64

func (f CurveFunc) Ease(t float64) float64 {
	return f(t)
}

var (
	Linear    Curve = CurveFunc(ease.Linear)
	EaseIn    Curve = CurveFunc(ease.InCubic)
	EaseOut   Curve = CurveFunc(ease.OutCubic)
	EaseInOut Curve = CurveFunc(ease.InOutCubic)
	// Friction decelerates quickly and coasts into place.
	Friction Curve = CurveFunc(ease.OutQuart)
)

// CurveByName resolves the names accepted in configuration files. The empty
// string resolves to nil, the engine's default curve.
func CurveByName(name string) (Curve, bool) {
	switch name {
	case "":
		return nil, true
	case "linear":
		return Linear, true
	case "ease-in":
		return EaseIn, true
	case "ease-out":
		return EaseOut, true
	case "ease-in-out", "ease":
		return EaseInOut, true
	case "friction":
		return Friction, true
	case "spring":
		return DefaultPhysics().spring(0), true
	}
	return nil, false
}

// SpringCurve is a physical curve. Its motion is driven by mass, stiffness
// and damping rather than a duration.
type SpringCurve struct {
	Mass      float64
	Stiffness float64
	Damping   float64
	// Velocity is the initial velocity in distance units per second.
	Velocity float64
}

// Ease evaluates the normalized step response of the spring, with t measured
// in seconds. It is used only when a spring is sampled like a timing curve.
func (s SpringCurve) Ease(t float64) float64 {
	omega, zeta := s.params()
	if t <= 0 {
		return 0
	}
	if zeta >= 1 {
		return 1 - (1+omega*t)*math.Exp(-omega*t)
	}
	wd := omega * math.Sqrt(1-zeta*zeta)
	return 1 - math.Exp(-zeta*omega*t)*(math.Cos(wd*t)+zeta*omega/wd*math.Sin(wd*t))
}

// params returns the angular frequency and damping ratio.
func (s SpringCurve) params() (omega, zeta float64) {
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	stiffness := s.Stiffness
	if stiffness <= 0 {
		stiffness = DefaultPhysics().SpringStiffness
	}
	omega = math.Sqrt(stiffness / mass)
	zeta = s.Damping / (2 * math.Sqrt(stiffness*mass))
	return omega, zeta
}
