package wigner

import "math"

// Angle caches the trigonometric quantities the recursion needs for one
// colatitude. Build it once per sample ring and share it across orders.
type Angle struct {
	theta      float64
	cos        float64
	logCosHalf float64
	logSinHalf float64
	north      bool
	south      bool
}

// NewAngle prepares θ for evaluation. θ = 0 and θ = π are recognized exactly
// and evaluated from the closed pole forms.
func NewAngle(theta float64) Angle {
	a := Angle{
		theta: theta,
		north: theta == 0,
		south: theta == math.Pi,
	}

	if a.north || a.south {
		return a
	}

	a.cos = math.Cos(theta)
	a.logCosHalf = math.Log(math.Abs(math.Cos(0.5 * theta)))
	a.logSinHalf = math.Log(math.Abs(math.Sin(0.5 * theta)))

	return a
}

// Theta returns the colatitude in radians.
func (a Angle) Theta() float64 {
	return a.theta
}
