package wigner

import (
	"math"

	m "github.com/cwbudde/algo-sht/internal/math"
)

// Evaluator produces the normalized spin-weighted basis
//
//	Λ_l^{m,s}(θ) = (-1)^s sqrt((2l+1)/4π) d^l_{m,-s}(θ)
//
// for all degrees below a fixed band-limit, so that
// sY_lm(θ, φ) = Λ_l^{m,s}(θ) e^{imφ}. An Evaluator is immutable and may be
// shared between goroutines; callers supply their own output slices.
type Evaluator struct {
	bandLimit int
	norm      []float64
}

// NewEvaluator precomputes the degree normalizations for band-limit L.
func NewEvaluator(L int) *Evaluator {
	norm := make([]float64, max(L, 0))
	for l := range norm {
		norm[l] = math.Sqrt(float64(2*l+1) / m.FourPi)
	}

	return &Evaluator{bandLimit: L, norm: norm}
}

// BandLimit returns L.
func (e *Evaluator) BandLimit() int {
	return e.bandLimit
}

// Lambda fills out[l] = Λ_l^{mm,s}(θ) for l < L. out must have length L.
func (e *Evaluator) Lambda(a Angle, mm, s int, out []float64) {
	out = out[:e.bandLimit]
	D(a, mm, -s, out)

	sign := m.MinusOnePow(s)
	for l := max(m.Abs(mm), m.Abs(s)); l < e.bandLimit; l++ {
		out[l] *= sign * e.norm[l]
	}
}
