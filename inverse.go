package algosht

import (
	"context"
	"time"

	m "github.com/cwbudde/algo-sht/internal/math"
	"github.com/cwbudde/algo-sht/internal/wigner"
)

// Inverse synthesizes the spin-s function with coefficients flm on the
// plan's grid. Coefficients with el < |spin| are ignored. For MW the south
// pole is returned at azimuth 0.
func (p *Plan) Inverse(flm []complex128, spin int) (*Samples, error) {
	return p.InverseContext(context.Background(), flm, spin)
}

// InverseContext is Inverse with cancellation.
func (p *Plan) InverseContext(ctx context.Context, flm []complex128, spin int) (out *Samples, err error) {
	start := time.Now()
	defer func() { p.observe(OpInverse, spin, start, err) }()

	if err := p.checkSpin(OpInverse, spin); err != nil {
		return nil, err
	}

	if err := p.checkCoeffLen(OpInverse, flm); err != nil {
		return nil, err
	}

	L := p.bandLimit
	out = p.NewSamples()

	p.enter(OpInverse, StageBasisReady)
	p.enter(OpInverse, StageAccumulating)

	err = parallelRange(ctx, p.workers, p.ntheta, func(lo, hi int) error {
		lambda := make([]float64, L)
		row := make([]complex128, p.nphi)

		for t := lo; t < hi; t++ {
			for mm := -(L - 1); mm <= L-1; mm++ {
				row[modIndex(mm, p.nphi)] = p.synthesize(flm, p.rings[t], mm, spin, lambda)
			}

			dst := out.Row(t, p.nphi)
			if err := p.ringFFT.Inverse(dst, row); err != nil {
				return wrapBackend(string(OpInverse), p.backend, p.nphi, err)
			}

			scaleComplex(dst, float64(p.nphi))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.scheme == MW {
		out.SouthPole = p.synthesize(flm, wigner.NewAngle(southPole), spin, spin, make([]float64, L))
	}

	p.enter(OpInverse, StageDone)

	return out, nil
}

// synthesize returns Σ_el flm[el, mm] Λ_el^{mm,spin}(θ).
func (p *Plan) synthesize(flm []complex128, a wigner.Angle, mm, spin int, lambda []float64) complex128 {
	L := p.bandLimit
	lmin := max(m.Abs(mm), m.Abs(spin))

	if lmin >= L {
		return 0
	}

	p.eval.Lambda(a, mm, spin, lambda)

	var sum complex128
	for el := lmin; el < L; el++ {
		sum += flm[ToIndex(el, mm)] * complex(lambda[el], 0)
	}

	return sum
}
