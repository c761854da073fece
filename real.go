package algosht

import (
	"context"
	"math/cmplx"
	"time"

	m "github.com/cwbudde/algo-sht/internal/math"
	"github.com/cwbudde/algo-sht/internal/wigner"
)

// ForwardReal computes the spin-0 coefficients of a real function. Only the
// orders m >= 0 are integrated; the rest follow from
// f_{el,-m} = (-1)^m conj(f_{el,m}).
func (p *Plan) ForwardReal(s *RealSamples) ([]complex128, error) {
	return p.ForwardRealContext(context.Background(), s)
}

// ForwardRealContext is ForwardReal with cancellation.
func (p *Plan) ForwardRealContext(ctx context.Context, s *RealSamples) (flm []complex128, err error) {
	start := time.Now()
	defer func() { p.observe(OpForwardReal, 0, start, err) }()

	if s == nil {
		return nil, newError(KindPreconditionViolation, string(OpForwardReal), ErrNilSlice, "samples")
	}

	if err := p.checkSampleLen(OpForwardReal, len(s.Data)); err != nil {
		return nil, err
	}

	L := p.bandLimit
	spec := &ringSpectra{
		data:  make([]complex128, p.ntheta*L),
		width: L,
		nphi:  p.nphi,
		half:  true,
	}

	err = parallelRange(ctx, p.workers, p.ntheta, func(lo, hi int) error {
		for t := lo; t < hi; t++ {
			row := spec.data[t*L : (t+1)*L]
			if err := p.realFFT.Forward(row, s.Row(t, p.nphi)); err != nil {
				return wrapBackend(string(OpForwardReal), p.backend, p.nphi, err)
			}

			scaleComplex(row, m.TwoPi/float64(p.nphi))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	p.enter(OpForwardReal, StageBasisReady)

	var pole complex128
	if p.scheme == MW {
		pole = complex(m.TwoPi*s.SouthPole, 0)
	}

	flm = make([]complex128, L*L)

	if err := p.accumulate(ctx, OpForwardReal, spec, pole, 0, 0, flm); err != nil {
		return nil, err
	}

	for el := 1; el < L; el++ {
		for mm := 1; mm <= el; mm++ {
			flm[ToIndex(el, -mm)] = complex(m.MinusOnePow(mm), 0) * cmplx.Conj(flm[ToIndex(el, mm)])
		}
	}

	p.enter(OpForwardReal, StageDone)

	return flm, nil
}

// InverseReal synthesizes the real spin-0 function with coefficients flm.
// Only the orders m >= 0 are read; flm is assumed to satisfy the conjugate
// symmetry of a real function.
func (p *Plan) InverseReal(flm []complex128) (*RealSamples, error) {
	return p.InverseRealContext(context.Background(), flm)
}

// InverseRealContext is InverseReal with cancellation.
func (p *Plan) InverseRealContext(ctx context.Context, flm []complex128) (out *RealSamples, err error) {
	start := time.Now()
	defer func() { p.observe(OpInverseReal, 0, start, err) }()

	if err := p.checkCoeffLen(OpInverseReal, flm); err != nil {
		return nil, err
	}

	L := p.bandLimit
	out = p.NewRealSamples()

	p.enter(OpInverseReal, StageBasisReady)
	p.enter(OpInverseReal, StageAccumulating)

	err = parallelRange(ctx, p.workers, p.ntheta, func(lo, hi int) error {
		lambda := make([]float64, L)
		row := make([]complex128, L)

		for t := lo; t < hi; t++ {
			for mm := range L {
				row[mm] = p.synthesize(flm, p.rings[t], mm, 0, lambda)
			}

			// The zero order of a real function is real; drop rounding noise
			// the half-spectrum inverse would reject.
			row[0] = complex(real(row[0]), 0)

			dst := out.Row(t, p.nphi)
			if err := p.realFFT.Inverse(dst, row); err != nil {
				return wrapBackend(string(OpInverseReal), p.backend, p.nphi, err)
			}

			scale := float64(p.nphi)
			for i := range dst {
				dst[i] *= scale
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if p.scheme == MW {
		out.SouthPole = real(p.synthesize(flm, wigner.NewAngle(southPole), 0, 0, make([]float64, L)))
	}

	p.enter(OpInverseReal, StageDone)

	return out, nil
}
