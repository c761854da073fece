package algosht

import (
	"context"
	"math/cmplx"
	"time"

	m "github.com/cwbudde/algo-sht/internal/math"
)

// ringSpectra holds G_m(θ_t) = (2π/nphi) Σ_p f(θ_t, φ_p) e^{-imφ_p} for
// every ring. Complex input stores all nphi orders in FFT order; real input
// stores the half spectrum m = 0..L-1.
type ringSpectra struct {
	data  []complex128
	width int
	nphi  int
	half  bool
}

func (r *ringSpectra) at(t, mm int) complex128 {
	if r.half {
		return r.data[t*r.width+mm]
	}

	return r.data[t*r.width+modIndex(mm, r.nphi)]
}

// Forward computes the spin-s harmonic coefficients of s. The result has L²
// entries ordered by ToIndex; entries with el < |spin| are zero.
func (p *Plan) Forward(s *Samples, spin int) ([]complex128, error) {
	return p.ForwardContext(context.Background(), s, spin)
}

// ForwardContext is Forward with cancellation. Once ctx is done no further
// work is scheduled and ctx.Err() is returned.
func (p *Plan) ForwardContext(ctx context.Context, s *Samples, spin int) (flm []complex128, err error) {
	start := time.Now()
	defer func() { p.observe(OpForward, spin, start, err) }()

	if err := p.checkSpin(OpForward, spin); err != nil {
		return nil, err
	}

	if s == nil {
		return nil, newError(KindPreconditionViolation, string(OpForward), ErrNilSlice, "samples")
	}

	if err := p.checkSampleLen(OpForward, len(s.Data)); err != nil {
		return nil, err
	}

	spec := &ringSpectra{
		data:  make([]complex128, p.ntheta*p.nphi),
		width: p.nphi,
		nphi:  p.nphi,
	}

	err = parallelRange(ctx, p.workers, p.ntheta, func(lo, hi int) error {
		for t := lo; t < hi; t++ {
			row := spec.data[t*p.nphi : (t+1)*p.nphi]
			if err := p.ringFFT.Forward(row, s.Row(t, p.nphi)); err != nil {
				return wrapBackend(string(OpForward), p.backend, p.nphi, err)
			}

			scaleComplex(row, m.TwoPi/float64(p.nphi))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	p.enter(OpForward, StageBasisReady)

	var pole complex128
	if p.scheme == MW {
		phase := complex(0, -float64(spin)*s.SouthPolePhi)
		pole = complex(m.TwoPi, 0) * s.SouthPole * cmplx.Exp(phase)
	}

	flm = make([]complex128, p.bandLimit*p.bandLimit)

	if err := p.accumulate(ctx, OpForward, spec, pole, spin, -(p.bandLimit - 1), flm); err != nil {
		return nil, err
	}

	p.enter(OpForward, StageDone)

	return flm, nil
}

// accumulate integrates the ring spectra against the basis for every order
// m in [mlo, L-1]. Orders are distributed over workers; each order owns its
// coefficients, so workers never write the same entry.
func (p *Plan) accumulate(ctx context.Context, op Op, spec *ringSpectra, pole complex128, spin, mlo int, flm []complex128) error {
	L := p.bandLimit

	p.enter(op, StageAccumulating)

	return parallelRange(ctx, p.workers, L-mlo, func(lo, hi int) error {
		lambda := make([]float64, L)

		var (
			col []complex128
			mw  *mwScratch
		)

		if p.scheme == MW {
			mw = p.newMWScratch()
		} else {
			col = make([]complex128, p.ntheta)
		}

		for i := lo; i < hi; i++ {
			mm := mlo + i
			lmin := max(m.Abs(mm), m.Abs(spin))

			if p.scheme == MW {
				var err error
				if col, err = p.mwColumn(spec, mm, spin, pole, mw); err != nil {
					return err
				}
			} else {
				for t := range col {
					col[t] = spec.at(t, mm)
				}
			}

			for k, a := range p.quad {
				v := complex(p.weights[k], 0) * col[k]
				if v == 0 {
					continue
				}

				p.eval.Lambda(a, mm, spin, lambda)

				for el := lmin; el < L; el++ {
					flm[ToIndex(el, mm)] += v * complex(lambda[el], 0)
				}
			}
		}

		return nil
	})
}

func (p *Plan) checkSpin(op Op, spin int) error {
	if m.Abs(spin) >= p.bandLimit {
		return newError(KindArgumentInvalid, string(op), ErrSpinRange, "spin=%d L=%d", spin, p.bandLimit)
	}

	return nil
}

func (p *Plan) checkSampleLen(op Op, n int) error {
	if want := p.ntheta * p.nphi; n != want {
		return newError(KindPreconditionViolation, string(op), ErrLengthMismatch, "samples: want %d, got %d", want, n)
	}

	return nil
}

func (p *Plan) checkCoeffLen(op Op, flm []complex128) error {
	if flm == nil {
		return newError(KindPreconditionViolation, string(op), ErrNilSlice, "coefficients")
	}

	if want := p.bandLimit * p.bandLimit; len(flm) != want {
		return newError(KindPreconditionViolation, string(op), ErrLengthMismatch, "coefficients: want %d, got %d", want, len(flm))
	}

	return nil
}

func (p *Plan) observe(op Op, spin int, start time.Time, err error) {
	if p.observer == nil {
		return
	}

	p.observer.ObserveTransform(TransformEvent{
		Op:       op,
		Scheme:   p.scheme,
		L:        p.bandLimit,
		Spin:     spin,
		Duration: time.Since(start),
		Err:      err,
	})
}

func scaleComplex(x []complex128, f float64) {
	c := complex(f, 0)
	for i := range x {
		x[i] *= c
	}
}
