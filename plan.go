package algosht

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sht/internal/wigner"
	"k8s.io/klog/v2"
)

// Plan holds everything a transform needs for one (scheme, L): the sample
// grid, the colatitude quadrature, the basis evaluator and the FFT plans.
//
// A Plan is immutable once created and safe for concurrent use. Each call
// allocates its own working buffers.
type Plan struct {
	scheme    Scheme
	bandLimit int
	ntheta    int
	nphi      int

	// rings are the NTheta sample colatitudes.
	rings []wigner.Angle

	// quad and weights drive the forward integration. DH and GL integrate
	// on the rings; MW integrates on the 2L-1 upsampled colatitudes.
	quad    []wigner.Angle
	weights []float64

	eval *wigner.Evaluator

	ringFFT FFTPlan
	realFFT RealFFTPlan

	// MW only: the colatitude FFT reuses ringFFT (both have 2L-1 points);
	// fineFFT evaluates the zero-padded series on 4L-3 points.
	fineFFT   FFTPlan
	finePhase []complex128 // indexed by m'+L-1

	workers  int
	backend  FFTBackend
	observer Observer
}

// NewPlan validates (scheme, L) and precomputes the grid, the weights and
// the FFT plans.
func NewPlan(scheme Scheme, L int, opts PlanOptions) (*Plan, error) {
	const op = "NewPlan"

	nsamples, err := sampleLen(op, scheme, L)
	if err != nil {
		return nil, err
	}

	if _, ok := mulInt(L, L); !ok {
		return nil, newError(KindAllocationFailure, op, ErrSizeOverflow, "L=%d", L)
	}

	p := &Plan{
		scheme:    scheme,
		bandLimit: L,
		ntheta:    NTheta(scheme, L),
		nphi:      NPhi(scheme, L),
		eval:      wigner.NewEvaluator(L),
		workers:   opts.workers(),
		backend:   opts.backend(),
		observer:  opts.Observer,
	}

	thetas, err := Thetas(scheme, L)
	if err != nil {
		return nil, err
	}

	p.rings = make([]wigner.Angle, len(thetas))
	for t, theta := range thetas {
		p.rings[t] = wigner.NewAngle(theta)
	}

	p.enter("plan", StageGridReady)

	if err := p.initQuadrature(thetas); err != nil {
		return nil, err
	}

	p.enter("plan", StageWeightsReady)

	if p.ringFFT, err = p.backend.NewPlan(p.nphi); err != nil {
		return nil, wrapBackend(op, p.backend, p.nphi, err)
	}

	if p.realFFT, err = p.backend.NewRealPlan(p.nphi); err != nil {
		return nil, wrapBackend(op, p.backend, p.nphi, err)
	}

	klog.V(logPlan).InfoS("Created transform plan",
		"scheme", scheme, "L", L, "samples", nsamples,
		"backend", p.backend.Name(), "workers", p.workers)

	return p, nil
}

func (p *Plan) initQuadrature(thetas []float64) error {
	L := p.bandLimit

	switch p.scheme {
	case DH:
		p.quad = p.rings
		p.weights = make([]float64, len(thetas))

		for t, theta := range thetas {
			p.weights[t] = DHWeight(theta, L)
		}
	case GL:
		_, w, err := glRule(L)
		if err != nil {
			return err
		}

		p.quad = p.rings
		p.weights = w
	case MW:
		q, err := mwRingKernel(p.backend, L)
		if err != nil {
			return err
		}

		p.weights = foldMWKernel(q, L)

		fine := mwFineThetas(L)
		p.quad = make([]wigner.Angle, len(fine))

		for k, theta := range fine {
			p.quad[k] = wigner.NewAngle(theta)
		}

		nf := mwFineLen(L)
		if p.fineFFT, err = p.backend.NewPlan(nf); err != nil {
			return wrapBackend("NewPlan", p.backend, nf, err)
		}

		// Colatitude spectrum on 2L-1 points to fine samples on 4L-3 points:
		// ratio of lengths, the half-sample shift of the coarse grid, and
		// that of the fine grid.
		n := float64(p.nphi)
		ratio := float64(nf) / n
		p.finePhase = make([]complex128, 2*L-1)

		for i := range p.finePhase {
			mp := float64(i - (L - 1))
			shift := -mp*math.Pi/n + mp*math.Pi/float64(nf)
			p.finePhase[i] = complex(ratio, 0) * cmplx.Exp(complex(0, shift))
		}
	}

	return nil
}

// Scheme returns the sampling scheme.
func (p *Plan) Scheme() Scheme { return p.scheme }

// BandLimit returns L.
func (p *Plan) BandLimit() int { return p.bandLimit }

// NTheta returns the number of sample rings.
func (p *Plan) NTheta() int { return p.ntheta }

// NPhi returns the number of samples per ring.
func (p *Plan) NPhi() int { return p.nphi }

// Weights returns a copy of the forward quadrature weights.
func (p *Plan) Weights() []float64 {
	return append([]float64(nil), p.weights...)
}

// NewSamples allocates a zeroed grid matching the plan.
func (p *Plan) NewSamples() *Samples {
	return &Samples{Data: make([]complex128, p.ntheta*p.nphi)}
}

// NewRealSamples allocates a zeroed real grid matching the plan.
func (p *Plan) NewRealSamples() *RealSamples {
	return &RealSamples{Data: make([]float64, p.ntheta*p.nphi)}
}
