package algosht

import m "github.com/cwbudde/algo-sht/internal/math"

// Request describes one transform independently of its data.
type Request struct {
	Scheme Scheme
	L      int
	Spin   int
	Real   bool
}

// Validate checks the request before anything is allocated.
func (r Request) Validate() error {
	const op = "Request"

	if err := checkGrid(op, r.Scheme, r.L); err != nil {
		return err
	}

	if r.Real && r.Spin != 0 {
		return newError(KindArgumentInvalid, op, ErrSpinReality, "spin=%d", r.Spin)
	}

	if m.Abs(r.Spin) >= r.L {
		return newError(KindArgumentInvalid, op, ErrSpinRange, "spin=%d L=%d", r.Spin, r.L)
	}

	return nil
}

// Forward computes the spin-s coefficients of samples on scheme's grid at
// band-limit L. It builds a fresh Plan; reuse a Plan for repeated calls.
func Forward(samples *Samples, L, spin int, scheme Scheme) ([]complex128, error) {
	p, err := planFor(Request{Scheme: scheme, L: L, Spin: spin})
	if err != nil {
		return nil, err
	}

	return p.Forward(samples, spin)
}

// Inverse synthesizes the spin-s function with coefficients flm.
func Inverse(flm []complex128, L, spin int, scheme Scheme) (*Samples, error) {
	p, err := planFor(Request{Scheme: scheme, L: L, Spin: spin})
	if err != nil {
		return nil, err
	}

	return p.Inverse(flm, spin)
}

// ForwardReal computes the spin-0 coefficients of a real function.
func ForwardReal(samples *RealSamples, L int, scheme Scheme) ([]complex128, error) {
	p, err := planFor(Request{Scheme: scheme, L: L, Real: true})
	if err != nil {
		return nil, err
	}

	return p.ForwardReal(samples)
}

// InverseReal synthesizes a real spin-0 function.
func InverseReal(flm []complex128, L int, scheme Scheme) (*RealSamples, error) {
	p, err := planFor(Request{Scheme: scheme, L: L, Real: true})
	if err != nil {
		return nil, err
	}

	return p.InverseReal(flm)
}

func planFor(r Request) (*Plan, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return NewPlan(r.Scheme, r.L, PlanOptions{})
}
