package algosht

import "math"

// Samples holds a complex function sampled on a scheme's grid. Data is
// row-major with NTheta rows of NPhi samples. MW grids additionally carry
// the south pole value f(π, SouthPolePhi); the other schemes leave the pole
// fields zero.
type Samples struct {
	Data         []complex128
	SouthPole    complex128
	SouthPolePhi float64
}

// RealSamples is the real-valued counterpart of Samples.
type RealSamples struct {
	Data         []float64
	SouthPole    float64
	SouthPolePhi float64
}

// NewSamples allocates a zeroed sample grid for scheme at band-limit L.
func NewSamples(scheme Scheme, L int) (*Samples, error) {
	n, err := sampleLen("NewSamples", scheme, L)
	if err != nil {
		return nil, err
	}

	return &Samples{Data: make([]complex128, n)}, nil
}

// NewRealSamples allocates a zeroed real sample grid.
func NewRealSamples(scheme Scheme, L int) (*RealSamples, error) {
	n, err := sampleLen("NewRealSamples", scheme, L)
	if err != nil {
		return nil, err
	}

	return &RealSamples{Data: make([]float64, n)}, nil
}

// Row returns ring t of a grid with nphi samples per ring.
func (s *Samples) Row(t, nphi int) []complex128 {
	return s.Data[t*nphi : (t+1)*nphi]
}

// Row returns ring t of a grid with nphi samples per ring.
func (s *RealSamples) Row(t, nphi int) []float64 {
	return s.Data[t*nphi : (t+1)*nphi]
}

// NewCoefficients allocates L² zero coefficients.
func NewCoefficients(L int) ([]complex128, error) {
	if L < 1 {
		return nil, newError(KindArgumentInvalid, "NewCoefficients", ErrBandLimit, "L=%d", L)
	}

	n, ok := mulInt(L, L)
	if !ok {
		return nil, newError(KindAllocationFailure, "NewCoefficients", ErrSizeOverflow, "L=%d", L)
	}

	return make([]complex128, n), nil
}

func sampleLen(op string, scheme Scheme, L int) (int, error) {
	if err := checkGrid(op, scheme, L); err != nil {
		return 0, err
	}

	if L > math.MaxInt/4 {
		return 0, newError(KindAllocationFailure, op, ErrSizeOverflow, "%s L=%d", scheme, L)
	}

	n, ok := mulInt(NTheta(scheme, L), NPhi(scheme, L))
	if !ok {
		return 0, newError(KindAllocationFailure, op, ErrSizeOverflow, "%s L=%d", scheme, L)
	}

	return n, nil
}

// mulInt returns a*b for non-negative operands and reports overflow.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	c := a * b
	if c/b != a || c < 0 {
		return 0, false
	}

	return c, true
}
