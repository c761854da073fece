package algosht

import (
	"math"
	"slices"
	"sync"
)

// NTheta returns the number of colatitude rings carried in Samples.Data.
// For MW the south pole is stored separately and is not counted.
func NTheta(scheme Scheme, L int) int {
	switch scheme {
	case DH:
		return 2 * L
	case MW:
		return L - 1
	case GL:
		return L
	default:
		return 0
	}
}

// NPhi returns the number of azimuth samples per ring. All schemes share
// 2L-1 equiangular longitudes.
func NPhi(scheme Scheme, L int) int {
	if !scheme.Valid() {
		return 0
	}

	return 2*L - 1
}

// HasSouthPole reports whether the scheme samples θ = π as a single point.
func HasSouthPole(scheme Scheme) bool {
	return scheme == MW
}

// SampleCount returns the number of ring samples (excluding the MW pole).
func SampleCount(scheme Scheme, L int) int {
	return NTheta(scheme, L) * NPhi(scheme, L)
}

// Theta returns the colatitude of ring t. For MW, t = L-1 is the south pole.
// GL colatitudes come from a Gauss-Legendre rule solved once per L.
func Theta(scheme Scheme, t, L int) float64 {
	switch scheme {
	case DH:
		return math.Pi * float64(2*t+1) / float64(4*L)
	case MW:
		if t == L-1 {
			return math.Pi
		}

		return math.Pi * float64(2*t+1) / float64(2*L-1)
	case GL:
		thetas, _, err := glRule(L)
		if err != nil || t < 0 || t >= len(thetas) {
			return math.NaN()
		}

		return thetas[t]
	default:
		return math.NaN()
	}
}

// Phi returns the azimuth of sample p. It does not depend on the scheme.
func Phi(_ Scheme, p, L int) float64 {
	return 2 * math.Pi * float64(p) / float64(2*L-1)
}

// Thetas returns the NTheta ring colatitudes in increasing order.
func Thetas(scheme Scheme, L int) ([]float64, error) {
	if err := checkGrid("Thetas", scheme, L); err != nil {
		return nil, err
	}

	if scheme == GL {
		thetas, _, err := glRule(L)
		return slices.Clone(thetas), err
	}

	n := NTheta(scheme, L)
	out := make([]float64, n)

	for t := range out {
		out[t] = Theta(scheme, t, L)
	}

	return out, nil
}

// Phis returns the NPhi azimuths.
func Phis(scheme Scheme, L int) ([]float64, error) {
	if err := checkGrid("Phis", scheme, L); err != nil {
		return nil, err
	}

	out := make([]float64, NPhi(scheme, L))
	for p := range out {
		out[p] = Phi(scheme, p, L)
	}

	return out, nil
}

type glTable struct {
	thetas, weights []float64
}

// glRules memoizes glRule by band-limit. Entries are never modified.
var glRules sync.Map // int -> *glTable

// glRule returns GL colatitudes in increasing order together with their
// weights. The slices are shared and must not be modified.
func glRule(L int) (thetas, weights []float64, err error) {
	if e, ok := glRules.Load(L); ok {
		tab := e.(*glTable)
		return tab.thetas, tab.weights, nil
	}

	x, w, err := GaussLegendre(-1, 1, L)
	if err != nil {
		return nil, nil, err
	}

	tab := &glTable{thetas: make([]float64, L), weights: make([]float64, L)}

	for t := range L {
		tab.thetas[t] = math.Acos(x[L-1-t])
		tab.weights[t] = w[L-1-t]
	}

	e, _ := glRules.LoadOrStore(L, tab)
	tab = e.(*glTable)

	return tab.thetas, tab.weights, nil
}

func checkGrid(op string, scheme Scheme, L int) error {
	if !scheme.Valid() {
		return newError(KindArgumentInvalid, op, ErrUnknownScheme, "%s", scheme)
	}

	if L < 1 {
		return newError(KindArgumentInvalid, op, ErrBandLimit, "L=%d", L)
	}

	return nil
}

const southPole = math.Pi
