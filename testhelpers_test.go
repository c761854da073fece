package algosht

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"
)

// Shared test helper functions used across multiple test files

func assertApproxComplex128Tolf(t *testing.T, got, want complex128, tol float64, format string, args ...any) {
	t.Helper()

	if cmplx.Abs(got-want) > tol {
		t.Fatalf(format+": got %v want %v (diff=%v)", append(args, got, want, cmplx.Abs(got-want))...)
	}
}

func maxAbsDiff(a, b []complex128) float64 {
	var maxErr float64
	for i := range a {
		maxErr = math.Max(maxErr, cmplx.Abs(a[i]-b[i]))
	}

	return maxErr
}

// randomCoefficients returns band-limited spin coefficients with zeros
// below el = |spin|.
func randomCoefficients(rng *rand.Rand, L, spin int) []complex128 {
	flm := make([]complex128, L*L)

	for el := absInt(spin); el < L; el++ {
		for mm := -el; mm <= el; mm++ {
			flm[ToIndex(el, mm)] = complex(2*rng.Float64()-1, 2*rng.Float64()-1)
		}
	}

	return flm
}

// randomRealCoefficients returns coefficients of a real function.
func randomRealCoefficients(rng *rand.Rand, L int) []complex128 {
	flm := make([]complex128, L*L)

	for el := range L {
		flm[ToIndex(el, 0)] = complex(2*rng.Float64()-1, 0)

		for mm := 1; mm <= el; mm++ {
			v := complex(2*rng.Float64()-1, 2*rng.Float64()-1)
			flm[ToIndex(el, mm)] = v

			sign := 1.0
			if mm%2 != 0 {
				sign = -1
			}

			flm[ToIndex(el, -mm)] = complex(sign, 0) * cmplx.Conj(v)
		}
	}

	return flm
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
