package algosht

import (
	"math"
	"math/cmplx"
	"slices"
)

const (
	// glTolerance bounds the change between successive Newton iterates.
	glTolerance = 1e-14
	// glMaxIterations guards the Newton loop against non-convergence.
	glMaxIterations = 100
)

// GaussLegendre returns the n-point Gauss–Legendre nodes on [a, b] in
// ascending order and their weights. The weights sum to b-a and integrate
// polynomials of degree 2n-1 exactly.
func GaussLegendre(a, b float64, n int) (nodes, weights []float64, err error) {
	if n < 1 || !(b > a) {
		return nil, nil, newError(KindArgumentInvalid, "GaussLegendre", ErrInvalidInterval, "a=%g b=%g n=%d", a, b, n)
	}

	nodes = make([]float64, n)
	weights = make([]float64, n)

	mid := 0.5 * (b + a)
	half := 0.5 * (b - a)

	// Roots are symmetric; solve the first half and mirror.
	for i := 1; i <= (n+1)/2; i++ {
		z := math.Cos(math.Pi * (float64(i) - 0.25) / (float64(n) + 0.5))

		var pp float64

		converged := false

		for range glMaxIterations {
			p1, p2 := 1.0, 0.0
			for j := 1; j <= n; j++ {
				p3 := p2
				p2 = p1
				p1 = (float64(2*j-1)*z*p2 - float64(j-1)*p3) / float64(j)
			}

			// p1 is P_n(z), p2 is P_{n-1}(z).
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)

			z1 := z
			z = z1 - p1/pp

			if math.Abs(z-z1) <= glTolerance {
				converged = true
				break
			}
		}

		if !converged {
			return nil, nil, newError(KindInternal, "GaussLegendre", ErrInvalidInterval, "root %d did not converge", i)
		}

		nodes[i-1] = mid - half*z
		nodes[n-i] = mid + half*z
		weights[i-1] = 2 * half / ((1 - z*z) * pp * pp)
		weights[n-i] = weights[i-1]
	}

	return nodes, weights, nil
}

// DHWeight returns the Driscoll–Healy quadrature weight for colatitude theta
// at band-limit L.
func DHWeight(theta float64, L int) float64 {
	var sum float64
	for k := range L {
		odd := float64(2*k + 1)
		sum += math.Sin(odd*theta) / odd
	}

	return 2 / float64(L) * math.Sin(theta) * sum
}

// MWRingWeight returns ∫_0^π e^{ipθ} sin θ dθ, the weight applied to
// Fourier mode p of a colatitude ring extended to [0, 2π).
func MWRingWeight(p int) complex128 {
	switch {
	case p == 1:
		return complex(0, math.Pi/2)
	case p == -1:
		return complex(0, -math.Pi/2)
	case p%2 == 0:
		return complex(2/(1-float64(p)*float64(p)), 0)
	default:
		return 0
	}
}

// mwFineLen is the length of the upsampled MW colatitude grid on [0, 2π).
func mwFineLen(L int) int {
	return 4*L - 3
}

// MWRingKernel returns the spatial form of the MW ring weights on the
// upsampled grid θ'_k = (2k+1)π/(4L-3), k < 4L-3:
//
//	q_k = 1/(4L-3) Σ_{|p|≤2L-2} MWRingWeight(p) e^{-ipθ'_k}
//
// It is computed with one FFT of the current backend.
func MWRingKernel(L int) ([]complex128, error) {
	if L < 1 {
		return nil, newError(KindArgumentInvalid, "MWRingKernel", ErrBandLimit, "L=%d", L)
	}

	return mwRingKernel(CurrentBackend(), L)
}

func mwRingKernel(backend FFTBackend, L int) ([]complex128, error) {
	nf := mwFineLen(L)

	plan, err := backend.NewPlan(nf)
	if err != nil {
		return nil, wrapBackend("MWRingKernel", backend, nf, err)
	}

	// 4L-3 = 2(2L-2)+1, so every |p| ≤ 2L-2 lands on its own residue.
	src := make([]complex128, nf)
	for p := -(2*L - 2); p <= 2*L-2; p++ {
		src[modIndex(p, nf)] = MWRingWeight(p) * cmplx.Exp(complex(0, -float64(p)*math.Pi/float64(nf)))
	}

	dst := make([]complex128, nf)
	if err := plan.Forward(dst, src); err != nil {
		return nil, wrapBackend("MWRingKernel", backend, nf, err)
	}

	scale := complex(1/float64(nf), 0)
	for k := range dst {
		dst[k] *= scale
	}

	return dst, nil
}

// MWFineWeights folds MWRingKernel onto the 2L-1 fine colatitudes in (0, π].
// Point k pairs with its mirror 4L-4-k at 2π-θ'_k; the last point θ = π is
// unpaired.
func MWFineWeights(L int) ([]float64, error) {
	q, err := MWRingKernel(L)
	if err != nil {
		return nil, err
	}

	return foldMWKernel(q, L), nil
}

func foldMWKernel(q []complex128, L int) []float64 {
	nf := mwFineLen(L)
	last := 2*L - 2
	out := make([]float64, last+1)

	for k := range last {
		out[k] = real(q[k] + q[nf-1-k])
	}

	out[last] = real(q[last])

	return out
}

// mwFineThetas returns θ'_k = (2k+1)π/(4L-3) for k ≤ 2L-2. The last entry is
// exactly π.
func mwFineThetas(L int) []float64 {
	nf := mwFineLen(L)
	last := 2*L - 2
	out := make([]float64, last+1)

	for k := range last {
		out[k] = math.Pi * float64(2*k+1) / float64(nf)
	}

	out[last] = math.Pi

	return out
}

// Weights returns the colatitude quadrature weights the forward transform
// applies for scheme at band-limit L. DH and GL return one weight per ring;
// MW returns the folded weights of the 2L-1 upsampled colatitudes.
func Weights(scheme Scheme, L int) ([]float64, error) {
	if err := checkGrid("Weights", scheme, L); err != nil {
		return nil, err
	}

	switch scheme {
	case DH:
		n := NTheta(DH, L)
		out := make([]float64, n)

		for t := range out {
			out[t] = DHWeight(Theta(DH, t, L), L)
		}

		return out, nil
	case GL:
		_, w, err := glRule(L)
		return slices.Clone(w), err
	default:
		return MWFineWeights(L)
	}
}

func modIndex(k, n int) int {
	k %= n
	if k < 0 {
		k += n
	}

	return k
}
