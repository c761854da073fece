package algosht

import (
	"math"
	"math/cmplx"
)

// ReferenceBackend evaluates every transform as a direct O(n²) DFT. It is
// slow and exists to cross-check the default backend.
type ReferenceBackend struct{}

func (ReferenceBackend) Name() string { return "reference" }

func (ReferenceBackend) NewPlan(n int) (FFTPlan, error) {
	if n < 1 {
		return nil, newError(KindArgumentInvalid, "ReferenceBackend.NewPlan", ErrLengthMismatch, "n=%d", n)
	}

	return newDirectPlan(n), nil
}

func (ReferenceBackend) NewRealPlan(n int) (RealFFTPlan, error) {
	if n < 1 {
		return nil, newError(KindArgumentInvalid, "ReferenceBackend.NewRealPlan", ErrLengthMismatch, "n=%d", n)
	}

	return &directRealPlan{c: newDirectPlan(n)}, nil
}

type directPlan struct {
	n     int
	roots []complex128 // roots[k] = e^{-2πik/n}
}

func newDirectPlan(n int) *directPlan {
	roots := make([]complex128, n)
	for k := range roots {
		roots[k] = cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
	}

	return &directPlan{n: n, roots: roots}
}

func (p *directPlan) Len() int { return p.n }

func (p *directPlan) Forward(dst, src []complex128) error {
	return p.transform(dst, src, false)
}

func (p *directPlan) Inverse(dst, src []complex128) error {
	return p.transform(dst, src, true)
}

func (p *directPlan) transform(dst, src []complex128, inverse bool) error {
	if len(dst) != p.n || len(src) != p.n {
		return newError(KindPreconditionViolation, "directPlan", ErrLengthMismatch, "want %d, got dst=%d src=%d", p.n, len(dst), len(src))
	}

	out := make([]complex128, p.n)

	for k := range out {
		var sum complex128

		for j, v := range src {
			w := p.roots[(j*k)%p.n]
			if inverse {
				w = cmplx.Conj(w)
			}

			sum += v * w
		}

		out[k] = sum
	}

	if inverse {
		scale := complex(1/float64(p.n), 0)
		for k := range out {
			out[k] *= scale
		}
	}

	copy(dst, out)

	return nil
}

type directRealPlan struct {
	c *directPlan
}

func (p *directRealPlan) Len() int { return p.c.n }

func (p *directRealPlan) Forward(dst []complex128, src []float64) error {
	n := p.c.n
	if len(dst) != n/2+1 || len(src) != n {
		return newError(KindPreconditionViolation, "directRealPlan", ErrLengthMismatch, "n=%d dst=%d src=%d", n, len(dst), len(src))
	}

	full := make([]complex128, n)
	for i, v := range src {
		full[i] = complex(v, 0)
	}

	if err := p.c.Forward(full, full); err != nil {
		return err
	}

	copy(dst, full[:n/2+1])

	return nil
}

func (p *directRealPlan) Inverse(dst []float64, src []complex128) error {
	n := p.c.n
	if len(dst) != n || len(src) != n/2+1 {
		return newError(KindPreconditionViolation, "directRealPlan", ErrLengthMismatch, "n=%d dst=%d src=%d", n, len(dst), len(src))
	}

	full := make([]complex128, n)
	copy(full, src)

	for k := 1; k < n-n/2; k++ {
		full[n-k] = cmplx.Conj(src[k])
	}

	if err := p.c.Inverse(full, full); err != nil {
		return err
	}

	for i, v := range full {
		dst[i] = real(v)
	}

	return nil
}
