package wigner

import (
	"math"

	m "github.com/cwbudde/algo-sht/internal/math"
)

const (
	// rescaleThreshold bounds the mantissa of the running recursion pair.
	rescaleThreshold = 1e100
	rescaleInverse   = 1e-100
	logRescale       = 230.25850929940458 // ln(1e100)
)

// D fills out[l] = d^l_{mm,n}(θ) for l = 0..len(out)-1.
//
// Entries with l < max(|mm|, |n|) are zero. out must not alias other state;
// its previous contents are overwritten.
func D(a Angle, mm, n int, out []float64) {
	clear(out)

	l0 := max(m.Abs(mm), m.Abs(n))
	if l0 >= len(out) {
		return
	}

	switch {
	case a.north:
		if mm == n {
			for l := l0; l < len(out); l++ {
				out[l] = 1
			}
		}

		return
	case a.south:
		// d^l_{m,n}(π) = (-1)^(l+m) δ_{m,-n}
		if mm == -n {
			for l := l0; l < len(out); l++ {
				out[l] = m.MinusOnePow(l + mm)
			}
		}

		return
	}

	sign, scale := seed(a, mm, n, l0)
	recurse(a, mm, n, l0, sign, scale, out)
}

// seed returns the sign and natural log of |d^{l0}_{mm,n}(θ)|.
//
// With c = cos(θ/2) and s = sin(θ/2) the single surviving term of the Wigner
// sum is
//
//	l0 =  mm:  (-1)^(l0-n) sqrt(C(2l0, l0+n)) c^(l0+n) s^(l0-n)
//	l0 = -mm:              sqrt(C(2l0, l0+n)) c^(l0-n) s^(l0+n)
//	l0 =  n:               sqrt(C(2l0, l0+mm)) c^(l0+mm) s^(l0-mm)
//	l0 = -n:   (-1)^(l0+mm) sqrt(C(2l0, l0+mm)) c^(l0-mm) s^(l0+mm)
func seed(a Angle, mm, n, l0 int) (float64, float64) {
	var (
		sign         = 1.0
		k, pc, ps    int
		logMagnitude float64
	)

	switch {
	case l0 == mm:
		sign = m.MinusOnePow(l0 - n)
		k, pc, ps = n, l0+n, l0-n
	case l0 == -mm:
		k, pc, ps = n, l0-n, l0+n
	case l0 == n:
		k, pc, ps = mm, l0+mm, l0-mm
	default:
		sign = m.MinusOnePow(l0 + mm)
		k, pc, ps = mm, l0-mm, l0+mm
	}

	logMagnitude = 0.5 * m.LogBinomial(2*l0, l0+k)
	if pc > 0 {
		logMagnitude += float64(pc) * a.logCosHalf
	}

	if ps > 0 {
		logMagnitude += float64(ps) * a.logSinHalf
	}

	return sign, logMagnitude
}

// recurse runs
//
//	l sqrt(((l+1)²-m²)((l+1)²-n²)) d^{l+1} =
//	    (2l+1)(l(l+1)cosθ - mn) d^l - (l+1) sqrt((l²-m²)(l²-n²)) d^{l-1}
//
// upwards from the seed, renormalizing the (d^{l-1}, d^l) pair whenever the
// mantissa leaves [1e-100, 1e100].
func recurse(a Angle, mm, n, l0 int, sign, scale float64, out []float64) {
	var (
		prev = 0.0
		cur  = sign
		mf   = float64(mm)
		nf   = float64(n)
		mn   = mf * nf
		m2   = mf * mf
		n2   = nf * nf
	)

	out[l0] = cur * math.Exp(scale)

	for l := l0; l < len(out)-1; l++ {
		var next float64

		if l == 0 {
			// Only reachable for mm = n = 0: d^1_00 = cos θ.
			next = a.cos * cur
		} else {
			lf := float64(l)
			lp := lf + 1
			alpha := (2*lf + 1) * (lf*lp*a.cos - mn)
			beta := lp * math.Sqrt((lf*lf-m2)*(lf*lf-n2))
			den := lf * math.Sqrt((lp*lp-m2)*(lp*lp-n2))
			next = (alpha*cur - beta*prev) / den
		}

		prev, cur = cur, next

		if math.Abs(cur) > rescaleThreshold {
			prev *= rescaleInverse
			cur *= rescaleInverse
			scale += logRescale
		} else if cur != 0 && math.Abs(cur) < rescaleInverse && math.Abs(prev) < rescaleInverse {
			prev *= rescaleThreshold
			cur *= rescaleThreshold
			scale -= logRescale
		}

		out[l+1] = cur * math.Exp(scale)
	}
}
