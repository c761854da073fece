package algosht

import m "github.com/cwbudde/algo-sht/internal/math"

// ToIndex maps the harmonic pair (el, m) to its offset in a packed
// coefficient array: el² + el + m. The caller guarantees 0 <= el and
// -el <= m <= el; IndexOf is the checked variant.
func ToIndex(el, mm int) int {
	return el*el + el + mm
}

// FromIndex is the exact inverse of ToIndex for ind >= 0.
func FromIndex(ind int) (el, mm int) {
	el = m.ISqrt(ind)
	mm = ind - el*el - el

	return el, mm
}

// IndexOf is ToIndex with range checks against band-limit L.
func IndexOf(el, mm, L int) (int, error) {
	if el < 0 || el >= L || mm < -el || mm > el {
		return 0, newError(KindPreconditionViolation, "IndexOf", ErrIndexRange, "el=%d m=%d L=%d", el, mm, L)
	}

	return ToIndex(el, mm), nil
}

// NumCoefficients returns L², the length of a coefficient array.
func NumCoefficients(L int) int {
	return L * L
}
