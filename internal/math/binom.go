package math

import "math"

// LogBinomial returns ln C(n, k) for 0 <= k <= n.
// It stays finite for arguments far beyond the factorial overflow range.
func LogBinomial(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}

	if k == 0 || k == n {
		return 0
	}

	ln, _ := math.Lgamma(float64(n + 1))
	lk, _ := math.Lgamma(float64(k + 1))
	lnk, _ := math.Lgamma(float64(n - k + 1))

	return ln - lk - lnk
}
