package math

import "math"

// ISqrt returns floor(sqrt(n)) for n >= 0.
//
// The float64 estimate is corrected with integer comparisons so exact squares
// and their neighbours never round to the wrong side.
func ISqrt(n int) int {
	if n <= 0 {
		return 0
	}

	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}

	for (r+1)*(r+1) <= n {
		r++
	}

	return r
}

// MinusOnePow returns (-1)^k for any integer k.
func MinusOnePow(k int) float64 {
	if k&1 == 0 {
		return 1
	}

	return -1
}

// Abs returns |x| for integers.
func Abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
