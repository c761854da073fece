// Package wigner evaluates reduced Wigner-d functions d^l_{mn}(θ) and the
// normalized spin-weighted basis built from them.
//
// All degrees for one (θ, m, n) triple are produced together by an upward
// three-term recursion in l, seeded at l0 = max(|m|, |n|) from the closed
// single-term form. Values are carried as mantissa plus logarithmic scale, so
// the recursion neither overflows nor loses the tiny seeds that appear for
// large orders near the poles.
package wigner
