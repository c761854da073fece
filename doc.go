// Package algosht implements forward and inverse spin-weighted spherical
// harmonic transforms.
//
// A function f(θ, φ) of spin s with band-limit L is expanded as
//
//	f(θ, φ) = Σ_{el<L} Σ_{|m|≤el} f_elm sY_elm(θ, φ)
//
// The coefficients are stored in a flat slice of L² entries in the order
// given by ToIndex. Samples live on the grid of one of three sampling
// theorems:
//
//   - DH, Driscoll–Healy: 2L equiangular rings avoiding the poles.
//   - MW, McEwen–Wiaux: L-1 rings plus the south pole.
//   - GL, Gauss–Legendre: L rings at the Gauss–Legendre nodes.
//
// Every scheme uses 2L-1 equiangular longitudes.
//
// # Usage
//
// For repeated transforms build a Plan once:
//
//	plan, err := algosht.NewPlan(algosht.MW, 64, algosht.PlanOptions{})
//	if err != nil {
//	    return err
//	}
//	flm, err := plan.Forward(samples, 0)
//
// The package-level Forward, Inverse, ForwardReal and InverseReal build a
// plan per call.
//
// # FFT backend
//
// Azimuthal and colatitude FFTs use github.com/cwbudde/algo-fft. Another
// implementation can be installed with RegisterBackend or per plan through
// PlanOptions.Backend; ReferenceBackend evaluates direct DFTs for testing.
//
// # Errors
//
// All errors are *Error values that match one of ErrArgumentInvalid,
// ErrAllocationFailure, ErrPreconditionViolation or ErrInternal with
// errors.Is, and wrap a specific cause such as ErrSpinReality.
package algosht
