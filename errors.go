package algosht

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the engine matches exactly one of
// these through errors.Is.
var (
	// ErrArgumentInvalid covers parameter combinations the engine refuses,
	// such as a non-zero spin on the real path or an unknown scheme.
	ErrArgumentInvalid = errors.New("algosht: invalid argument")

	// ErrAllocationFailure is returned when the buffers for a band-limit
	// cannot be sized on this platform.
	ErrAllocationFailure = errors.New("algosht: allocation failure")

	// ErrPreconditionViolation is returned for malformed inputs: array
	// lengths that do not match the plan, out-of-range harmonic indices.
	ErrPreconditionViolation = errors.New("algosht: precondition violation")

	// ErrInternal wraps failures of the FFT backend.
	ErrInternal = errors.New("algosht: internal error")
)

// Sentinel causes wrapped inside *Error.
var (
	// ErrBandLimit is returned when L < 1.
	ErrBandLimit = errors.New("algosht: band-limit must be positive")

	// ErrUnknownScheme is returned for a Scheme outside {DH, MW, GL}.
	ErrUnknownScheme = errors.New("algosht: unknown sampling scheme")

	// ErrSpinRange is returned when |spin| >= L.
	ErrSpinRange = errors.New("algosht: spin out of range")

	// ErrSpinReality is returned when a real transform is requested with
	// non-zero spin.
	ErrSpinReality = errors.New("algosht: real transforms require spin 0")

	// ErrLengthMismatch is returned when sample or coefficient slices do not
	// have the length the plan expects.
	ErrLengthMismatch = errors.New("algosht: slice length mismatch")

	// ErrNilSlice is returned when a required slice is nil.
	ErrNilSlice = errors.New("algosht: nil slice")

	// ErrIndexRange is returned for (el, m) pairs outside the band-limit.
	ErrIndexRange = errors.New("algosht: harmonic index out of range")

	// ErrInvalidInterval is returned by GaussLegendre for empty intervals or
	// non-positive node counts.
	ErrInvalidInterval = errors.New("algosht: invalid quadrature interval")

	// ErrSizeOverflow is returned when L² or the sample count overflows int.
	ErrSizeOverflow = errors.New("algosht: buffer size overflows int")
)

// ErrorKind classifies an *Error.
type ErrorKind uint8

const (
	KindArgumentInvalid ErrorKind = iota + 1
	KindAllocationFailure
	KindPreconditionViolation
	KindInternal
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindArgumentInvalid:
		return "argument-invalid"
	case KindAllocationFailure:
		return "allocation-failure"
	case KindPreconditionViolation:
		return "precondition-violation"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindArgumentInvalid:
		return ErrArgumentInvalid
	case KindAllocationFailure:
		return ErrAllocationFailure
	case KindPreconditionViolation:
		return ErrPreconditionViolation
	default:
		return ErrInternal
	}
}

// Error is the categorized error type returned by the engine. Op names the
// component or entry point that rejected the call, Err the specific cause
// and Detail the offending values.
type Error struct {
	Kind   ErrorKind
	Op     string
	Err    error
	Detail string
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg + " [" + e.Kind.String() + "]"
}

// Unwrap returns the specific cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the category sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newError(kind ErrorKind, op string, err error, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Op:     op,
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the category of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
