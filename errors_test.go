package algosht

import (
	"errors"
	"strings"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      Request
		kind     error
		cause    error
		wantKind ErrorKind
	}{
		{"ok", Request{Scheme: MW, L: 4, Spin: 3}, nil, nil, 0},
		{"real spin", Request{Scheme: DH, L: 8, Spin: 2, Real: true}, ErrArgumentInvalid, ErrSpinReality, KindArgumentInvalid},
		{"spin range", Request{Scheme: GL, L: 2, Spin: -2}, ErrArgumentInvalid, ErrSpinRange, KindArgumentInvalid},
		{"band-limit", Request{Scheme: DH, L: 0}, ErrArgumentInvalid, ErrBandLimit, KindArgumentInvalid},
		{"scheme", Request{Scheme: 9, L: 4}, ErrArgumentInvalid, ErrUnknownScheme, KindArgumentInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.kind == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.kind) || !errors.Is(err, tt.cause) {
				t.Fatalf("Validate() = %v, want %v wrapping %v", err, tt.kind, tt.cause)
			}

			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf = %v, want %v", got, tt.wantKind)
			}
		})
	}
}

func TestRealSpinRejectedBeforeAllocation(t *testing.T) {
	t.Parallel()

	// A band-limit this large would fail allocation; the spin check must
	// come first.
	err := Request{Scheme: MW, L: 1 << 40, Spin: 2, Real: true}.Validate()
	if !errors.Is(err, ErrSpinReality) {
		t.Fatalf("Validate() = %v, want ErrSpinReality", err)
	}
}

func TestErrorCategories(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan(DH, 4, PlanOptions{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	_, err = plan.Forward(&Samples{Data: make([]complex128, 3)}, 0)
	if !errors.Is(err, ErrPreconditionViolation) || !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short samples: %v", err)
	}

	if errors.Is(err, ErrArgumentInvalid) {
		t.Errorf("precondition error also matches argument-invalid: %v", err)
	}

	_, err = plan.Forward(nil, 0)
	if !errors.Is(err, ErrPreconditionViolation) || !errors.Is(err, ErrNilSlice) {
		t.Errorf("nil samples: %v", err)
	}

	_, err = plan.InverseReal(make([]complex128, 15))
	if !errors.Is(err, ErrPreconditionViolation) {
		t.Errorf("short coefficients: %v", err)
	}

	_, err = plan.Inverse(make([]complex128, 16), 4)
	if !errors.Is(err, ErrArgumentInvalid) || !errors.Is(err, ErrSpinRange) {
		t.Errorf("spin 4 at L=4: %v", err)
	}

	_, err = NewPlan(DH, -3, PlanOptions{})
	if !errors.Is(err, ErrBandLimit) {
		t.Errorf("NewPlan(L=-3): %v", err)
	}

	_, err = ForwardReal(&RealSamples{}, 4, Scheme(0))
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("ForwardReal(unknown scheme): %v", err)
	}
}

func TestAllocationOverflow(t *testing.T) {
	t.Parallel()

	_, err := NewPlan(DH, 1<<62, PlanOptions{})
	if !errors.Is(err, ErrAllocationFailure) || !errors.Is(err, ErrSizeOverflow) {
		t.Errorf("NewPlan(huge L) = %v, want allocation failure", err)
	}

	_, err = NewCoefficients(1 << 40)
	if !errors.Is(err, ErrAllocationFailure) {
		t.Errorf("NewCoefficients(huge L) = %v, want allocation failure", err)
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := Request{Scheme: DH, L: 8, Spin: 2, Real: true}.Validate()

	msg := err.Error()
	for _, want := range []string{"Request", "spin 0", "spin=2", "argument-invalid"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}
