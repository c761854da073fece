package algosht

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestGridSizes(t *testing.T) {
	t.Parallel()

	type sizes struct{ NTheta, NPhi, Samples int }

	tests := []struct {
		scheme Scheme
		L      int
		want   sizes
	}{
		{DH, 1, sizes{2, 1, 2}},
		{DH, 4, sizes{8, 7, 56}},
		{MW, 1, sizes{0, 1, 0}},
		{MW, 4, sizes{3, 7, 21}},
		{GL, 4, sizes{4, 7, 28}},
		{Scheme(0), 4, sizes{0, 0, 0}},
	}

	for _, tt := range tests {
		got := sizes{NTheta(tt.scheme, tt.L), NPhi(tt.scheme, tt.L), SampleCount(tt.scheme, tt.L)}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s L=%d sizes mismatch (-want +got):\n%s", tt.scheme, tt.L, diff)
		}
	}
}

func TestThetas(t *testing.T) {
	t.Parallel()

	approx := cmpopts.EquateApprox(0, 1e-14)

	dh, err := Thetas(DH, 2)
	if err != nil {
		t.Fatalf("Thetas(DH, 2): %v", err)
	}

	if diff := cmp.Diff([]float64{math.Pi / 8, 3 * math.Pi / 8, 5 * math.Pi / 8, 7 * math.Pi / 8}, dh, approx); diff != "" {
		t.Errorf("DH thetas mismatch (-want +got):\n%s", diff)
	}

	mw, err := Thetas(MW, 3)
	if err != nil {
		t.Fatalf("Thetas(MW, 3): %v", err)
	}

	if diff := cmp.Diff([]float64{math.Pi / 5, 3 * math.Pi / 5}, mw, approx); diff != "" {
		t.Errorf("MW thetas mismatch (-want +got):\n%s", diff)
	}

	if got := Theta(MW, 2, 3); got != math.Pi {
		t.Errorf("Theta(MW, L-1, L) = %v, want π", got)
	}

	for _, scheme := range Schemes() {
		for _, L := range []int{1, 2, 9, 32} {
			thetas, err := Thetas(scheme, L)
			if err != nil {
				t.Fatalf("Thetas(%s, %d): %v", scheme, L, err)
			}

			if len(thetas) != NTheta(scheme, L) {
				t.Fatalf("Thetas(%s, %d) has %d entries, want %d", scheme, L, len(thetas), NTheta(scheme, L))
			}

			prev := 0.0
			for i, theta := range thetas {
				if theta <= prev || theta >= math.Pi {
					t.Fatalf("%s L=%d: theta[%d] = %v not increasing inside (0, π)", scheme, L, i, theta)
				}

				prev = theta
			}
		}
	}
}

func TestGLThetaMatchesThetas(t *testing.T) {
	t.Parallel()

	thetas, err := Thetas(GL, 6)
	if err != nil {
		t.Fatalf("Thetas(GL, 6): %v", err)
	}

	for i, want := range thetas {
		if got := Theta(GL, i, 6); got != want {
			t.Errorf("Theta(GL, %d, 6) = %v, want %v", i, got, want)
		}
	}

	if got := Theta(GL, 6, 6); !math.IsNaN(got) {
		t.Errorf("Theta(GL, 6, 6) = %v, want NaN", got)
	}
}

func TestGLRuleShared(t *testing.T) {
	t.Parallel()

	const L = 7

	first, err := Thetas(GL, L)
	if err != nil {
		t.Fatalf("Thetas(GL, %d): %v", L, err)
	}

	want := Theta(GL, 3, L)
	first[3] = -1

	w, err := Weights(GL, L)
	if err != nil {
		t.Fatalf("Weights(GL, %d): %v", L, err)
	}

	w[0] = -1

	if got := Theta(GL, 3, L); got != want {
		t.Errorf("Theta(GL, 3, %d) = %v after caller edit, want %v", L, got, want)
	}

	again, err := Weights(GL, L)
	if err != nil {
		t.Fatalf("Weights(GL, %d): %v", L, err)
	}

	if again[0] <= 0 {
		t.Errorf("Weights(GL, %d)[0] = %v after caller edit, want positive", L, again[0])
	}

	plan, err := NewPlan(GL, L, PlanOptions{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	if diff := cmp.Diff(again, plan.Weights()); diff != "" {
		t.Errorf("plan weights differ from Weights (-want +got):\n%s", diff)
	}
}

func TestPhis(t *testing.T) {
	t.Parallel()

	phis, err := Phis(MW, 3)
	if err != nil {
		t.Fatalf("Phis: %v", err)
	}

	want := []float64{0, 2 * math.Pi / 5, 4 * math.Pi / 5, 6 * math.Pi / 5, 8 * math.Pi / 5}
	if diff := cmp.Diff(want, phis, cmpopts.EquateApprox(0, 1e-14)); diff != "" {
		t.Errorf("Phis mismatch (-want +got):\n%s", diff)
	}
}

func TestGridErrors(t *testing.T) {
	t.Parallel()

	if _, err := Thetas(Scheme(42), 4); !errors.Is(err, ErrArgumentInvalid) || !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Thetas(unknown) error = %v", err)
	}

	if _, err := Phis(DH, 0); !errors.Is(err, ErrArgumentInvalid) || !errors.Is(err, ErrBandLimit) {
		t.Errorf("Phis(L=0) error = %v", err)
	}
}

func TestParseScheme(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		want Scheme
	}{
		{"DH", DH}, {"mw", MW}, {" gl ", GL},
	} {
		got, err := ParseScheme(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseScheme(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}

		if got.String() != tt.want.String() {
			t.Errorf("String round trip: %q", got.String())
		}
	}

	if _, err := ParseScheme("HEALPix"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("ParseScheme(HEALPix) error = %v", err)
	}
}
