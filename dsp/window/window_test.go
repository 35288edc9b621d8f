package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vowel/internal/testutil"
)

func TestGenerateFinite(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			testutil.RequireFinite(t, w)
		})
	}
}

func TestGenerateEndpoints(t *testing.T) {
	tests := []struct {
		typ  Type
		edge float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 0},
		{TypeHamming, 0.08},
		{TypeBlackman, 0},
	}

	for _, tt := range tests {
		w := Generate(tt.typ, 33)
		if math.Abs(w[0]-tt.edge) > 1e-12 || math.Abs(w[32]-tt.edge) > 1e-12 {
			t.Fatalf("%s edges = %v, %v, want %v", tt.typ, w[0], w[32], tt.edge)
		}
		if math.Abs(w[16]-1) > 1e-12 {
			t.Fatalf("%s center = %v, want 1", tt.typ, w[16])
		}
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if a[15] != 0 {
		t.Fatalf("symmetric last = %v, want 0", a[15])
	}
	if b[15] == 0 {
		t.Fatal("periodic last coefficient should be non-zero")
	}
	if math.Abs(b[8]-1) > 1e-12 {
		t.Fatalf("periodic center = %v, want 1", b[8])
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if _, err := Hann(0); err == nil {
		t.Fatal("Hann(0) should fail")
	}
	if _, err := Hamming(-1); err == nil {
		t.Fatal("Hamming(-1) should fail")
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 1, 2, 1, 0}, 1e-12)
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{0.5, 1, 6}, 0)

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCoherentGain(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())
	cg, err := CoherentGain(w)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cg-0.5) > 1e-12 {
		t.Fatalf("Hann coherent gain = %v, want 0.5", cg)
	}

	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected empty error")
	}
	if _, err := CoherentGain([]float64{1, -1}); err == nil {
		t.Fatal("expected zero gain error")
	}
}
