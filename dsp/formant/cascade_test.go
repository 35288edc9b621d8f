package formant

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-vowel/internal/testutil"
)

func mustProfile(t *testing.T, sym string) Profile {
	t.Helper()
	p, err := Lookup(sym)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustExcitation(t *testing.T) []float64 {
	t.Helper()
	x, err := Excitation(100, 0.5, 10000)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func TestCascadeMatchesSerialResonators(t *testing.T) {
	p := mustProfile(t, "o")
	x := mustExcitation(t)

	got, err := Cascade(p, x, 10000)
	if err != nil {
		t.Fatal(err)
	}

	want := x
	for _, spec := range p {
		if want, err = Resonate(want, spec, 10000); err != nil {
			t.Fatal(err)
		}
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestCascadeZeroInput(t *testing.T) {
	for _, sym := range Symbols() {
		y, err := Cascade(mustProfile(t, sym), make([]float64, 5000), 10000)
		if err != nil {
			t.Fatal(err)
		}
		if len(y) != 5000 {
			t.Fatalf("%s: len=%d", sym, len(y))
		}
		testutil.RequireAllZero(t, y)
	}
}

func TestCascadeResponseIsProduct(t *testing.T) {
	p := mustProfile(t, "e")
	h, err := CascadeResponse(p, 1234, 10000)
	if err != nil {
		t.Fatal(err)
	}

	want := complex(1, 0)
	for _, spec := range p {
		c, _ := NewResonatorCoefficients(spec, 10000)
		want *= c.Response(1234, 10000)
	}
	if cmplx.Abs(h-want) > 1e-12*cmplx.Abs(want) {
		t.Fatalf("CascadeResponse = %v, want %v", h, want)
	}
}

func TestCascadeInvalidFormant(t *testing.T) {
	p := mustProfile(t, "a")
	p[4] = Spec{Frequency: 6000, Bandwidth: 300}
	if _, err := Cascade(p, make([]float64, 10), 10000); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}

	p = mustProfile(t, "a")
	p[2].Bandwidth = 0
	if _, err := CascadeResponse(p, 1000, 10000); !errors.Is(err, ErrUnstableFilter) {
		t.Fatalf("err = %v, want ErrUnstableFilter", err)
	}
}
