package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vowel/internal/testutil"
)

const tolerance = 1e-10

func TestSummarizeSine(t *testing.T) {
	x := testutil.DeterministicSine(100, 10000, 0.5, 10000)
	s := Summarize(x)

	if s.Length != len(x) {
		t.Fatalf("Length = %d", s.Length)
	}
	if math.Abs(s.RMS-0.5/math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS = %v, want %v", s.RMS, 0.5/math.Sqrt2)
	}
	if math.Abs(s.Peak-0.5) > 1e-9 || s.PeakPos != 25 {
		t.Fatalf("Peak = %v at %d", s.Peak, s.PeakPos)
	}
	if math.Abs(s.CrestFactor-math.Sqrt2) > 1e-6 {
		t.Fatalf("CrestFactor = %v, want sqrt2", s.CrestFactor)
	}
	if math.Abs(s.DC) > 1e-12 {
		t.Fatalf("DC = %v", s.DC)
	}
}

func TestSummarizeSquare(t *testing.T) {
	s := Summarize([]float64{1, -1, 1, -1})
	if s.ZeroCrossings != 3 || math.Abs(s.RMS-1) > tolerance || s.RMS_dB != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Peak_dB != 0 || s.CrestFactor_dB != 0 {
		t.Fatalf("unexpected dB values %+v", s)
	}
}

func TestSummarizeSilence(t *testing.T) {
	for _, x := range [][]float64{nil, make([]float64, 8)} {
		s := Summarize(x)
		if !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
			t.Fatalf("silence dB = %v %v", s.RMS_dB, s.Peak_dB)
		}
		if s.CrestFactor != 0 {
			t.Fatalf("CrestFactor = %v", s.CrestFactor)
		}
	}
}

func TestRatioDB(t *testing.T) {
	a := []float64{2, -2}
	b := []float64{1, -1}
	if got := RatioDB(a, b); math.Abs(got-20*math.Log10(2)) > tolerance {
		t.Fatalf("RatioDB = %v", got)
	}
	if !math.IsNaN(RatioDB(a, []float64{0, 0})) {
		t.Fatal("expected NaN for silent reference")
	}
}
