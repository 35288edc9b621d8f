package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(10); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LinearToDB(10) = %v, want 20", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestSampleCount(t *testing.T) {
	tests := []struct {
		name       string
		seconds    float64
		sampleRate float64
		want       int
	}{
		{name: "default", seconds: 0.5, sampleRate: 10000, want: 5000},
		{name: "fractional", seconds: 0.00015, sampleRate: 10000, want: 1},
		{name: "truncates", seconds: 0.123456, sampleRate: 10000, want: 1234},
		{name: "zero", seconds: 0, sampleRate: 10000, want: 0},
		{name: "negative", seconds: -1, sampleRate: 10000, want: 0},
		{name: "nan", seconds: math.NaN(), sampleRate: 10000, want: 0},
		{name: "inf", seconds: math.Inf(1), sampleRate: 10000, want: 0},
		{name: "overflow", seconds: 1e300, sampleRate: 10000, want: 0},
		{name: "just-above-int-range", seconds: 1e15, sampleRate: 1e4, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SampleCount(tt.seconds, tt.sampleRate); got != tt.want {
				t.Fatalf("SampleCount(%v, %v) = %d, want %d", tt.seconds, tt.sampleRate, got, tt.want)
			}
		})
	}
}

func TestRelativeDeviation(t *testing.T) {
	if got := RelativeDeviation(110, 100); !NearlyEqual(got, 10, 1e-12) {
		t.Fatalf("RelativeDeviation(110, 100) = %v, want 10", got)
	}
	if got := RelativeDeviation(1, 0); !math.IsNaN(got) {
		t.Fatalf("RelativeDeviation(1, 0) = %v, want NaN", got)
	}
}
