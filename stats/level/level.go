// Package level summarizes the amplitude of rendered signals.
package level

import (
	"math"

	"github.com/cwbudde/algo-vowel/dsp/core"
)

// Summary holds amplitude statistics of one signal.
//
//nolint:revive
type Summary struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS
	CrestFactor_dB float64
	ZeroCrossings  int
}

// Summarize computes all statistics in a single pass. The DC term uses
// Kahan summation.
func Summarize(signal []float64) Summary {
	n := len(signal)
	if n == 0 {
		return Summary{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	var (
		sum, c        float64
		sumSq         float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)
	for i, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak, peakPos = a, i
		}
		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest, crestdB float64
	if rms > 0 {
		crest = peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Summary{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           peak,
		PeakPos:        peakPos,
		Peak_dB:        core.LinearToDB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		ZeroCrossings:  zeroCrossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// RatioDB returns 20*log10(RMS(a)/RMS(b)), the level difference between
// two signals. Returns NaN when b is silent.
func RatioDB(a, b []float64) float64 {
	rb := RMS(b)
	if rb == 0 {
		return math.NaN()
	}
	return core.LinearToDB(RMS(a) / rb)
}
