package formant

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
)

// ResonatorCoefficients are the derived terms of the two-pole resonator
//
//	y[n] = x[n] - A1 y[n-1] - A2 y[n-2]
//
// with R = exp(-pi*bw/fs), Omega = 2*pi*f/fs, A1 = -2 R cos(Omega) and
// A2 = R^2. Synthesis, calibration and analysis all derive them through
// NewResonatorCoefficients.
type ResonatorCoefficients struct {
	R     float64
	Omega float64
	A1    float64
	A2    float64
}

// NewResonatorCoefficients derives resonator coefficients for spec at
// sampleRate. A pole radius >= 1, which includes every non-positive
// bandwidth, yields ErrUnstableFilter.
func NewResonatorCoefficients(spec Spec, sampleRate float64) (ResonatorCoefficients, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return ResonatorCoefficients{}, err
	}
	if !(spec.Frequency > 0 && spec.Frequency < sampleRate/2) {
		return ResonatorCoefficients{}, fmt.Errorf("%w: resonator frequency %g Hz outside (0, %g)",
			ErrInvalidParameter, spec.Frequency, sampleRate/2)
	}
	if math.IsNaN(spec.Bandwidth) {
		return ResonatorCoefficients{}, fmt.Errorf("%w: resonator bandwidth is NaN", ErrInvalidParameter)
	}

	r := math.Exp(-math.Pi * spec.Bandwidth / sampleRate)
	if r >= 1 {
		return ResonatorCoefficients{}, fmt.Errorf("%w: pole radius %g for bandwidth %g Hz", ErrUnstableFilter, r, spec.Bandwidth)
	}
	if r <= 0 {
		return ResonatorCoefficients{}, fmt.Errorf("%w: pole radius underflows for bandwidth %g Hz", ErrInvalidParameter, spec.Bandwidth)
	}

	w := 2 * math.Pi * spec.Frequency / sampleRate
	return ResonatorCoefficients{
		R:     r,
		Omega: w,
		A1:    -2 * r * math.Cos(w),
		A2:    r * r,
	}, nil
}

// Filter returns the resonator as a linear filter with b = [1] and
// a = [1, A1, A2].
func (c ResonatorCoefficients) Filter() iir.Coefficients {
	return iir.Coefficients{
		B: []float64{1, 0, 0},
		A: []float64{1, c.A1, c.A2},
	}
}

// Response returns the complex frequency response at freqHz.
func (c ResonatorCoefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.Filter().Response(freqHz, sampleRate)
}

// Resonate filters input through the resonator for spec with zero initial
// state. The output has the same length as input.
func Resonate(input []float64, spec Spec, sampleRate float64) ([]float64, error) {
	c, err := NewResonatorCoefficients(spec, sampleRate)
	if err != nil {
		return nil, err
	}
	return iir.Apply(c.Filter(), input)
}

func resonators(p Profile, sampleRate float64) ([NumFormants]ResonatorCoefficients, error) {
	var out [NumFormants]ResonatorCoefficients
	for i, spec := range p {
		c, err := NewResonatorCoefficients(spec, sampleRate)
		if err != nil {
			return out, fmt.Errorf("formant: F%d: %w", i+1, err)
		}
		out[i] = c
	}
	return out, nil
}
