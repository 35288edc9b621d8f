package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vowel/internal/polyroot"
)

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z := cmplx.Exp(complex(0, -w)) // z^-1 on the unit circle
	return evalPoly(c.B, z) / evalPoly(c.A, z)
}

// Magnitude returns |H(f)|.
func (c Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freqHz, sampleRate))
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(c.Magnitude(freqHz, sampleRate))
}

// Phase returns the phase response in radians at the given frequency.
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Poles returns the z-plane roots of the denominator
// A[0] + A[1] z^-1 + ... + A[N] z^-N.
func (c Coefficients) Poles() ([]complex128, error) {
	if len(c.A) < 2 {
		return nil, nil
	}
	return polyroot.Roots(c.A)
}

// Stable reports whether every pole lies strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	if len(c.A) == 0 || c.A[0] == 0 {
		return false
	}
	poles, err := c.Poles()
	if err != nil {
		return false
	}
	for _, p := range poles {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}

// FrequencyGrid returns n uniformly spaced frequencies f_k = k*fs/(2n),
// k = 0..n-1, covering [0, fs/2) with the Nyquist frequency excluded.
func FrequencyGrid(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	freqs := make([]float64, n)
	step := sampleRate / (2 * float64(n))
	for k := range freqs {
		freqs[k] = float64(k) * step
	}
	return freqs
}

// evalPoly evaluates p[0] + p[1] z + p[2] z^2 + ... with Horner's method,
// where z stands for z^-1.
func evalPoly(p []float64, z complex128) complex128 {
	var v complex128
	for i := len(p) - 1; i >= 0; i-- {
		v = v*z + complex(p[i], 0)
	}
	return v
}
