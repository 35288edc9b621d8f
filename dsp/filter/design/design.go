package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
)

// ErrInvalidFrequency is returned when a design frequency is not inside
// the open interval (0, sampleRate/2) or the sample rate is not positive.
var ErrInvalidFrequency = errors.New("design: invalid frequency")

// bilinearK computes the bilinear transform frequency warping factor
// tan(pi*freq/sampleRate).
func bilinearK(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, fmt.Errorf("%w: %g Hz at %g Hz sample rate", ErrInvalidFrequency, freq, sampleRate)
	}

	return math.Tan(math.Pi * freq / sampleRate), nil
}

// ButterworthLowpass1 designs a first-order Butterworth low-pass with its
// -3 dB point at cutoff:
//
//	H(z) = k/(1+k) * (1 + z^-1) / (1 + (k-1)/(1+k) z^-1),  k = tan(pi*fc/fs)
func ButterworthLowpass1(cutoff, sampleRate float64) (iir.Coefficients, error) {
	k, err := bilinearK(cutoff, sampleRate)
	if err != nil {
		return iir.Coefficients{}, err
	}

	norm := 1 / (1 + k)
	return iir.New(
		[]float64{k * norm, k * norm},
		[]float64{1, (k - 1) * norm},
	)
}

// PreEmphasis designs a single real zero at exp(-2*pi*zeroHz/fs):
//
//	H(z) = 1 - exp(-2*pi*zeroHz/fs) z^-1
func PreEmphasis(zeroHz, sampleRate float64) (iir.Coefficients, error) {
	if sampleRate <= 0 || zeroHz <= 0 || zeroHz >= sampleRate/2 {
		return iir.Coefficients{}, fmt.Errorf("%w: %g Hz at %g Hz sample rate", ErrInvalidFrequency, zeroHz, sampleRate)
	}

	return iir.New(
		[]float64{1, -math.Exp(-2 * math.Pi * zeroHz / sampleRate)},
		[]float64{1, 0},
	)
}

// Allpass1 designs a first-order all-pass whose pole/zero pair is placed
// by the warped frequency freqHz, with t = tan(theta/2), theta = 2*pi*f/fs:
//
//	H(z) = ((1-t) + (1+t) z^-1) / ((1+t) + (1-t) z^-1)
func Allpass1(freqHz, sampleRate float64) (iir.Coefficients, error) {
	t, err := bilinearK(freqHz, sampleRate)
	if err != nil {
		return iir.Coefficients{}, err
	}

	return iir.New(
		[]float64{1 - t, 1 + t},
		[]float64{1 + t, 1 - t},
	)
}

// Differentiator returns the first difference y[n] = x[n] - x[n-1].
func Differentiator() iir.Coefficients {
	return iir.MustNew([]float64{1, -1}, []float64{1, 0})
}
