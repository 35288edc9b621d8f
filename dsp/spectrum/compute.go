package spectrum

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-vowel/dsp/window"
)

// ErrInvalidInput is returned when Compute cannot analyze its input.
var ErrInvalidInput = errors.New("spectrum: invalid input")

// Spectrum is the one-sided spectrum of a real signal.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	// Freqs holds the bin centre frequencies k*fs/FFTSize for k = 0..FFTSize/2.
	Freqs []float64
	// Bins holds the raw FFT output for the same bins.
	Bins []complex128
	// Amplitude holds peak amplitudes corrected for window coherent gain.
	Amplitude []float64
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Compute windows the first fftSize samples of x with a periodic window of
// type win, zero-pads to fftSize and returns the one-sided spectrum.
// fftSize <= 0 selects the next power of two covering len(x).
func Compute(x []float64, sampleRate float64, fftSize int, win window.Type) (Spectrum, error) {
	if len(x) == 0 {
		return Spectrum{}, fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidInput, sampleRate)
	}
	if fftSize <= 0 {
		fftSize = NextPowerOfTwo(len(x))
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return Spectrum{}, fmt.Errorf("%w: fft size must be a power of two >= 2: %d", ErrInvalidInput, fftSize)
	}

	segment := x
	if len(segment) > fftSize {
		segment = segment[:fftSize]
	}

	coeffs := window.Generate(win, len(segment), window.WithPeriodic())
	windowed, err := window.ApplyCoefficients(segment, coeffs)
	if err != nil {
		return Spectrum{}, err
	}
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := fftSize/2 + 1
	s := Spectrum{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Freqs:      make([]float64, half),
		Bins:       out[:half:half],
	}
	for k := range s.Freqs {
		s.Freqs[k] = float64(k) * sampleRate / float64(fftSize)
	}

	s.Amplitude = Magnitude(s.Bins)
	scale := 2 / (float64(len(segment)) * gain)
	for k := range s.Amplitude {
		s.Amplitude[k] *= scale
	}
	return s, nil
}

// BinWidth returns the frequency spacing between bins in Hz.
func (s Spectrum) BinWidth() float64 {
	if s.FFTSize == 0 {
		return 0
	}
	return s.SampleRate / float64(s.FFTSize)
}

// PeakIn returns the index of the largest amplitude with lo <= Freqs[k] <= hi.
// Ties resolve to the lower index. ok is false when no bin falls in range.
func (s Spectrum) PeakIn(lo, hi float64) (index int, ok bool) {
	index = -1
	for k, f := range s.Freqs {
		if f < lo || f > hi {
			continue
		}
		if index < 0 || s.Amplitude[k] > s.Amplitude[index] {
			index = k
		}
	}
	return index, index >= 0
}
