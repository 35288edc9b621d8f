package formant

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vowel/dsp/core"
	"github.com/cwbudde/algo-vowel/dsp/filter/design"
	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
	"github.com/cwbudde/algo-vowel/dsp/signal"
)

// Excitation returns the glottal source: a unit impulse every
// floor(sampleRate/f0) samples starting at sample 0, floor(duration*sampleRate)
// samples long, smoothed by a first-order Butterworth low-pass at f0.
func Excitation(f0, duration, sampleRate float64) ([]float64, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if !(f0 > 0 && f0 < sampleRate/2) {
		return nil, fmt.Errorf("%w: fundamental %g Hz outside (0, %g)", ErrInvalidParameter, f0, sampleRate/2)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration %g s", ErrInvalidParameter, duration)
	}
	if duration*sampleRate >= math.MaxInt {
		return nil, fmt.Errorf("%w: duration %g s is too long at %g Hz", ErrInvalidParameter, duration, sampleRate)
	}
	n := core.SampleCount(duration, sampleRate)
	if n == 0 {
		return nil, fmt.Errorf("%w: duration %g s is shorter than one sample", ErrInvalidParameter, duration)
	}

	pulses, err := signal.NewGenerator(core.WithSampleRate(sampleRate)).PulseTrain(f0, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	lp, err := design.ButterworthLowpass1(f0, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return iir.Apply(lp, pulses)
}
