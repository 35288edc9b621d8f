package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vowel/dsp/core"
)

// ErrInvalidArgument is returned for out-of-range generator parameters.
var ErrInvalidArgument = errors.New("signal: invalid argument")

// Generator creates deterministic excitation signals from a shared
// configuration.
type Generator struct {
	cfg core.SynthesisConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.Option) *Generator {
	return &Generator{cfg: core.ApplyOptions(opts...)}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.SynthesisConfig {
	return g.cfg
}

// Period returns the pulse spacing floor(sampleRate/freqHz) in samples.
func (g *Generator) Period(freqHz float64) (int, error) {
	if freqHz <= 0 || freqHz >= g.cfg.SampleRate/2 {
		return 0, fmt.Errorf("%w: pulse frequency %g Hz outside (0, %g)", ErrInvalidArgument, freqHz, g.cfg.SampleRate/2)
	}
	return int(math.Floor(g.cfg.SampleRate / freqHz)), nil
}

// PulseTrain generates unit impulses every Period(freqHz) samples,
// starting at sample 0.
func (g *Generator) PulseTrain(freqHz float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: pulse train samples must be > 0: %d", ErrInvalidArgument, samples)
	}
	period, err := g.Period(freqHz)
	if err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	for i := 0; i < samples; i += period {
		out[i] = 1
	}
	return out, nil
}

// PeakAbs returns max |data[i]|, or 0 for an empty slice.
func PeakAbs(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs
}

// Normalize scales data to target peak amplitude and returns a new slice.
// An all-zero input yields an all-zero output.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("%w: normalize target peak must be >= 0: %f", ErrInvalidArgument, targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: normalize input must not be empty", ErrInvalidArgument)
	}

	out := make([]float64, len(data))
	maxAbs := PeakAbs(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// ToPCM16 normalizes data to its peak absolute value and scales it to the
// signed 16-bit range [-32767, 32767], truncating toward zero. Samples at
// the peak map to exactly ±32767.
func ToPCM16(data []float64) ([]int16, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: pcm input must not be empty", ErrInvalidArgument)
	}

	out := make([]int16, len(data))
	maxAbs := PeakAbs(data)
	if maxAbs == 0 {
		return out, nil
	}

	for i, v := range data {
		switch {
		case v == maxAbs:
			out[i] = math.MaxInt16
		case v == -maxAbs:
			out[i] = -math.MaxInt16
		default:
			out[i] = int16(v / maxAbs * math.MaxInt16)
		}
	}
	return out, nil
}
