package formant

import (
	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
)

// Cascade runs excitation through all five resonators of p in profile
// order.
func Cascade(p Profile, excitation []float64, sampleRate float64) ([]float64, error) {
	res, err := resonators(p, sampleRate)
	if err != nil {
		return nil, err
	}

	stages := make([]iir.Coefficients, len(res))
	for i, c := range res {
		stages[i] = c.Filter()
	}
	return iir.Cascade(stages, excitation)
}

// CascadeResponse returns the cascade transfer function of p at freqHz.
func CascadeResponse(p Profile, freqHz, sampleRate float64) (complex128, error) {
	res, err := resonators(p, sampleRate)
	if err != nil {
		return 0, err
	}
	return cascadeResponse(&res, freqHz, sampleRate), nil
}

func cascadeResponse(res *[NumFormants]ResonatorCoefficients, freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, c := range res {
		h *= c.Response(freqHz, sampleRate)
	}
	return h
}
