package peak

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vowel/dsp/core"
	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
	"github.com/cwbudde/algo-vowel/dsp/formant"
	"github.com/cwbudde/algo-vowel/dsp/spectrum"
	"github.com/cwbudde/algo-vowel/dsp/window"
)

// ErrInvalidParameter is returned for unusable analyzer settings, including
// a search window that contains no grid sample.
var ErrInvalidParameter = errors.New("peak: invalid parameter")

// floorDB bounds magnitudes in MagnitudesDB.
const floorDB = -200.0

// Response holds the cascade and parallel transfer functions of a vowel
// sampled on iir.FrequencyGrid.
type Response struct {
	SampleRate float64
	Freqs      []float64
	Cascade    []complex128
	Parallel   []complex128
	Gains      formant.GainTable
}

// Deviation compares the theoretical and actual peak of one formant.
type Deviation struct {
	Formant int     // 1-based formant number
	Theory  float64 // configured centre frequency in Hz
	// Cascade and Parallel are the actual peak frequencies in Hz.
	Cascade  float64
	Parallel float64
	// CascadeDeviation and ParallelDeviation are (actual-theory)/theory*100.
	CascadeDeviation  float64
	ParallelDeviation float64
}

// SignalPeak is the strongest spectrum bin near one formant of a rendered
// signal.
type SignalPeak struct {
	Formant   int
	Theory    float64
	Frequency float64
	Amplitude float64
	Deviation float64
}

// Analyzer evaluates formant peak accuracy.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with defaults of 1024 grid points and a
// 200 Hz search window.
func NewAnalyzer(opts ...Option) *Analyzer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Responses calibrates p and samples both models on the analyzer grid.
func (a *Analyzer) Responses(p formant.Profile, sampleRate float64) (Response, error) {
	gains, err := formant.Calibrate(p, sampleRate,
		formant.WithResolution(a.cfg.Resolution),
		formant.WithRefinement(a.cfg.Refinement),
	)
	if err != nil {
		return Response{}, fmt.Errorf("peak: %w", err)
	}

	freqs := iir.FrequencyGrid(a.cfg.Resolution, sampleRate)
	r := Response{
		SampleRate: sampleRate,
		Freqs:      freqs,
		Cascade:    make([]complex128, len(freqs)),
		Parallel:   make([]complex128, len(freqs)),
		Gains:      gains,
	}
	for k, f := range freqs {
		if r.Cascade[k], err = formant.CascadeResponse(p, f, sampleRate); err != nil {
			return Response{}, fmt.Errorf("peak: %w", err)
		}
		if r.Parallel[k], err = formant.ParallelResponse(p, gains, f, sampleRate); err != nil {
			return Response{}, fmt.Errorf("peak: %w", err)
		}
	}
	return r, nil
}

// ComparePeaks locates the cascade and parallel peaks within
// [F-w, F+w] of each of the first three formants, where w is the search
// window. Ties resolve to the lower frequency.
func (a *Analyzer) ComparePeaks(p formant.Profile, sampleRate float64) ([]Deviation, error) {
	if !(a.cfg.SearchWindow > 0) {
		return nil, fmt.Errorf("%w: search window %g Hz", ErrInvalidParameter, a.cfg.SearchWindow)
	}

	r, err := a.Responses(p, sampleRate)
	if err != nil {
		return nil, err
	}
	casc, par := r.Magnitudes()

	out := make([]Deviation, formant.NumBranches)
	for i := range out {
		theory := p[i].Frequency
		lo, hi := theory-a.cfg.SearchWindow, theory+a.cfg.SearchWindow

		kc, ok := ArgMaxIn(r.Freqs, casc, lo, hi)
		if !ok {
			return nil, fmt.Errorf("%w: no grid sample within %g Hz of F%d (%g Hz)",
				ErrInvalidParameter, a.cfg.SearchWindow, i+1, theory)
		}
		kp, _ := ArgMaxIn(r.Freqs, par, lo, hi)

		out[i] = Deviation{
			Formant:           i + 1,
			Theory:            theory,
			Cascade:           r.Freqs[kc],
			Parallel:          r.Freqs[kp],
			CascadeDeviation:  core.RelativeDeviation(r.Freqs[kc], theory),
			ParallelDeviation: core.RelativeDeviation(r.Freqs[kp], theory),
		}
	}
	return out, nil
}

// MeasureSignal finds the strongest Hann-windowed FFT bin within the search
// window of each of the first three formants of a rendered signal.
func (a *Analyzer) MeasureSignal(x []float64, p formant.Profile, sampleRate float64) ([]SignalPeak, error) {
	if !(a.cfg.SearchWindow > 0) {
		return nil, fmt.Errorf("%w: search window %g Hz", ErrInvalidParameter, a.cfg.SearchWindow)
	}

	s, err := spectrum.Compute(x, sampleRate, 0, window.TypeHann)
	if err != nil {
		return nil, fmt.Errorf("peak: %w", err)
	}

	out := make([]SignalPeak, formant.NumBranches)
	for i := range out {
		theory := p[i].Frequency
		k, ok := s.PeakIn(theory-a.cfg.SearchWindow, theory+a.cfg.SearchWindow)
		if !ok {
			return nil, fmt.Errorf("%w: no spectrum bin within %g Hz of F%d (%g Hz)",
				ErrInvalidParameter, a.cfg.SearchWindow, i+1, theory)
		}
		out[i] = SignalPeak{
			Formant:   i + 1,
			Theory:    theory,
			Frequency: s.Freqs[k],
			Amplitude: s.Amplitude[k],
			Deviation: core.RelativeDeviation(s.Freqs[k], theory),
		}
	}
	return out, nil
}

// ArgMaxIn returns the index of the largest value with lo <= freqs[k] <= hi.
// Ties resolve to the lower index; ok is false when the range is empty.
func ArgMaxIn(freqs, values []float64, lo, hi float64) (index int, ok bool) {
	index = -1
	for k, f := range freqs {
		if f < lo || f > hi {
			continue
		}
		if index < 0 || values[k] > values[index] {
			index = k
		}
	}
	return index, index >= 0
}

// Magnitudes returns |H| of both models.
func (r Response) Magnitudes() (cascade, parallel []float64) {
	return spectrum.Magnitude(r.Cascade), spectrum.Magnitude(r.Parallel)
}

// MagnitudesDB returns 20*log10|H| of both models.
func (r Response) MagnitudesDB() (cascade, parallel []float64) {
	return spectrum.MagnitudeDB(r.Cascade, floorDB), spectrum.MagnitudeDB(r.Parallel, floorDB)
}

// Phases returns the unwrapped phase of both models in radians.
func (r Response) Phases() (cascade, parallel []float64) {
	return spectrum.UnwrapPhase(spectrum.Phase(r.Cascade)), spectrum.UnwrapPhase(spectrum.Phase(r.Parallel))
}

// GroupDelays returns the group delay of both models in seconds.
func (r Response) GroupDelays() (cascade, parallel []float64, err error) {
	// Grid spacing fs/(2N) corresponds to an FFT of size 2N.
	fftSize := 2 * len(r.Freqs)
	pc, pp := r.Phases()
	if cascade, err = spectrum.GroupDelaySeconds(pc, fftSize, r.SampleRate); err != nil {
		return nil, nil, err
	}
	if parallel, err = spectrum.GroupDelaySeconds(pp, fftSize, r.SampleRate); err != nil {
		return nil, nil, err
	}
	return cascade, parallel, nil
}
