package formant

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
)

const (
	// DefaultResolution is the default number of calibration grid points.
	DefaultResolution = 1024
	// DefaultRefinement is the default number of gain refinement passes.
	DefaultRefinement = 16

	refinementTolerance = 1e-9
)

// GainTable holds the parallel branch gains of one (vowel, sample rate)
// pair.
type GainTable struct {
	// Target is the cascade magnitude at the grid sample nearest each of
	// the first three formants.
	Target [NumBranches]float64
	// Gain is the non-negative scalar applied to each parallel branch.
	Gain [NumBranches]float64
	// Index and Frequency identify the grid sample used per formant.
	Index     [NumBranches]int
	Frequency [NumBranches]float64
	// Resolution is the grid size and Iterations the number of refinement
	// passes that were applied.
	Resolution int
	Iterations int
}

// CalibrateOption configures Calibrate.
type CalibrateOption func(*calibrateConfig)

type calibrateConfig struct {
	resolution int
	refinement int
}

// WithResolution sets the number of grid points spanning [0, fs/2).
func WithResolution(points int) CalibrateOption {
	return func(c *calibrateConfig) {
		c.resolution = points
	}
}

// WithRefinement sets the maximum number of refinement passes. Zero keeps
// the per-branch gains Target[i] / |branch_i(f_i)|.
func WithRefinement(passes int) CalibrateOption {
	return func(c *calibrateConfig) {
		c.refinement = passes
	}
}

// Calibrate derives the parallel branch gains for p.
//
// The cascade magnitude is sampled on the grid f_k = k*fs/(2*resolution),
// k = 0..resolution-1. For each of the first three formants the sample
// closest to its centre frequency sets Target[i]; ties go to the lower
// index. Each gain starts as Target[i] divided by the magnitude of its own
// branch and is then refined against the full signed parallel sum until
// the parallel magnitude at every f_i matches Target[i].
func Calibrate(p Profile, sampleRate float64, opts ...CalibrateOption) (GainTable, error) {
	cfg := calibrateConfig{resolution: DefaultResolution, refinement: DefaultRefinement}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateSampleRate(sampleRate); err != nil {
		return GainTable{}, err
	}
	if cfg.resolution < 2 {
		return GainTable{}, fmt.Errorf("%w: resolution %d < 2", ErrInvalidParameter, cfg.resolution)
	}
	if cfg.refinement < 0 {
		return GainTable{}, fmt.Errorf("%w: refinement %d < 0", ErrInvalidParameter, cfg.refinement)
	}
	for i := range NumBranches {
		if f := p[i].Frequency; !(f >= 0 && f <= sampleRate/2) {
			return GainTable{}, fmt.Errorf("%w: F%d = %g Hz outside [0, %g]", ErrInvalidParameter, i+1, f, sampleRate/2)
		}
	}

	res, err := resonators(p, sampleRate)
	if err != nil {
		return GainTable{}, err
	}
	branches, err := newBranches(p, sampleRate)
	if err != nil {
		return GainTable{}, err
	}

	freqs := iir.FrequencyGrid(cfg.resolution, sampleRate)
	mag := make([]float64, len(freqs))
	for k, f := range freqs {
		mag[k] = cmplx.Abs(cascadeResponse(&res, f, sampleRate))
	}

	t := GainTable{Resolution: cfg.resolution}
	var h [NumBranches][NumBranches]complex128 // h[i][j]: branch j at f_i
	for i := range NumBranches {
		k := NearestIndex(freqs, p[i].Frequency)
		t.Index[i] = k
		t.Frequency[i] = freqs[k]
		t.Target[i] = mag[k]
		for j, b := range branches {
			h[i][j] = b.response(freqs[k], sampleRate)
		}

		own := cmplx.Abs(h[i][i])
		if own == 0 {
			return GainTable{}, fmt.Errorf("%w: F%d grid frequency %g Hz falls on a branch zero",
				ErrInvalidParameter, i+1, freqs[k])
		}
		t.Gain[i] = t.Target[i] / own
	}

	for t.Iterations < cfg.refinement {
		var ratio [NumBranches]float64
		converged := true
		for i := range NumBranches {
			var sum complex128
			for j := range NumBranches {
				sum += complex(branchSign(j)*t.Gain[j], 0) * h[i][j]
			}
			m := cmplx.Abs(sum)
			if m == 0 {
				return t, nil
			}
			ratio[i] = t.Target[i] / m
			if math.Abs(ratio[i]-1) >= refinementTolerance {
				converged = false
			}
		}
		if converged {
			break
		}
		for i := range NumBranches {
			t.Gain[i] *= ratio[i]
		}
		t.Iterations++
	}
	return t, nil
}

// NearestIndex returns the index of the value in freqs closest to target.
// Ties resolve to the lower index; an empty slice yields -1.
func NearestIndex(freqs []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for k, f := range freqs {
		if d := math.Abs(f - target); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
