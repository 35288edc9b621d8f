package formant

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-vowel/dsp/filter/design"
	"github.com/cwbudde/algo-vowel/dsp/filter/iir"
)

const (
	// PreEmphasisZeroHz places the zero of the first branch pre-emphasis.
	PreEmphasisZeroHz = 640.0
	// AllpassHz places the pole/zero pair of the first branch all-pass.
	AllpassHz = 270.0
)

// branchShaping returns the pre-filters of parallel branch i: pre-emphasis
// followed by an all-pass for F1, a first difference for F2 and F3.
func branchShaping(i int, sampleRate float64) ([]iir.Coefficients, error) {
	if i > 0 {
		return []iir.Coefficients{design.Differentiator()}, nil
	}

	pe, err := design.PreEmphasis(PreEmphasisZeroHz, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	ap, err := design.Allpass1(AllpassHz, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return []iir.Coefficients{pe, ap}, nil
}

// branch holds the complete linear path of one parallel branch.
type branch struct {
	stages []iir.Coefficients
}

func newBranch(i int, spec Spec, sampleRate float64) (branch, error) {
	stages, err := branchShaping(i, sampleRate)
	if err != nil {
		return branch{}, err
	}
	c, err := NewResonatorCoefficients(spec, sampleRate)
	if err != nil {
		return branch{}, fmt.Errorf("formant: F%d: %w", i+1, err)
	}
	return branch{stages: append(stages, c.Filter())}, nil
}

func newBranches(p Profile, sampleRate float64) ([NumBranches]branch, error) {
	var out [NumBranches]branch
	for i := range out {
		b, err := newBranch(i, p[i], sampleRate)
		if err != nil {
			return out, err
		}
		out[i] = b
	}
	return out, nil
}

func (b branch) response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, c := range b.stages {
		h *= c.Response(freqHz, sampleRate)
	}
	return h
}

// branchSign returns (-1)^i.
func branchSign(i int) float64 {
	if i%2 == 1 {
		return -1
	}
	return 1
}

// Parallel synthesizes the parallel model of p from excitation. Branches
// are filtered concurrently and accumulated in branch order, so the result
// is bit-identical across runs.
func Parallel(p Profile, excitation []float64, sampleRate float64, gains GainTable) ([]float64, error) {
	if err := gains.validate(); err != nil {
		return nil, err
	}
	branches, err := newBranches(p, sampleRate)
	if err != nil {
		return nil, err
	}

	outputs := make([][]float64, NumBranches)
	var g errgroup.Group
	for i, b := range branches {
		g.Go(func() error {
			y, err := iir.Cascade(b.stages, excitation)
			if err != nil {
				return fmt.Errorf("formant: branch F%d: %w", i+1, err)
			}
			outputs[i] = y
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]float64, len(excitation))
	for i, y := range outputs {
		scale := branchSign(i) * gains.Gain[i]
		for n, v := range y {
			out[n] += scale * v
		}
	}
	return out, nil
}

// ParallelResponse returns the parallel transfer function of p with gains
// at freqHz.
func ParallelResponse(p Profile, gains GainTable, freqHz, sampleRate float64) (complex128, error) {
	if err := gains.validate(); err != nil {
		return 0, err
	}
	branches, err := newBranches(p, sampleRate)
	if err != nil {
		return 0, err
	}
	return parallelResponse(&branches, gains.Gain, freqHz, sampleRate), nil
}

func parallelResponse(branches *[NumBranches]branch, gain [NumBranches]float64, freqHz, sampleRate float64) complex128 {
	var h complex128
	for i, b := range branches {
		h += complex(branchSign(i)*gain[i], 0) * b.response(freqHz, sampleRate)
	}
	return h
}

func (t GainTable) validate() error {
	for i, g := range t.Gain {
		if !(g >= 0) || math.IsInf(g, 0) {
			return fmt.Errorf("%w: gain F%d = %g", ErrInvalidParameter, i+1, g)
		}
	}
	return nil
}
