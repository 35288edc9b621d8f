package formant

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-vowel/dsp/core"
)

// Result holds the synthesis output for one vowel.
type Result struct {
	Symbol     string
	Profile    Profile
	Excitation []float64
	Cascade    []float64
	Parallel   []float64
	Gains      GainTable
}

// Engine synthesizes vowels with a fixed configuration. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	cfg    core.SynthesisConfig
	logger *slog.Logger
}

// NewEngine creates an engine from core options. Defaults are 10 kHz,
// 100 Hz fundamental and 0.5 s duration.
func NewEngine(opts ...core.Option) *Engine {
	cfg := core.ApplyOptions(opts...)
	return &Engine{cfg: cfg, logger: cfg.Logger}
}

// Config returns the engine configuration.
func (e *Engine) Config() core.SynthesisConfig {
	return e.cfg
}

// Synthesize renders the cascade and parallel models of one vowel.
func (e *Engine) Synthesize(ctx context.Context, symbol string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p, err := Lookup(symbol)
	if err != nil {
		return Result{}, err
	}

	fs := e.cfg.SampleRate
	exc, err := Excitation(e.cfg.Fundamental, e.cfg.Duration, fs)
	if err != nil {
		return Result{}, fmt.Errorf("formant: vowel %q: %w", symbol, err)
	}
	casc, err := Cascade(p, exc, fs)
	if err != nil {
		return Result{}, fmt.Errorf("formant: vowel %q: cascade: %w", symbol, err)
	}
	gains, err := Calibrate(p, fs, WithResolution(e.cfg.Resolution), WithRefinement(e.cfg.Refinement))
	if err != nil {
		return Result{}, fmt.Errorf("formant: vowel %q: calibrate: %w", symbol, err)
	}
	par, err := Parallel(p, exc, fs, gains)
	if err != nil {
		return Result{}, fmt.Errorf("formant: vowel %q: parallel: %w", symbol, err)
	}

	e.logger.DebugContext(ctx, "vowel synthesized",
		"vowel", symbol,
		"samples", len(exc),
		"gains", gains.Gain,
		"refinement_passes", gains.Iterations,
	)

	return Result{
		Symbol:     symbol,
		Profile:    p,
		Excitation: exc,
		Cascade:    casc,
		Parallel:   par,
		Gains:      gains,
	}, nil
}

// SynthesizeAll renders every symbol concurrently and returns the results
// in input order. The first error cancels vowels that have not started yet
// and no partial results are returned.
func (e *Engine) SynthesizeAll(ctx context.Context, symbols []string) ([]Result, error) {
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sym := range symbols {
		g.Go(func() error {
			r, err := e.Synthesize(gctx, sym)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
