package peak

import "github.com/cwbudde/algo-vowel/dsp/formant"

const defaultSearchWindowHz = 200.0

// Config holds analyzer parameters.
type Config struct {
	// Resolution is the number of grid points spanning [0, fs/2).
	Resolution int
	// SearchWindow is the half-width in Hz searched around each formant.
	SearchWindow float64
	// Refinement is the maximum number of parallel gain refinement passes.
	Refinement int
}

// Option configures an Analyzer.
type Option func(*Config)

// DefaultConfig returns the default analyzer parameters.
func DefaultConfig() Config {
	return Config{
		Resolution:   formant.DefaultResolution,
		SearchWindow: defaultSearchWindowHz,
		Refinement:   formant.DefaultRefinement,
	}
}

// WithResolution sets the response grid size.
func WithResolution(points int) Option {
	return func(c *Config) {
		c.Resolution = points
	}
}

// WithSearchWindow sets the peak search half-width in Hz.
func WithSearchWindow(widthHz float64) Option {
	return func(c *Config) {
		c.SearchWindow = widthHz
	}
}

// WithRefinement sets the gain refinement passes used for the parallel
// model.
func WithRefinement(passes int) Option {
	return func(c *Config) {
		c.Refinement = passes
	}
}
