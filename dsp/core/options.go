package core

import "log/slog"

// SynthesisConfig defines the shared settings of one synthesis run.
type SynthesisConfig struct {
	SampleRate   float64 // Hz
	Fundamental  float64 // glottal pulse rate in Hz
	Duration     float64 // seconds
	Resolution   int     // frequency grid size used for gain calibration and analysis
	Refinement   int     // maximum parallel gain refinement iterations
	SearchWindow float64 // half-width in Hz of the peak search around each formant
	Logger       *slog.Logger
}

// Option mutates a SynthesisConfig.
type Option func(*SynthesisConfig)

// DefaultSynthesisConfig returns the defaults of the classic formant
// synthesis experiments: 10 kHz, 100 Hz voice, half a second.
func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		SampleRate:   10000,
		Fundamental:  100,
		Duration:     0.5,
		Resolution:   1024,
		Refinement:   16,
		SearchWindow: 200,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// WithSampleRate sets the synthesis sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *SynthesisConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFundamental sets the glottal pulse frequency.
func WithFundamental(freqHz float64) Option {
	return func(cfg *SynthesisConfig) {
		if freqHz > 0 {
			cfg.Fundamental = freqHz
		}
	}
}

// WithDuration sets the utterance length in seconds.
func WithDuration(seconds float64) Option {
	return func(cfg *SynthesisConfig) {
		if seconds > 0 {
			cfg.Duration = seconds
		}
	}
}

// WithResolution sets the number of frequency grid points in [0, fs/2).
func WithResolution(points int) Option {
	return func(cfg *SynthesisConfig) {
		if points >= 2 {
			cfg.Resolution = points
		}
	}
}

// WithRefinement sets the maximum number of parallel gain refinement
// iterations. Zero keeps the per-branch normalized gains.
func WithRefinement(iterations int) Option {
	return func(cfg *SynthesisConfig) {
		if iterations >= 0 {
			cfg.Refinement = iterations
		}
	}
}

// WithSearchWindow sets the peak search half-width in Hz.
func WithSearchWindow(widthHz float64) Option {
	return func(cfg *SynthesisConfig) {
		if widthHz > 0 {
			cfg.SearchWindow = widthHz
		}
	}
}

// WithLogger sets the logger used for per-run debug records. A nil logger
// keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *SynthesisConfig) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies options on top of defaults.
func ApplyOptions(opts ...Option) SynthesisConfig {
	cfg := DefaultSynthesisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples returns floor(Duration * SampleRate).
func (c SynthesisConfig) Samples() int {
	return SampleCount(c.Duration, c.SampleRate)
}
