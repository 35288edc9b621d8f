package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-vowel/dsp/core"
	"github.com/cwbudde/algo-vowel/dsp/formant"
)

// SynthesisConfig selects the rendered vowels and the excitation.
type SynthesisConfig struct {
	SampleRate  float64  `yaml:"sample_rate"`
	Fundamental float64  `yaml:"fundamental_hz"`
	Duration    float64  `yaml:"duration_s"`
	Vowels      []string `yaml:"vowels"`
}

// AnalysisConfig controls gain calibration and peak verification.
type AnalysisConfig struct {
	Resolution   int     `yaml:"resolution"`
	Refinement   int     `yaml:"refinement"`
	SearchWindow float64 `yaml:"search_window_hz"`
}

// OutputConfig controls where WAV and response files are written.
type OutputConfig struct {
	Directory      string `yaml:"directory"`
	WriteResponses bool   `yaml:"write_responses"`
}

// LogConfig sets the minimum log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the vowelsynth configuration file layout.
type Config struct {
	Synthesis SynthesisConfig `yaml:"synthesis"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the engine defaults with every known vowel selected,
// output to the working directory and info logging.
func Default() Config {
	def := core.DefaultSynthesisConfig()
	return Config{
		Synthesis: SynthesisConfig{
			SampleRate:  def.SampleRate,
			Fundamental: def.Fundamental,
			Duration:    def.Duration,
			Vowels:      formant.Symbols(),
		},
		Analysis: AnalysisConfig{
			Resolution:   def.Resolution,
			Refinement:   def.Refinement,
			SearchWindow: def.SearchWindow,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads an optional YAML file on top of Default, applies VOWEL_*
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideFloat(&cfg.Synthesis.SampleRate, "VOWEL_SAMPLE_RATE")
	overrideFloat(&cfg.Synthesis.Fundamental, "VOWEL_FUNDAMENTAL_HZ")
	overrideFloat(&cfg.Synthesis.Duration, "VOWEL_DURATION_S")
	overrideStringSlice(&cfg.Synthesis.Vowels, "VOWEL_VOWELS")
	overrideInt(&cfg.Analysis.Resolution, "VOWEL_RESOLUTION")
	overrideInt(&cfg.Analysis.Refinement, "VOWEL_REFINEMENT")
	overrideFloat(&cfg.Analysis.SearchWindow, "VOWEL_SEARCH_WINDOW_HZ")
	overrideString(&cfg.Output.Directory, "VOWEL_OUTPUT_DIRECTORY")
	overrideBool(&cfg.Output.WriteResponses, "VOWEL_WRITE_RESPONSES")
	overrideString(&cfg.Log.Level, "VOWEL_LOG_LEVEL")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	value, ok := os.LookupEnv(envKey)
	if !ok || strings.TrimSpace(value) == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) > 0 {
		*target = out
	}
}

// Validate checks ranges and vowel symbols.
func (c Config) Validate() error {
	s := c.Synthesis
	if s.SampleRate <= 0 {
		return errors.New("synthesis.sample_rate must be > 0")
	}
	if s.Fundamental <= 0 || s.Fundamental >= s.SampleRate/2 {
		return fmt.Errorf("synthesis.fundamental_hz must be in (0, %g)", s.SampleRate/2)
	}
	if s.Duration <= 0 {
		return errors.New("synthesis.duration_s must be > 0")
	}
	if len(s.Vowels) == 0 {
		return errors.New("synthesis.vowels must not be empty")
	}
	for _, v := range s.Vowels {
		if _, err := formant.Lookup(v); err != nil {
			return fmt.Errorf("synthesis.vowels: %w", err)
		}
	}
	if c.Analysis.Resolution < 2 {
		return errors.New("analysis.resolution must be >= 2")
	}
	if c.Analysis.Refinement < 0 {
		return errors.New("analysis.refinement must be >= 0")
	}
	if c.Analysis.SearchWindow <= 0 {
		return errors.New("analysis.search_window_hz must be > 0")
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		return errors.New("output.directory is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// CoreOptions converts the synthesis and analysis sections into engine
// options.
func (c Config) CoreOptions() []core.Option {
	return []core.Option{
		core.WithSampleRate(c.Synthesis.SampleRate),
		core.WithFundamental(c.Synthesis.Fundamental),
		core.WithDuration(c.Synthesis.Duration),
		core.WithResolution(c.Analysis.Resolution),
		core.WithRefinement(c.Analysis.Refinement),
		core.WithSearchWindow(c.Analysis.SearchWindow),
	}
}
