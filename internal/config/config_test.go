package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/cwbudde/algo-vowel/dsp/core"
	"github.com/cwbudde/algo-vowel/dsp/formant"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Synthesis.SampleRate != 10000 || cfg.Synthesis.Fundamental != 100 || cfg.Synthesis.Duration != 0.5 {
		t.Fatalf("unexpected synthesis defaults: %+v", cfg.Synthesis)
	}
	if !slices.Equal(cfg.Synthesis.Vowels, []string{"a", "e", "i", "o", "u"}) {
		t.Fatalf("unexpected vowels: %v", cfg.Synthesis.Vowels)
	}
	if cfg.Analysis.Resolution != 1024 || cfg.Analysis.SearchWindow != 200 {
		t.Fatalf("unexpected analysis defaults: %+v", cfg.Analysis)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vowel.yaml")
	data := []byte(`
synthesis:
  sample_rate: 16000
  fundamental_hz: 120
  vowels: [i, u]
analysis:
  resolution: 2048
output:
  directory: out
  write_responses: true
log:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Synthesis.SampleRate != 16000 || cfg.Synthesis.Fundamental != 120 {
		t.Fatalf("synthesis not loaded: %+v", cfg.Synthesis)
	}
	if cfg.Synthesis.Duration != 0.5 {
		t.Fatalf("duration default lost: %v", cfg.Synthesis.Duration)
	}
	if !slices.Equal(cfg.Synthesis.Vowels, []string{"i", "u"}) {
		t.Fatalf("vowels = %v", cfg.Synthesis.Vowels)
	}
	if cfg.Analysis.Resolution != 2048 || cfg.Analysis.Refinement != 16 {
		t.Fatalf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Output.Directory != "out" || !cfg.Output.WriteResponses {
		t.Fatalf("output = %+v", cfg.Output)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Fatalf("level = %v", level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("synthesis: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VOWEL_SAMPLE_RATE", "22050")
	t.Setenv("VOWEL_FUNDAMENTAL_HZ", "110")
	t.Setenv("VOWEL_DURATION_S", "0.25")
	t.Setenv("VOWEL_VOWELS", " a, o ,")
	t.Setenv("VOWEL_RESOLUTION", "4096")
	t.Setenv("VOWEL_REFINEMENT", "0")
	t.Setenv("VOWEL_SEARCH_WINDOW_HZ", "150")
	t.Setenv("VOWEL_OUTPUT_DIRECTORY", "/tmp/vowels")
	t.Setenv("VOWEL_WRITE_RESPONSES", "true")
	t.Setenv("VOWEL_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		Synthesis: SynthesisConfig{SampleRate: 22050, Fundamental: 110, Duration: 0.25, Vowels: []string{"a", "o"}},
		Analysis:  AnalysisConfig{Resolution: 4096, Refinement: 0, SearchWindow: 150},
		Output:    OutputConfig{Directory: "/tmp/vowels", WriteResponses: true},
		Log:       LogConfig{Level: "warn"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestEnvOverridesIgnoreMalformed(t *testing.T) {
	t.Setenv("VOWEL_SAMPLE_RATE", "fast")
	t.Setenv("VOWEL_RESOLUTION", "many")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Synthesis.SampleRate != 10000 || cfg.Analysis.Resolution != 1024 {
		t.Fatalf("malformed overrides applied: %+v %+v", cfg.Synthesis, cfg.Analysis)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "sample-rate", mutate: func(c *Config) { c.Synthesis.SampleRate = 0 }},
		{name: "fundamental", mutate: func(c *Config) { c.Synthesis.Fundamental = 6000 }},
		{name: "duration", mutate: func(c *Config) { c.Synthesis.Duration = -1 }},
		{name: "no-vowels", mutate: func(c *Config) { c.Synthesis.Vowels = nil }},
		{name: "unknown-vowel", mutate: func(c *Config) { c.Synthesis.Vowels = []string{"a", "q"} }},
		{name: "resolution", mutate: func(c *Config) { c.Analysis.Resolution = 1 }},
		{name: "refinement", mutate: func(c *Config) { c.Analysis.Refinement = -1 }},
		{name: "search-window", mutate: func(c *Config) { c.Analysis.SearchWindow = 0 }},
		{name: "directory", mutate: func(c *Config) { c.Output.Directory = " " }},
		{name: "log-level", mutate: func(c *Config) { c.Log.Level = "loud" }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := Default()
	cfg.Synthesis.Vowels = []string{"z"}
	if err := cfg.Validate(); !errors.Is(err, formant.ErrUnknownVowel) {
		t.Fatalf("err = %v, want ErrUnknownVowel", err)
	}
}

func TestCoreOptions(t *testing.T) {
	cfg := Default()
	cfg.Synthesis.SampleRate = 16000
	cfg.Analysis.Refinement = 4

	got := core.ApplyOptions(cfg.CoreOptions()...)
	if got.SampleRate != 16000 || got.Refinement != 4 || got.Fundamental != 100 || got.Resolution != 1024 {
		t.Fatalf("core config = %+v", got)
	}
}
