// Command vowelsynth renders static vowels with the cascade and parallel
// formant models and reports how closely each model hits its formants.
//
// Usage:
//
//	vowelsynth [flags] [vowel ...]
//
// Without arguments it renders every known vowel. For each vowel it writes
// <vowel>_cascade.wav and <vowel>_parallel.wav to the output directory and
// prints the formant peak deviation table.
//
// Examples:
//
//	vowelsynth a i u
//	vowelsynth -rate 16000 -f0 120 -out /tmp/vowels
//	vowelsynth -responses -measure o
//	vowelsynth -config vowel.yaml
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"

	"github.com/cwbudde/algo-vowel/dsp/core"
	"github.com/cwbudde/algo-vowel/dsp/formant"
	"github.com/cwbudde/algo-vowel/dsp/signal"
	"github.com/cwbudde/algo-vowel/internal/config"
	"github.com/cwbudde/algo-vowel/internal/wavfile"
	"github.com/cwbudde/algo-vowel/measure/peak"
	"github.com/cwbudde/algo-vowel/stats/level"
)

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vowelsynth", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "optional YAML configuration file")
	rate := fs.Float64("rate", 0, "sample rate in Hz (default from config, 10000)")
	f0 := fs.Float64("f0", 0, "fundamental frequency in Hz (default from config, 100)")
	duration := fs.Float64("duration", 0, "duration in seconds (default from config, 0.5)")
	outDir := fs.String("out", "", "output directory (default from config, .)")
	responses := fs.Bool("responses", false, "also write <vowel>_response.csv with magnitude, phase and group delay")
	measure := fs.Bool("measure", false, "also measure formant peaks in the rendered signals")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: vowelsynth [flags] [vowel ...]\n\n")
		fmt.Fprintf(stderr, "Renders cascade and parallel formant vowels as WAV files.\n")
		fmt.Fprintf(stderr, "Known vowels: %s\n\n", strings.Join(formant.Symbols(), " "))
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rate":
			cfg.Synthesis.SampleRate = *rate
		case "f0":
			cfg.Synthesis.Fundamental = *f0
		case "duration":
			cfg.Synthesis.Duration = *duration
		case "out":
			cfg.Output.Directory = *outDir
		case "responses":
			cfg.Output.WriteResponses = *responses
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if fs.NArg() > 0 {
		cfg.Synthesis.Vowels = fs.Args()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slogLevel, _ := cfg.SlogLevel()
	logger := slog.New(tint.NewHandler(stderr, &tint.Options{Level: slogLevel, TimeFormat: time.Kitchen}))

	if err := os.MkdirAll(cfg.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	engine := formant.NewEngine(append(cfg.CoreOptions(), core.WithLogger(logger))...)
	results, err := engine.SynthesizeAll(ctx, cfg.Synthesis.Vowels)
	if err != nil {
		return err
	}

	analyzer := peak.NewAnalyzer(
		peak.WithResolution(cfg.Analysis.Resolution),
		peak.WithRefinement(cfg.Analysis.Refinement),
		peak.WithSearchWindow(cfg.Analysis.SearchWindow),
	)
	sampleRate := engine.Config().SampleRate

	for _, r := range results {
		if err := writeSignals(cfg.Output.Directory, r, sampleRate, logger); err != nil {
			return err
		}
		if cfg.Output.WriteResponses {
			if err := writeResponse(cfg.Output.Directory, r, analyzer, sampleRate); err != nil {
				return err
			}
		}
	}

	if err := printDeviations(stdout, results, analyzer, sampleRate); err != nil {
		return err
	}
	if *measure {
		return printMeasurements(stdout, results, analyzer, sampleRate)
	}
	return nil
}

func writeSignals(dir string, r formant.Result, sampleRate float64, logger *slog.Logger) error {
	for _, out := range []struct {
		topology string
		data     []float64
	}{
		{"cascade", r.Cascade},
		{"parallel", r.Parallel},
	} {
		pcm, err := signal.ToPCM16(out.data)
		if err != nil {
			return fmt.Errorf("vowel %q %s: %w", r.Symbol, out.topology, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.wav", r.Symbol, out.topology))
		if err := wavfile.Write(path, pcm, int(sampleRate)); err != nil {
			return fmt.Errorf("vowel %q %s: %w", r.Symbol, out.topology, err)
		}
		sum := level.Summarize(out.data)
		logger.Info("wrote signal", "vowel", r.Symbol, "topology", out.topology, "path", path,
			"samples", len(pcm), "rms_db", sum.RMS_dB, "crest_db", sum.CrestFactor_dB)
	}
	logger.Debug("topology level difference", "vowel", r.Symbol, "parallel_minus_cascade_db", level.RatioDB(r.Parallel, r.Cascade))
	return nil
}

func writeResponse(dir string, r formant.Result, analyzer *peak.Analyzer, sampleRate float64) (err error) {
	resp, err := analyzer.Responses(r.Profile, sampleRate)
	if err != nil {
		return fmt.Errorf("vowel %q response: %w", r.Symbol, err)
	}
	magC, magP := resp.MagnitudesDB()
	phC, phP := resp.Phases()
	gdC, gdP, err := resp.GroupDelays()
	if err != nil {
		return fmt.Errorf("vowel %q group delay: %w", r.Symbol, err)
	}

	path := filepath.Join(dir, r.Symbol+"_response.csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create response file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{
		"freq_hz", "cascade_db", "parallel_db", "cascade_phase_rad", "parallel_phase_rad",
		"cascade_group_delay_s", "parallel_group_delay_s",
	}); err != nil {
		return err
	}
	for k, f := range resp.Freqs {
		row := []string{
			formatFloat(f), formatFloat(magC[k]), formatFloat(magP[k]), formatFloat(phC[k]), formatFloat(phP[k]),
			formatFloat(gdC[k]), formatFloat(gdP[k]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func printDeviations(w io.Writer, results []formant.Result, analyzer *peak.Analyzer, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Vowel\tFormant\tTheory [Hz]\tCascade [Hz]\tParallel [Hz]\tCascade dev [%%]\tParallel dev [%%]\tGain\n")
	fmt.Fprintf(tw, "-----\t-------\t-----------\t------------\t-------------\t---------------\t----------------\t----\n")

	for _, r := range results {
		devs, err := analyzer.ComparePeaks(r.Profile, sampleRate)
		if err != nil {
			return fmt.Errorf("vowel %q: %w", r.Symbol, err)
		}
		for i, d := range devs {
			fmt.Fprintf(tw, "%s\tF%d\t%.1f\t%.2f\t%.2f\t%+.3f\t%+.3f\t%.4f\n",
				r.Symbol, d.Formant, d.Theory, d.Cascade, d.Parallel,
				d.CascadeDeviation, d.ParallelDeviation, r.Gains.Gain[i])
		}
	}
	return tw.Flush()
}

func printMeasurements(w io.Writer, results []formant.Result, analyzer *peak.Analyzer, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nVowel\tTopology\tFormant\tTheory [Hz]\tMeasured [Hz]\tDeviation [%%]\n")
	fmt.Fprintf(tw, "-----\t--------\t-------\t-----------\t-------------\t-------------\n")

	for _, r := range results {
		for _, out := range []struct {
			topology string
			data     []float64
		}{
			{"cascade", r.Cascade},
			{"parallel", r.Parallel},
		} {
			peaks, err := analyzer.MeasureSignal(out.data, r.Profile, sampleRate)
			if err != nil {
				return fmt.Errorf("vowel %q %s: %w", r.Symbol, out.topology, err)
			}
			for _, p := range peaks {
				fmt.Fprintf(tw, "%s\t%s\tF%d\t%.1f\t%.2f\t%+.3f\n",
					r.Symbol, out.topology, p.Formant, p.Theory, p.Frequency, p.Deviation)
			}
		}
	}
	return tw.Flush()
}
