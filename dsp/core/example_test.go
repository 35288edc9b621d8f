package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-vowel/dsp/core"
)

func ExampleApplyOptions() {
	cfg := core.ApplyOptions(
		core.WithSampleRate(16000),
		core.WithFundamental(120),
	)

	fmt.Printf("sampleRate=%.0f f0=%.0f samples=%d\n", cfg.SampleRate, cfg.Fundamental, cfg.Samples())

	// Output:
	// sampleRate=16000 f0=120 samples=8000
}
