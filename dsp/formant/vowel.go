package formant

import (
	"fmt"
	"math"
	"slices"
)

const (
	// NumFormants is the number of formants in a Profile.
	NumFormants = 5
	// NumBranches is the number of formants the parallel model reproduces.
	NumBranches = 3
)

// Spec describes one formant.
type Spec struct {
	Frequency float64 // centre frequency in Hz
	Bandwidth float64 // -3 dB bandwidth in Hz
}

// Profile lists the formants of a vowel from low to high frequency.
type Profile [NumFormants]Spec

// Peterson & Barney adult male averages for F1-F3; F4 and F5 are shared.
var profiles = map[string]Profile{
	"a": {{730, 80}, {1090, 90}, {2440, 120}, {3500, 200}, {4950, 300}},
	"e": {{530, 60}, {1840, 90}, {2480, 120}, {3500, 200}, {4950, 300}},
	"i": {{270, 60}, {2290, 100}, {3010, 120}, {3500, 200}, {4950, 300}},
	"o": {{570, 70}, {840, 80}, {2410, 120}, {3500, 200}, {4950, 300}},
	"u": {{300, 60}, {870, 80}, {2240, 120}, {3500, 200}, {4950, 300}},
}

// Lookup returns the profile for a vowel symbol.
func Lookup(symbol string) (Profile, error) {
	p, ok := profiles[symbol]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownVowel, symbol)
	}
	return p, nil
}

// Symbols returns the known vowel symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(profiles))
	for s := range profiles {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Validate checks 0 < Frequency < sampleRate/2 and Bandwidth > 0.
func (s Spec) Validate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	if !(s.Frequency > 0 && s.Frequency < sampleRate/2) {
		return fmt.Errorf("%w: formant frequency %g Hz outside (0, %g)", ErrInvalidParameter, s.Frequency, sampleRate/2)
	}
	if !(s.Bandwidth > 0) || math.IsInf(s.Bandwidth, 0) {
		return fmt.Errorf("%w: formant bandwidth %g Hz", ErrInvalidParameter, s.Bandwidth)
	}
	return nil
}

func validateSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %g Hz", ErrInvalidParameter, sampleRate)
	}
	return nil
}
