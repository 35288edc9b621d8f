package formant

import "errors"

var (
	// ErrInvalidParameter reports an out-of-range frequency, bandwidth,
	// duration, gain or sample rate.
	ErrInvalidParameter = errors.New("formant: invalid parameter")
	// ErrUnstableFilter reports a resonator pole radius >= 1.
	ErrUnstableFilter = errors.New("formant: unstable filter")
	// ErrUnknownVowel reports a vowel symbol missing from the profile table.
	ErrUnknownVowel = errors.New("formant: unknown vowel")
)
