// Package formant synthesizes static vowels with the classic cascade and
// parallel formant models.
//
// A vowel is described by a Profile of five formants. The cascade model
// runs a low-passed glottal pulse train through all five resonators in
// series. The parallel model shapes the same excitation per branch, runs
// each of the first three formants through its own resonator and sums the
// sign-alternated branches with gains from Calibrate, so that its formant
// peaks match the cascade model in level.
//
// All functions are pure: inputs are never modified and every call returns
// freshly allocated output.
package formant
