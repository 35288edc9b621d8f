// Package peak verifies the spectral accuracy of the formant synthesizers.
//
// An Analyzer samples the cascade and parallel transfer functions of a
// vowel on a uniform grid, locates the actual formant peaks around each
// configured centre frequency and reports their deviation from theory.
// MeasureSignal performs the same search on the spectrum of a rendered
// signal. Nothing here alters synthesized output.
package peak
