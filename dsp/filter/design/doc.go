// Package design provides the low-order IIR coefficient designers used by
// the formant synthesizer: a bilinear-transform first-order Butterworth
// low-pass for glottal smoothing and the pre-emphasis, all-pass and
// differentiator sections that shape parallel formant branches.
//
// Every designer returns [iir.Coefficients] for dsp/filter/iir.
package design
