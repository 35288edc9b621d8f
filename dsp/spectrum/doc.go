// Package spectrum computes and post-processes complex spectra.
//
// Compute takes the windowed FFT of a real signal through algo-fft. The
// remaining helpers operate on complex bins from any source, including the
// sampled transfer functions of the formant synthesizers.
package spectrum
