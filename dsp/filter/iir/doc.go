// Package iir provides a general linear recursive filter runtime.
//
// A [Coefficients] value holds numerator (B) and denominator (A) polynomials
// in z^-1 of arbitrary order. [Filter] runs them in Direct Form II
// Transposed with zero initial state, the same structure the biquad runtime
// uses, generalized to any number of taps:
//
//	a[0]*y[n] = b[0]*x[n] + ... + b[M]*x[n-M] - a[1]*y[n-1] - ... - a[N]*y[n-N]
//
// Coefficients are normalized so that a[0] = 1, and [NewFilter] refuses
// denominators with a pole on or outside the unit circle. Frequency
// responses are evaluated on the unit circle with [Coefficients.Response];
// [FrequencyGrid] gives the uniform grid used for sampled responses.
package iir
