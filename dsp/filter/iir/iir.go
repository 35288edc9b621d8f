package iir

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCoefficients is returned when either polynomial is empty.
	ErrEmptyCoefficients = errors.New("iir: empty coefficients")
	// ErrZeroLeadingCoefficient is returned when a[0] == 0.
	ErrZeroLeadingCoefficient = errors.New("iir: leading denominator coefficient is zero")
	// ErrUnstable is returned when a pole lies on or outside the unit circle.
	ErrUnstable = errors.New("iir: unstable filter")
)

// Coefficients holds a rational transfer function
//
//	H(z) = (B[0] + B[1] z^-1 + ...) / (A[0] + A[1] z^-1 + ...)
//
// Values returned by New are normalized so that A[0] == 1 and both slices
// have the same length.
type Coefficients struct {
	B []float64 // feedforward (numerator)
	A []float64 // feedback (denominator)
}

// New validates b and a, normalizes them by a[0] and zero-pads the shorter
// polynomial. The inputs are not modified.
func New(b, a []float64) (Coefficients, error) {
	if len(b) == 0 || len(a) == 0 {
		return Coefficients{}, ErrEmptyCoefficients
	}
	if a[0] == 0 {
		return Coefficients{}, ErrZeroLeadingCoefficient
	}

	n := max(len(b), len(a))
	c := Coefficients{
		B: make([]float64, n),
		A: make([]float64, n),
	}
	inv := 1 / a[0]
	for i, v := range b {
		c.B[i] = v * inv
	}
	for i, v := range a {
		c.A[i] = v * inv
	}
	c.A[0] = 1
	return c, nil
}

// MustNew is like New but panics on invalid coefficients. Intended for
// package-level constant filters.
func MustNew(b, a []float64) Coefficients {
	c, err := New(b, a)
	if err != nil {
		panic(fmt.Sprintf("iir: %v", err))
	}
	return c
}

// Order returns the filter order (number of delay elements).
func (c Coefficients) Order() int {
	return max(len(c.B), len(c.A)) - 1
}

// Filter is a stateful Direct Form II Transposed runner for Coefficients.
type Filter struct {
	b, a []float64
	d    []float64
}

// NewFilter returns a Filter with zero state. Coefficients that did not
// come from New are normalized first. Filters with a pole on or outside the
// unit circle are rejected with ErrUnstable.
func NewFilter(c Coefficients) (*Filter, error) {
	if len(c.A) > 0 && (c.A[0] != 1 || len(c.A) != len(c.B)) {
		var err error
		if c, err = New(c.B, c.A); err != nil {
			return nil, err
		}
	}
	if len(c.B) == 0 || len(c.A) == 0 {
		return nil, ErrEmptyCoefficients
	}
	if !c.Stable() {
		return nil, ErrUnstable
	}
	return &Filter{
		b: c.B,
		a: c.A,
		d: make([]float64, len(c.B)),
	}, nil
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter) ProcessSample(x float64) float64 {
	b, a, d := f.b, f.a, f.d
	y := b[0]*x + d[0]
	last := len(b) - 1
	for k := 1; k < last; k++ {
		d[k-1] = b[k]*x - a[k]*y + d[k]
	}
	if last > 0 {
		d[last-1] = b[last]*x - a[last]*y
	}
	return y
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Apply filters x with zero initial state and returns a new slice of the
// same length. x is not modified.
func Apply(c Coefficients, x []float64) ([]float64, error) {
	f, err := NewFilter(c)
	if err != nil {
		return nil, err
	}
	y := make([]float64, len(x))
	f.ProcessBlockTo(y, x)
	return y, nil
}

// Cascade applies each coefficient set in order, feeding each stage's output
// into the next. The result is a new slice; x is not modified.
func Cascade(stages []Coefficients, x []float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)
	for i, c := range stages {
		f, err := NewFilter(c)
		if err != nil {
			return nil, fmt.Errorf("iir: stage %d: %w", i, err)
		}
		f.ProcessBlockTo(out, out)
	}
	return out, nil
}
