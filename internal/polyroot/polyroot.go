// Package polyroot finds polynomial roots for filter pole and zero analysis.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has a zero leading
// coefficient, no roots, or the iteration fails to converge.
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

const (
	maxIterations = 500
	stepTolerance = 1e-12
	residualLimit = 1e-6
)

// Roots returns the roots of a real polynomial given in descending power
// order: coeff[0]*z^n + ... + coeff[n].
func Roots(coeff []float64) ([]complex128, error) {
	c := make([]complex128, len(coeff))
	for i, v := range coeff {
		c[i] = complex(v, 0)
	}
	return DurandKerner(c)
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	degree := len(coeff) - 1
	monic := make([]complex128, len(coeff))
	for i, c := range coeff {
		monic[i] = c / coeff[0]
	}

	// Cauchy-style radius for the initial guesses.
	radius := 1.0
	for _, c := range monic[1:] {
		radius = math.Max(radius, cmplx.Abs(c))
	}

	roots := make([]complex128, degree)
	for i := range roots {
		angle := 2*math.Pi*float64(i)/float64(degree) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(degree))
		roots[i] = cmplx.Rect(r, angle)
	}

	for range maxIterations {
		largestStep := 0.0

		for i := range roots {
			den := complex(1, 0)
			for j := range roots {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			step := PolyEval(monic, roots[i]) / den
			roots[i] -= step
			largestStep = math.Max(largestStep, cmplx.Abs(step))
		}

		if largestStep < stepTolerance {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(monic, r)) >= residualLimit {
			return nil, ErrDegeneratePolynomial
		}
	}
	return roots, nil
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for _, c := range coeff[1:] {
		v = v*x + c
	}
	return v
}
