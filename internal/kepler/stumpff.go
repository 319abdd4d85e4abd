// Package kepler solves the two-body problem with the universal-variable
// formulation: propagation of a state over a time span, time of flight
// between two points of an orbit, and the universal Kepler equation itself.
//
// Every function is a pure function of its arguments; a Propagator carries
// only immutable configuration and may be shared between goroutines.
package kepler

import "math"

// Below this |z| the closed forms lose digits to cancellation and the
// Maclaurin series is used instead.
const stumpffSeriesLimit = 0.1

// StumpffC evaluates C(z) = (1 − cos√z)/z, continued analytically for z < 0
// as (1 − cosh√−z)/z. C(0) = 1/2.
func StumpffC(z float64) float64 {
	switch {
	case math.Abs(z) < stumpffSeriesLimit:
		// Σ (−z)^k / (2k+2)!
		sum, term := 0.0, 0.5
		for k := 0; k < 8; k++ {
			sum += term
			term *= -z / float64((2*k+3)*(2*k+4))
		}
		return sum
	case z > 0:
		return (1 - math.Cos(math.Sqrt(z))) / z
	default:
		return (1 - math.Cosh(math.Sqrt(-z))) / z
	}
}

// StumpffS evaluates S(z) = (√z − sin√z)/z^{3/2}, continued analytically for
// z < 0 as (sinh√−z − √−z)/(−z)^{3/2}. S(0) = 1/6.
func StumpffS(z float64) float64 {
	switch {
	case math.Abs(z) < stumpffSeriesLimit:
		// Σ (−z)^k / (2k+3)!
		sum, term := 0.0, 1.0/6
		for k := 0; k < 8; k++ {
			sum += term
			term *= -z / float64((2*k+4)*(2*k+5))
		}
		return sum
	case z > 0:
		sz := math.Sqrt(z)
		return (sz - math.Sin(sz)) / (z * sz)
	default:
		sz := math.Sqrt(-z)
		return (math.Sinh(sz) - sz) / (-z * sz)
	}
}
