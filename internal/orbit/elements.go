package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/litescript/orbiter/internal/astro"
)

// DegenerateTolerance is the eccentricity, and the sine of inclination, below
// which an orbit is treated as circular or equatorial.
const DegenerateTolerance = 1e-9

// Singularity records which angle convention ToElements applied.
type Singularity int

const (
	// Regular orbits have all six elements defined.
	Regular Singularity = iota
	// CircularInclined: ω = 0 and ν holds the argument of latitude.
	CircularInclined
	// EllipticEquatorial: Ω = 0 and ω holds the longitude of periapsis.
	EllipticEquatorial
	// CircularEquatorial: Ω = ω = 0 and ν holds the true longitude.
	CircularEquatorial
)

func (s Singularity) String() string {
	switch s {
	case Regular:
		return "regular"
	case CircularInclined:
		return "circular inclined"
	case EllipticEquatorial:
		return "equatorial"
	case CircularEquatorial:
		return "circular equatorial"
	default:
		return "unknown"
	}
}

// ClassicalElements is the Keplerian element set of an orbit. Angles are in
// radians.
type ClassicalElements struct {
	A    float64 // semi-major axis, negative for hyperbolas, +Inf for parabolas
	E    float64 // eccentricity
	I    float64 // inclination in [0, π]
	RAAN float64 // right ascension of the ascending node in [0, 2π)
	ArgP float64 // argument of periapsis in [0, 2π)
	Nu   float64 // true anomaly in [0, 2π)
	Kind Singularity
}

// SemiLatusRectum returns p = a(1 − e²).
func (el ClassicalElements) SemiLatusRectum() float64 {
	return el.A * (1 - el.E*el.E)
}

// Periapsis returns the periapsis radius a(1 − e).
func (el ClassicalElements) Periapsis() float64 {
	return el.A * (1 - el.E)
}

// Apoapsis returns the apoapsis radius a(1 + e), or +Inf for open orbits.
func (el ClassicalElements) Apoapsis() float64 {
	if el.E >= 1 {
		return math.Inf(1)
	}
	return el.A * (1 + el.E)
}

// Period returns 2π√(a³/μ), or +Inf for open orbits.
func (el ClassicalElements) Period(mu float64) float64 {
	if el.A <= 0 || math.IsInf(el.A, 0) {
		return math.Inf(1)
	}
	return astro.TwoPi * math.Sqrt(el.A*el.A*el.A/mu)
}

func (el ClassicalElements) String() string {
	return fmt.Sprintf("a=%.6g e=%.6g i=%.4f° Ω=%.4f° ω=%.4f° ν=%.4f°",
		el.A, el.E, astro.RadToDeg(el.I), astro.RadToDeg(el.RAAN),
		astro.RadToDeg(el.ArgP), astro.RadToDeg(el.Nu))
}

// ToElements converts a Cartesian state to classical elements.
//
// Circular and equatorial orbits do not define every angle. In those cases
// the undefined angle is set to zero and the remaining angle absorbs it, as
// recorded in Kind. ToState reads the same convention.
func ToElements(s StateVector, mu float64) (ClassicalElements, error) {
	if err := s.Validate(); err != nil {
		return ClassicalElements{}, err
	}
	if err := ValidateMu(mu); err != nil {
		return ClassicalElements{}, err
	}

	r, v := s.r, s.v
	h := r.Cross(v)
	hNorm := h.Norm()
	if hNorm == 0 {
		return ClassicalElements{}, fmt.Errorf("%w: rectilinear trajectory has no orbital plane", ErrInvalidInput)
	}

	// node vector ẑ × h
	n := astro.Vec3{X: -h.Y, Y: h.X}
	nNorm := n.Norm()

	inc := math.Atan2(nNorm, h.Z)

	eVec := EccentricityVector(s, mu)
	e := eVec.Norm()

	a := 1 / InverseSemiMajorAxis(s, mu)

	circular := e < DegenerateTolerance
	equatorial := nNorm/hNorm < DegenerateTolerance

	// In-plane angles measured from +X in an equatorial orbit run the other
	// way round when the orbit is retrograde.
	sense := 1.0
	if h.Z < 0 {
		sense = -1
	}

	el := ClassicalElements{A: a, E: e, I: inc}

	switch {
	case circular && equatorial:
		el.Kind = CircularEquatorial
		el.Nu = math.Atan2(sense*r.Y, r.X)

	case circular:
		el.Kind = CircularInclined
		el.RAAN = math.Atan2(n.Y, n.X)
		el.Nu = n.Angle(r)
		if r.Z < 0 {
			el.Nu = astro.TwoPi - el.Nu
		}

	case equatorial:
		el.Kind = EllipticEquatorial
		el.ArgP = math.Atan2(sense*eVec.Y, eVec.X)
		el.Nu = trueAnomaly(eVec, r, v)

	default:
		el.RAAN = math.Atan2(n.Y, n.X)
		el.ArgP = n.Angle(eVec)
		if eVec.Z < 0 {
			el.ArgP = astro.TwoPi - el.ArgP
		}
		el.Nu = trueAnomaly(eVec, r, v)
	}

	el.RAAN = astro.NormalizeAngle(el.RAAN)
	el.ArgP = astro.NormalizeAngle(el.ArgP)
	el.Nu = astro.NormalizeAngle(el.Nu)
	return el, nil
}

// trueAnomaly measures r from periapsis; r·v < 0 means the body is inbound.
func trueAnomaly(eVec, r, v astro.Vec3) float64 {
	nu := eVec.Angle(r)
	if r.Dot(v) < 0 {
		nu = astro.TwoPi - nu
	}
	return nu
}

// ToState converts classical elements back to a Cartesian state by building
// the perifocal state from (a, e, ν) and rotating it through (Ω, i, ω).
//
// Parabolic element sets are rejected because a does not determine the
// orbit's size when e = 1.
func ToState(el ClassicalElements, mu float64) (StateVector, error) {
	if err := ValidateMu(mu); err != nil {
		return StateVector{}, err
	}
	if err := el.validate(); err != nil {
		return StateVector{}, err
	}

	p := el.SemiLatusRectum()
	sinNu, cosNu := math.Sincos(el.Nu)
	denom := 1 + el.E*cosNu
	if denom <= 0 {
		return StateVector{}, fmt.Errorf("%w: true anomaly %.6g rad lies beyond the hyperbola's asymptote", ErrInvalidInput, el.Nu)
	}

	rPQW := astro.Vec3{X: p * cosNu / denom, Y: p * sinNu / denom}
	k := math.Sqrt(mu / p)
	vPQW := astro.Vec3{X: -k * sinNu, Y: k * (el.E + cosNu)}

	rot := astro.PerifocalToInertial(el.RAAN, el.I, el.ArgP)
	return NewStateVector(rot.Apply(rPQW), rot.Apply(vPQW))
}

func (el ClassicalElements) validate() error {
	for _, x := range []float64{el.E, el.I, el.RAAN, el.ArgP, el.Nu} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: non-finite element in %v", ErrInvalidInput, el)
		}
	}
	if math.IsNaN(el.A) || el.A == 0 {
		return fmt.Errorf("%w: semi-major axis %v", ErrInvalidInput, el.A)
	}
	if el.E < 0 {
		return fmt.Errorf("%w: eccentricity %v is negative", ErrInvalidInput, el.E)
	}
	if scalar.EqualWithinAbs(el.E, 1, DegenerateTolerance) || math.IsInf(el.A, 0) {
		return fmt.Errorf("%w: parabolic element set cannot be converted from a", ErrInvalidInput)
	}
	if el.E < 1 && el.A < 0 {
		return fmt.Errorf("%w: elliptical orbit (e=%v) needs a > 0, got %v", ErrInvalidInput, el.E, el.A)
	}
	if el.E > 1 && el.A > 0 {
		return fmt.Errorf("%w: hyperbolic orbit (e=%v) needs a < 0, got %v", ErrInvalidInput, el.E, el.A)
	}
	if el.I < 0 || el.I > math.Pi {
		return fmt.Errorf("%w: inclination %v outside [0, π]", ErrInvalidInput, el.I)
	}
	angles := []struct {
		name  string
		value float64
	}{
		{"RAAN", el.RAAN},
		{"argument of periapsis", el.ArgP},
		{"true anomaly", el.Nu},
	}
	for _, a := range angles {
		if a.value < 0 || a.value >= astro.TwoPi {
			return fmt.Errorf("%w: %s %v outside [0, 2π)", ErrInvalidInput, a.name, a.value)
		}
	}
	return nil
}
