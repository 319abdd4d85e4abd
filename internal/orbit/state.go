// Package orbit models two-body Cartesian states and classical orbital elements
// and converts between them.
//
// All quantities are unit-agnostic: position, velocity, μ and time must be
// supplied in one consistent unit system per call.
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/orbiter/internal/astro"
)

// ErrInvalidInput marks inputs rejected before any computation runs.
var ErrInvalidInput = errors.New("invalid input")

// StateVector is an instantaneous Cartesian state relative to the central body.
// It is immutable; operations return new states.
type StateVector struct {
	r astro.Vec3
	v astro.Vec3
}

// NewStateVector validates and builds a state. The position must be finite
// and non-zero; the velocity must be finite.
func NewStateVector(position, velocity astro.Vec3) (StateVector, error) {
	s := StateVector{r: position, v: velocity}
	if err := s.Validate(); err != nil {
		return StateVector{}, err
	}
	return s, nil
}

// MustStateVector is like NewStateVector but panics on invalid input.
// Intended for literals in tests and examples.
func MustStateVector(position, velocity astro.Vec3) StateVector {
	s, err := NewStateVector(position, velocity)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate reports whether the state can be used. The zero StateVector is invalid.
func (s StateVector) Validate() error {
	if !s.r.IsFinite() || !s.v.IsFinite() {
		return fmt.Errorf("%w: non-finite state %v %v", ErrInvalidInput, s.r, s.v)
	}
	if s.r.Norm() == 0 {
		return fmt.Errorf("%w: zero-norm position", ErrInvalidInput)
	}
	return nil
}

// Position returns the position vector.
func (s StateVector) Position() astro.Vec3 { return s.r }

// Velocity returns the velocity vector.
func (s StateVector) Velocity() astro.Vec3 { return s.v }

// Radius returns |r|.
func (s StateVector) Radius() float64 { return s.r.Norm() }

// Speed returns |v|.
func (s StateVector) Speed() float64 { return s.v.Norm() }

// RadialVelocity returns (r·v)/|r|, positive when moving away from the body.
func (s StateVector) RadialVelocity() float64 {
	return s.r.Dot(s.v) / s.r.Norm()
}

func (s StateVector) String() string {
	return fmt.Sprintf("r=[%.6g %.6g %.6g] v=[%.6g %.6g %.6g]",
		s.r.X, s.r.Y, s.r.Z, s.v.X, s.v.Y, s.v.Z)
}

// ValidateMu checks a gravitational parameter.
func ValidateMu(mu float64) error {
	if !(mu > 0) || math.IsInf(mu, 0) {
		return fmt.Errorf("%w: gravitational parameter must be positive and finite, got %v", ErrInvalidInput, mu)
	}
	return nil
}

// SpecificEnergy returns ε = |v|²/2 − μ/|r|.
func SpecificEnergy(s StateVector, mu float64) float64 {
	v := s.v.Norm()
	return v*v/2 - mu/s.r.Norm()
}

// AngularMomentum returns h = r × v.
func AngularMomentum(s StateVector) astro.Vec3 {
	return s.r.Cross(s.v)
}

// EccentricityVector returns e = (v × h)/μ − r/|r|, pointing at periapsis.
func EccentricityVector(s StateVector, mu float64) astro.Vec3 {
	h := AngularMomentum(s)
	return s.v.Cross(h).Scale(1 / mu).Sub(s.r.Scale(1 / s.r.Norm()))
}

// InverseSemiMajorAxis returns α = 2/|r| − |v|²/μ. Positive for ellipses,
// zero for parabolas and negative for hyperbolas.
func InverseSemiMajorAxis(s StateVector, mu float64) float64 {
	v := s.v.Norm()
	return 2/s.r.Norm() - v*v/mu
}
