package orbit

import "gonum.org/v1/gonum/floats/scalar"

// Conic is the trajectory family implied by a state's energy.
type Conic int

const (
	Elliptical Conic = iota
	Parabolic
	Hyperbolic
)

// EnergyTolerance bounds the dimensionless energy |ε|·|r|/μ treated as parabolic.
const EnergyTolerance = 1e-8

func (c Conic) String() string {
	switch c {
	case Elliptical:
		return "elliptical"
	case Parabolic:
		return "parabolic"
	case Hyperbolic:
		return "hyperbolic"
	default:
		return "unknown"
	}
}

// ClassifyEnergy resolves the conic for a specific energy observed at radius r.
// The energy is scaled by the local potential μ/r so the test does not depend
// on the unit system.
func ClassifyEnergy(energy, r, mu float64) Conic {
	switch {
	case scalar.EqualWithinAbs(energy*r/mu, 0, EnergyTolerance):
		return Parabolic
	case energy < 0:
		return Elliptical
	default:
		return Hyperbolic
	}
}

// Classify resolves the conic of the orbit through s.
func Classify(s StateVector, mu float64) Conic {
	return ClassifyEnergy(SpecificEnergy(s, mu), s.Radius(), mu)
}
