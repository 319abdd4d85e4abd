package kepler

import (
	"math"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/orbit"
)

// shape is the orbit geometry shared by the per-conic time-of-flight formulas.
type shape struct {
	mu float64
	e  float64
	p  float64 // semi-latus rectum h²/μ
	a  float64 // −μ/(2ε); meaningless for parabolas
}

// TimeOfFlight returns the time needed to travel from s to the position
// target along the orbit implied by s. target must lie on that orbit.
//
// Elliptical results are always the forward time in [0, period). Parabolic
// and hyperbolic results are negative when target precedes s on the
// trajectory, since an open orbit never comes back round.
func TimeOfFlight(s orbit.StateVector, target astro.Vec3, mu float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := orbit.ValidateMu(mu); err != nil {
		return 0, err
	}
	if !target.IsFinite() || target.Norm() == 0 {
		return 0, errInvalidf("target position %v must be finite and non-zero", target)
	}

	h := orbit.AngularMomentum(s)
	if h.Norm() == 0 {
		return 0, errInvalidf("rectilinear trajectory has no true anomaly")
	}

	eVec := orbit.EccentricityVector(s, mu)
	energy := orbit.SpecificEnergy(s, mu)
	sh := shape{
		mu: mu,
		e:  eVec.Norm(),
		p:  h.Dot(h) / mu,
		a:  -mu / (2 * energy),
	}

	// A circular orbit has no periapsis; measure anomalies from s instead.
	ref := eVec
	if sh.e < orbit.DegenerateTolerance {
		ref = s.Position()
	}
	nu0 := anomalyFrom(ref, s.Position(), h)
	nuF := anomalyFrom(ref, target, h)

	switch orbit.ClassifyEnergy(energy, s.Radius(), mu) {
	case orbit.Parabolic:
		return parabolicTOF(sh, nu0, nuF), nil
	case orbit.Elliptical:
		return ellipticTOF(sh, nu0, nuF), nil
	default:
		return hyperbolicTOF(sh, nu0, nuF)
	}
}

// anomalyFrom returns the angle from ref to r in [0, 2π), positive in the
// direction of motion given by h.
func anomalyFrom(ref, r, h astro.Vec3) float64 {
	nu := ref.Angle(r)
	if ref.Cross(r).Dot(h) < 0 {
		nu = astro.TwoPi - nu
	}
	return astro.NormalizeAngle(nu)
}

// eccentricAnomaly converts a true anomaly to the eccentric anomaly in [0, 2π).
func eccentricAnomaly(nu, e float64) float64 {
	s, c := math.Sincos(nu / 2)
	return 2 * math.Atan2(math.Sqrt(1-e)*s, math.Sqrt(1+e)*c)
}

// hyperbolicAnomaly converts a true anomaly to the hyperbolic anomaly. ok is
// false when nu lies on or beyond the asymptote.
func hyperbolicAnomaly(nu, e float64) (f float64, ok bool) {
	x := math.Sqrt((e-1)/(e+1)) * math.Tan(nu/2)
	if !(math.Abs(x) < 1) {
		return 0, false
	}
	return 2 * math.Atanh(x), true
}

// ellipticTOF is Kepler's equation between two true anomalies, wrapped to the
// forward direction.
func ellipticTOF(sh shape, nu0, nuF float64) float64 {
	n := math.Sqrt(sh.a * sh.a * sh.a / sh.mu)
	e0 := eccentricAnomaly(nu0, sh.e)
	eF := eccentricAnomaly(nuF, sh.e)

	dt := n * ((eF - e0) - sh.e*(math.Sin(eF)-math.Sin(e0)))
	if dt < 0 {
		dt += astro.TwoPi * n
	}
	return dt
}

// parabolicTOF is Barker's equation, with D = tan(ν/2) and p = h²/μ = 2·rp:
//
//	Δt = ½·√(p³/μ)·[(D_f + D_f³/3) − (D_0 + D_0³/3)]
func parabolicTOF(sh shape, nu0, nuF float64) float64 {
	barker := func(nu float64) float64 {
		d := math.Tan(nu / 2)
		return d + d*d*d/3
	}
	return 0.5 * math.Sqrt(sh.p*sh.p*sh.p/sh.mu) * (barker(nuF) - barker(nu0))
}

// hyperbolicTOF is the hyperbolic Kepler equation between two true anomalies.
func hyperbolicTOF(sh shape, nu0, nuF float64) (float64, error) {
	f0, ok0 := hyperbolicAnomaly(nu0, sh.e)
	fF, okF := hyperbolicAnomaly(nuF, sh.e)
	if !ok0 || !okF {
		return 0, ErrUnreachable
	}
	na := -sh.a
	n := math.Sqrt(na * na * na / sh.mu)
	return n * (sh.e*(math.Sinh(fF)-math.Sinh(f0)) - (fF - f0)), nil
}
