package kepler

import (
	"math"

	"github.com/litescript/orbiter/internal/orbit"
)

// universal holds the per-state constants of the universal Kepler equation
//
//	√μ·Δt = (r0·vr0/√μ)·χ²·C(αχ²) + (1 − α·r0)·χ³·S(αχ²) + r0·χ
type universal struct {
	r0     float64 // |r0|
	sigma  float64 // r0·vr0/√μ, i.e. (r0·v0)/√μ
	alpha  float64 // 2/r0 − v0²/μ
	sqrtMu float64
}

func newUniversal(s orbit.StateVector, mu float64) universal {
	r0 := s.Radius()
	sqrtMu := math.Sqrt(mu)
	return universal{
		r0:     r0,
		sigma:  r0 * s.RadialVelocity() / sqrtMu,
		alpha:  orbit.InverseSemiMajorAxis(s, mu),
		sqrtMu: sqrtMu,
	}
}

// scaledTime returns √μ·Δt(χ) and its derivative with respect to χ, which is
// the radius reached at χ.
func (u universal) scaledTime(chi float64) (t, dt float64) {
	chi2 := chi * chi
	z := u.alpha * chi2
	c, s := StumpffC(z), StumpffS(z)

	t = u.sigma*chi2*c + (1-u.alpha*u.r0)*chi2*chi*s + u.r0*chi
	dt = u.sigma*chi*(1-z*s) + (1-u.alpha*u.r0)*chi2*c + u.r0

	// Far out on a hyperbola C and S overflow, and 0·Inf or Inf−Inf leave
	// NaN. The curve rises with slope r > 0 through t(0) = 0, so its ends
	// are ±Inf.
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = math.Copysign(math.Inf(1), chi)
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = math.Inf(1)
	}
	return t, dt
}

// TimeOfFlightForAnomaly evaluates the universal Kepler equation: the time
// needed to sweep universal anomaly chi starting from state s. It is the
// forward map that Propagator inverts. chi carries units of √length.
// Anomalies beyond floating-point range on a hyperbola yield ±Inf.
func TimeOfFlightForAnomaly(chi float64, s orbit.StateVector, mu float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := orbit.ValidateMu(mu); err != nil {
		return 0, err
	}
	if math.IsNaN(chi) || math.IsInf(chi, 0) {
		return 0, errInvalidf("anomaly must be finite, got %v", chi)
	}
	u := newUniversal(s, mu)
	t, _ := u.scaledTime(chi)
	return t / u.sqrtMu, nil
}

// AnomalyPoint is one sample of the universal time-of-flight curve.
type AnomalyPoint struct {
	Chi float64 `json:"chi"`
	Dt  float64 `json:"dt_s"`
}

// SweepAnomaly samples the universal time-of-flight curve at n evenly spaced
// anomalies in [from, to], for plotting or for seeding other root finders.
func SweepAnomaly(s orbit.StateVector, mu, from, to float64, n int) ([]AnomalyPoint, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := orbit.ValidateMu(mu); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, errInvalidf("sweep needs at least 2 points, got %d", n)
	}
	if math.IsNaN(from) || math.IsInf(from, 0) || math.IsNaN(to) || math.IsInf(to, 0) {
		return nil, errInvalidf("sweep bounds must be finite, got [%v, %v]", from, to)
	}

	u := newUniversal(s, mu)
	points := make([]AnomalyPoint, n)
	step := (to - from) / float64(n-1)
	for i := range points {
		chi := from + float64(i)*step
		t, _ := u.scaledTime(chi)
		points[i] = AnomalyPoint{Chi: chi, Dt: t / u.sqrtMu}
	}
	return points, nil
}
