package kepler

import (
	"fmt"
	"math"

	"github.com/litescript/orbiter/internal/logging"
	"github.com/litescript/orbiter/internal/orbit"
)

// Config controls the Newton solve for the universal anomaly.
type Config struct {
	// Tolerance is the stopping threshold on the Newton step |F/F'|, in the
	// units of χ (√length). It is absolute: far-field hyperbolic states whose
	// residual terms reach ~1e20 cannot settle below it and fail with
	// ErrNoConvergence rather than return a loose answer.
	Tolerance float64
	// MaxIterations is the hard stop for the solve.
	MaxIterations int
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-8,
		MaxIterations: 1000,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return errInvalidf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return errInvalidf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithLogger routes solver diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(p *Propagator) {
		if l != nil {
			p.log = l
		}
	}
}

// Propagator advances two-body states with the universal-variable
// formulation. It holds no mutable state and is safe for concurrent use.
type Propagator struct {
	cfg Config
	log *logging.Logger
}

// NewPropagator creates a propagator with the given configuration.
func NewPropagator(cfg Config, opts ...Option) (*Propagator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Propagator{cfg: cfg, log: logging.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the propagator's configuration.
func (p *Propagator) Config() Config {
	return p.cfg
}

// Solution is a converged propagation.
type Solution struct {
	State      orbit.StateVector
	Anomaly    float64 // universal anomaly χ swept over the span
	Iterations int     // Newton iterations used
}

// Propagate advances s by dt (negative dt propagates backward) around a body
// with gravitational parameter mu.
func (p *Propagator) Propagate(s orbit.StateVector, mu, dt float64) (orbit.StateVector, error) {
	sol, err := p.Solve(s, mu, dt)
	if err != nil {
		return orbit.StateVector{}, err
	}
	return sol.State, nil
}

// Propagate advances s by dt with DefaultConfig.
func Propagate(s orbit.StateVector, mu, dt float64) (orbit.StateVector, error) {
	p, err := NewPropagator(DefaultConfig())
	if err != nil {
		return orbit.StateVector{}, err
	}
	return p.Propagate(s, mu, dt)
}

// Solve advances s by dt and reports the anomaly and iteration count.
func (p *Propagator) Solve(s orbit.StateVector, mu, dt float64) (Solution, error) {
	if err := s.Validate(); err != nil {
		return Solution{}, err
	}
	if err := orbit.ValidateMu(mu); err != nil {
		return Solution{}, err
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return Solution{}, errInvalidf("time span must be finite, got %v", dt)
	}
	if dt == 0 {
		return Solution{State: s}, nil
	}

	u := newUniversal(s, mu)
	chi, seed := u.seed(s, mu, dt)
	p.log.Debug("dt=%.6g alpha=%.6g seed %s chi0=%.9g", dt, u.alpha, seed, chi)

	target := u.sqrtMu * dt
	var step float64
	for it := 1; it <= p.cfg.MaxIterations; it++ {
		t, dtdchi := u.scaledTime(chi)
		step = (t - target) / dtdchi
		chi -= step

		if math.IsNaN(chi) || math.IsInf(chi, 0) {
			p.log.Warn("non-finite iterate after %d iterations", it)
			return Solution{}, &ConvergenceError{Iterations: it, Anomaly: chi, Step: math.Abs(step), Tolerance: p.cfg.Tolerance}
		}
		if math.Abs(step) < p.cfg.Tolerance {
			p.log.Debug("converged chi=%.12g in %d iterations", chi, it)
			state, err := u.lagrange(s, chi, dt)
			if err != nil {
				return Solution{}, err
			}
			return Solution{State: state, Anomaly: chi, Iterations: it}, nil
		}
	}

	p.log.Warn("no convergence after %d iterations (last step %.3g)", p.cfg.MaxIterations, math.Abs(step))
	return Solution{}, &ConvergenceError{
		Iterations: p.cfg.MaxIterations,
		Anomaly:    chi,
		Step:       math.Abs(step),
		Tolerance:  p.cfg.Tolerance,
	}
}

type seedKind string

const (
	seedElliptic   seedKind = "elliptic"
	seedParabolic  seedKind = "parabolic"
	seedHyperbolic seedKind = "hyperbolic"
)

// seed returns the starting χ for the Newton solve.
func (u universal) seed(s orbit.StateVector, mu, dt float64) (float64, seedKind) {
	// α·r0 = −2·ε·r0/μ, the same dimensionless energy orbit.ClassifyEnergy uses.
	switch {
	case u.alpha*u.r0 >= orbit.EnergyTolerance:
		return u.sqrtMu * dt * u.alpha, seedElliptic

	case u.alpha*u.r0 <= -orbit.EnergyTolerance:
		a := 1 / u.alpha
		rv := s.Position().Dot(s.Velocity())
		k := math.Sqrt(-mu*a) * (1 - u.r0*u.alpha)
		num := -2 * mu * u.alpha * dt

		// The logarithm's argument keeps its sign only when the √(−μa) term
		// follows the direction of time, so the two directions stay separate.
		var chi float64
		if dt > 0 {
			chi = math.Sqrt(-a) * math.Log(num/(rv+k))
		} else {
			chi = -math.Sqrt(-a) * math.Log(num/(rv-k))
		}
		if !math.IsNaN(chi) && !math.IsInf(chi, 0) {
			return chi, seedHyperbolic
		}
	}

	// Near-parabolic, or a hyperbolic seed that left the log's domain:
	// r0·χ ≈ √μ·Δt to first order.
	return u.sqrtMu * dt / u.r0, seedParabolic
}

// lagrange builds the propagated state from the converged anomaly.
func (u universal) lagrange(s orbit.StateVector, chi, dt float64) (orbit.StateVector, error) {
	r0, v0 := s.Position(), s.Velocity()
	chi2 := chi * chi
	z := u.alpha * chi2
	c, sz := StumpffC(z), StumpffS(z)

	f := 1 - chi2*c/u.r0
	g := dt - chi2*chi*sz/u.sqrtMu
	r := r0.Scale(f).Add(v0.Scale(g))
	rNorm := r.Norm()

	fdot := u.sqrtMu / (u.r0 * rNorm) * chi * (z*sz - 1)
	gdot := 1 - chi2*c/rNorm
	v := r0.Scale(fdot).Add(v0.Scale(gdot))

	state, err := orbit.NewStateVector(r, v)
	if err != nil {
		// Only a rectilinear trajectory can reach the centre of attraction.
		return orbit.StateVector{}, fmt.Errorf("trajectory reaches the central body: %w", err)
	}
	return state, nil
}

func errInvalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", orbit.ErrInvalidInput, fmt.Sprintf(format, args...))
}
