package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/logging"
	"github.com/litescript/orbiter/internal/orbit"
	"github.com/litescript/orbiter/internal/report"
	"github.com/litescript/orbiter/internal/version"
)

// runHeadless executes one mode and writes its result to w.
func runHeadless(ctx context.Context, opts options, w io.Writer, logger *logging.Logger) error {
	if opts.mode == "version" {
		fmt.Fprintf(w, "orbiter v%s\n", version.Version)
		return nil
	}

	table, prop, err := setup(opts, logger)
	if err != nil {
		return err
	}
	if opts.mode == "bodies" {
		report.WriteBodies(w, table)
		return nil
	}

	h, err := header(table, opts)
	if err != nil {
		return err
	}
	logger.Debug("mode %s, mu %.9g %s^3/s^2", opts.mode, h.Mu, h.Units.LengthLabel())

	switch opts.mode {
	case "propagate":
		return runPropagate(prop, h, opts, w)
	case "tof":
		return runTimeOfFlight(h, opts, w)
	case "chi":
		return runAnomaly(h, opts, w)
	case "elements":
		return runElements(h, opts, w)
	case "state":
		return runState(h, opts, w)
	case "trajectory":
		return runTrajectory(ctx, prop, h, opts, w)
	case "sweep":
		return runSweep(h, opts, w)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func header(table bodies.Table, opts options) (report.Header, error) {
	mu, err := table.Resolve(opts.body, opts.mu)
	if err != nil {
		return report.Header{}, err
	}
	h := report.Header{Body: opts.body, Mu: mu, Units: table.Units()}
	if opts.mu > 0 {
		h.Body = ""
	}
	return h, nil
}

func runPropagate(prop *kepler.Propagator, h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	sol, err := prop.Solve(s, h.Mu, opts.dt)
	if err != nil {
		return fmt.Errorf("propagate: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithSolution(opts.dt, sol).WriteJSON(w)
	}
	report.WritePropagation(w, h, s, opts.dt, sol)
	return nil
}

func runTimeOfFlight(h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	target, err := parseVec("rf", opts.rf)
	if err != nil {
		return err
	}
	dt, err := kepler.TimeOfFlight(s, target, h.Mu)
	if err != nil {
		return fmt.Errorf("time of flight: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithTimeOfFlight(target, dt).WriteJSON(w)
	}
	report.WriteTimeOfFlight(w, h, s, target, dt)
	return nil
}

func runAnomaly(h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	dt, err := kepler.TimeOfFlightForAnomaly(opts.chi, s, h.Mu)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithAnomaly(opts.chi, dt).WriteJSON(w)
	}
	report.WriteAnomaly(w, h, s, opts.chi, dt)
	return nil
}

func runElements(h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	el, err := orbit.ToElements(s, h.Mu)
	if err != nil {
		return fmt.Errorf("elements: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithElements(el).WriteJSON(w)
	}
	report.WriteElements(w, h, el)
	return nil
}

func runState(h report.Header, opts options, w io.Writer) error {
	el, err := parseElements(opts.elements)
	if err != nil {
		return err
	}
	s, err := orbit.ToState(el, h.Mu)
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithElements(el).WithInitial(s).WriteJSON(w)
	}
	report.WriteState(w, h, s)
	return nil
}

func runTrajectory(ctx context.Context, prop *kepler.Propagator, h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	samples, err := prop.Trajectory(ctx, s, h.Mu, opts.dt, opts.steps, opts.workers)
	if err != nil {
		return fmt.Errorf("trajectory: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithTrajectory(samples).WriteJSON(w)
	}
	report.WriteTrajectory(w, h, samples)
	return nil
}

func runSweep(h report.Header, opts options, w io.Writer) error {
	s, err := initialState(opts)
	if err != nil {
		return err
	}
	points, err := kepler.SweepAnomaly(s, h.Mu, 0, opts.chi, opts.steps+1)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	if opts.jsonOut {
		return report.NewExport(opts.mode, h).WithInitial(s).WithSweep(points).WriteJSON(w)
	}
	report.WriteSweep(w, h, points)
	return nil
}

func initialState(opts options) (orbit.StateVector, error) {
	r, err := parseVec("r0", opts.r0)
	if err != nil {
		return orbit.StateVector{}, err
	}
	v, err := parseVec("v0", opts.v0)
	if err != nil {
		return orbit.StateVector{}, err
	}
	return orbit.NewStateVector(r, v)
}

func parseFloats(name, s string, n int) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != n {
		return nil, fmt.Errorf("-%s: want %d comma-separated values, got %q", name, n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseVec(name, s string) (astro.Vec3, error) {
	c, err := parseFloats(name, s, 3)
	if err != nil {
		return astro.Vec3{}, err
	}
	return astro.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseElements reads a,e,i,raan,argp,nu with angles in degrees.
func parseElements(s string) (orbit.ClassicalElements, error) {
	c, err := parseFloats("elements", s, 6)
	if err != nil {
		return orbit.ClassicalElements{}, err
	}
	return orbit.ClassicalElements{
		A:    c[0],
		E:    c[1],
		I:    astro.DegToRad(c[2]),
		RAAN: astro.NormalizeAngle(astro.DegToRad(c[3])),
		ArgP: astro.NormalizeAngle(astro.DegToRad(c[4])),
		Nu:   astro.NormalizeAngle(astro.DegToRad(c[5])),
	}, nil
}
