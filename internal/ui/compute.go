package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/orbit"
	"github.com/litescript/orbiter/internal/report"
	"github.com/litescript/orbiter/internal/state"
)

// resultMsg carries a finished computation back to the view that asked.
type resultMsg struct {
	view ViewMode
	text string
	err  error
}

// outcome is a rendered result plus a one-line summary for the history.
type outcome struct {
	text    string
	summary string
}

// parseVec parses three components separated by commas and/or spaces.
func parseVec(s string) (astro.Vec3, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(parts) != 3 {
		return astro.Vec3{}, fmt.Errorf("want 3 components, got %d in %q", len(parts), s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return astro.Vec3{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		c[i] = v
	}
	return astro.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// centralBody resolves the body and optional μ fields of f against table.
func centralBody(table bodies.Table, f form) (report.Header, error) {
	var mu float64
	if s := f.value(fieldMu); s != "" {
		v, err := parseFloat("mu", s)
		if err != nil {
			return report.Header{}, err
		}
		mu = v
	}
	name := f.value(fieldBody)
	resolved, err := table.Resolve(name, mu)
	if err != nil {
		return report.Header{}, err
	}
	if mu > 0 {
		name = ""
	}
	return report.Header{Body: name, Mu: resolved, Units: table.Units()}, nil
}

func parseState(f form) (orbit.StateVector, error) {
	r, err := parseVec(f.value(fieldR0))
	if err != nil {
		return orbit.StateVector{}, fmt.Errorf("r0: %w", err)
	}
	v, err := parseVec(f.value(fieldV0))
	if err != nil {
		return orbit.StateVector{}, fmt.Errorf("v0: %w", err)
	}
	return orbit.NewStateVector(r, v)
}

func runPropagate(p *kepler.Propagator, table bodies.Table, f form) (outcome, error) {
	h, err := centralBody(table, f)
	if err != nil {
		return outcome{}, err
	}
	s, err := parseState(f)
	if err != nil {
		return outcome{}, err
	}
	dt, err := parseFloat("dt", f.value(fieldDt))
	if err != nil {
		return outcome{}, err
	}
	sol, err := p.Solve(s, h.Mu, dt)
	if err != nil {
		return outcome{}, err
	}
	var b strings.Builder
	report.WritePropagation(&b, h, s, dt, sol)
	summary := fmt.Sprintf("Δt %s → |r| %s", report.FormatDuration(dt), report.FormatLength(sol.State.Radius(), h.Units.LengthLabel()))
	return outcome{text: b.String(), summary: summary}, nil
}

func runTimeOfFlight(table bodies.Table, f form) (outcome, error) {
	h, err := centralBody(table, f)
	if err != nil {
		return outcome{}, err
	}
	s, err := parseState(f)
	if err != nil {
		return outcome{}, err
	}
	target, err := parseVec(f.value(fieldRf))
	if err != nil {
		return outcome{}, fmt.Errorf("rf: %w", err)
	}
	dt, err := kepler.TimeOfFlight(s, target, h.Mu)
	if err != nil {
		return outcome{}, err
	}
	var b strings.Builder
	report.WriteTimeOfFlight(&b, h, s, target, dt)
	return outcome{text: b.String(), summary: fmt.Sprintf("Δt %.3f s (%s)", dt, report.FormatDuration(dt))}, nil
}

func runElements(table bodies.Table, f form) (outcome, error) {
	h, err := centralBody(table, f)
	if err != nil {
		return outcome{}, err
	}
	s, err := parseState(f)
	if err != nil {
		return outcome{}, err
	}
	el, err := orbit.ToElements(s, h.Mu)
	if err != nil {
		return outcome{}, err
	}
	var b strings.Builder
	report.WriteElements(&b, h, el)
	summary := fmt.Sprintf("a %s, e %.6f, i %s", report.FormatLength(el.A, h.Units.LengthLabel()), el.E, report.FormatAngle(el.I))
	return outcome{text: b.String(), summary: summary}, nil
}

// computeCmd runs fn off the update loop and records it in history.
func computeCmd(view ViewMode, history *state.Manager, fn func() (outcome, error)) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		out, err := fn()
		if history != nil {
			history.Record(state.Entry{
				Timestamp: start,
				Mode:      view.String(),
				Summary:   out.summary,
				Err:       err,
				Duration:  time.Since(start),
			})
		}
		return resultMsg{view: view, text: out.text, err: err}
	}
}
