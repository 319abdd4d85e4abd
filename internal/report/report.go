// Package report renders orbit computations as plain-text tables and JSON
// for the headless CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/orbit"
)

const ruleWidth = 72

var titleStyle = lipgloss.NewStyle().Bold(true)

// Header names the central body a result was computed for.
type Header struct {
	Body  string // empty when μ was supplied directly
	Mu    float64
	Units bodies.Units
}

func (h Header) lengthUnit() string   { return h.Units.LengthLabel() }
func (h Header) velocityUnit() string { return h.Units.LengthLabel() + "/s" }

func (h Header) describe() string {
	body := h.Body
	if body == "" {
		body = "custom body"
	}
	return fmt.Sprintf("%s (μ = %.9g %s^3/s^2)", body, h.Mu, h.lengthUnit())
}

func writeTitle(w io.Writer, title string, h Header) {
	fmt.Fprintf(w, "%s @ %s\n", titleStyle.Render(title), h.describe())
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

func writeField(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-16s %s\n", name, value)
}

func writeState(w io.Writer, label string, s orbit.StateVector, h Header) {
	writeField(w, strings.TrimSpace(label+" r"), FormatVec(s.Position(), h.lengthUnit()))
	writeField(w, strings.TrimSpace(label+" v"), FormatVec(s.Velocity(), h.velocityUnit()))
}

// WritePropagation writes a propagation result.
func WritePropagation(w io.Writer, h Header, initial orbit.StateVector, dt float64, sol kepler.Solution) {
	writeTitle(w, "Propagation", h)
	writeField(w, "Conic", orbit.Classify(initial, h.Mu).String())
	writeField(w, "Δt", fmt.Sprintf("%.6f s (%s)", dt, FormatDuration(dt)))
	writeField(w, "χ", fmt.Sprintf("%.9g %s^½ (%d iterations)", sol.Anomaly, h.lengthUnit(), sol.Iterations))
	writeState(w, "Initial", initial, h)
	writeState(w, "Final", sol.State, h)
	writeField(w, "|r| final", FormatLength(sol.State.Radius(), h.lengthUnit()))
}

// WriteTimeOfFlight writes the time needed to reach target from initial.
func WriteTimeOfFlight(w io.Writer, h Header, initial orbit.StateVector, target astro.Vec3, dt float64) {
	writeTitle(w, "Time of flight", h)
	writeField(w, "Conic", orbit.Classify(initial, h.Mu).String())
	writeState(w, "Initial", initial, h)
	writeField(w, "Target r", FormatVec(target, h.lengthUnit()))
	writeField(w, "Δt", fmt.Sprintf("%.6f s (%s)", dt, FormatDuration(dt)))
}

// WriteAnomaly writes the time needed to sweep universal anomaly chi.
func WriteAnomaly(w io.Writer, h Header, initial orbit.StateVector, chi, dt float64) {
	writeTitle(w, "Universal time of flight", h)
	writeState(w, "Initial", initial, h)
	writeField(w, "χ", fmt.Sprintf("%.9g %s^½", chi, h.lengthUnit()))
	writeField(w, "Δt", fmt.Sprintf("%.6f s (%s)", dt, FormatDuration(dt)))
}

// WriteElements writes a classical element set with its derived quantities.
func WriteElements(w io.Writer, h Header, el orbit.ClassicalElements) {
	unit := h.lengthUnit()
	writeTitle(w, "Classical elements", h)
	writeField(w, "a", FormatLength(el.A, unit))
	writeField(w, "e", fmt.Sprintf("%.9f", el.E))
	writeField(w, "i", FormatAngle(el.I))
	writeField(w, "Ω", FormatAngle(el.RAAN))
	writeField(w, "ω", FormatAngle(el.ArgP))
	writeField(w, "ν", FormatAngle(el.Nu))
	writeField(w, "Geometry", el.Kind.String())
	writeField(w, "Periapsis", FormatLength(el.Periapsis(), unit))
	writeField(w, "Apoapsis", FormatLength(el.Apoapsis(), unit))
	writeField(w, "Period", FormatDuration(el.Period(h.Mu)))
}

// WriteState writes a single state vector.
func WriteState(w io.Writer, h Header, s orbit.StateVector) {
	writeTitle(w, "State vector", h)
	writeState(w, "", s, h)
	writeField(w, "Conic", orbit.Classify(s, h.Mu).String())
}

// WriteTrajectory writes sampled states as a table.
func WriteTrajectory(w io.Writer, h Header, samples []kepler.Sample) {
	writeTitle(w, "Trajectory", h)
	if len(samples) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}

	unit := h.lengthUnit()
	fmt.Fprintf(w, "%14s %16s %16s %16s %16s\n",
		"t [s]", "x ["+unit+"]", "y ["+unit+"]", "z ["+unit+"]", "|v| ["+unit+"/s]")
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth+10))
	for _, smp := range samples {
		r := smp.State.Position()
		fmt.Fprintf(w, "%14.3f %16.6f %16.6f %16.6f %16.6f\n", smp.T, r.X, r.Y, r.Z, smp.State.Speed())
	}
	fmt.Fprintf(w, "\nTotal: %d samples over %s\n", len(samples), FormatDuration(samples[len(samples)-1].T))
}

// WriteSweep writes samples of the universal time-of-flight curve.
func WriteSweep(w io.Writer, h Header, points []kepler.AnomalyPoint) {
	writeTitle(w, "Universal anomaly sweep", h)
	if len(points) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}
	fmt.Fprintf(w, "%18s %18s\n", "χ ["+h.lengthUnit()+"^½]", "Δt [s]")
	fmt.Fprintln(w, strings.Repeat("─", 38))
	for _, p := range points {
		fmt.Fprintf(w, "%18.6f %18.6f\n", p.Chi, p.Dt)
	}
}

// WriteBodies lists the bodies in a table.
func WriteBodies(w io.Writer, t bodies.Table) {
	fmt.Fprintf(w, "%s (%s^3/s^2)\n", titleStyle.Render("Central bodies"), t.Units().LengthLabel())
	fmt.Fprintln(w, strings.Repeat("─", 40))

	list := t.Bodies()
	if len(list) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}
	fmt.Fprintf(w, "%-12s %20s\n", "Body", "μ")
	for _, b := range list {
		fmt.Fprintf(w, "%-12s %20.9g\n", b.Name, b.Mu)
	}
}
