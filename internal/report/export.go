package report

import (
	"encoding/json"
	"io"
	"math"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/orbit"
)

// StateExport is a JSON-friendly state vector.
type StateExport struct {
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// ElementsExport is a JSON-friendly element set, angles in degrees.
// Period and Apoapsis are omitted for open orbits.
type ElementsExport struct {
	A         float64  `json:"a"`
	E         float64  `json:"e"`
	IDeg      float64  `json:"i_deg"`
	RAANDeg   float64  `json:"raan_deg"`
	ArgPDeg   float64  `json:"argp_deg"`
	NuDeg     float64  `json:"nu_deg"`
	Geometry  string   `json:"geometry"`
	Periapsis float64  `json:"periapsis"`
	Apoapsis  *float64 `json:"apoapsis,omitempty"`
	Period    *float64 `json:"period_s,omitempty"`
}

// SampleExport is one trajectory sample.
type SampleExport struct {
	T     float64     `json:"t"`
	State StateExport `json:"state"`
}

// Export is the JSON document written by the CLI. Only the fields relevant
// to the mode are set.
type Export struct {
	Mode       string                `json:"mode"`
	Body       string                `json:"body,omitempty"`
	Mu         float64               `json:"mu"`
	Units      string                `json:"units"`
	Conic      string                `json:"conic,omitempty"`
	Initial    *StateExport          `json:"initial,omitempty"`
	Final      *StateExport          `json:"final,omitempty"`
	Target     *[3]float64           `json:"target,omitempty"`
	Dt         *float64              `json:"dt_s,omitempty"`
	Anomaly    *float64              `json:"chi,omitempty"`
	Iterations int                   `json:"iterations,omitempty"`
	Elements   *ElementsExport       `json:"elements,omitempty"`
	Trajectory []SampleExport        `json:"trajectory,omitempty"`
	Sweep      []kepler.AnomalyPoint `json:"sweep,omitempty"`
}

// NewExport starts an export for mode.
func NewExport(mode string, h Header) *Export {
	return &Export{Mode: mode, Body: h.Body, Mu: h.Mu, Units: string(h.Units)}
}

// WithInitial records the initial state and its conic.
func (e *Export) WithInitial(s orbit.StateVector) *Export {
	st := ExportState(s)
	e.Initial = &st
	e.Conic = orbit.Classify(s, e.Mu).String()
	return e
}

// WithSolution records a propagation result.
func (e *Export) WithSolution(dt float64, sol kepler.Solution) *Export {
	st := ExportState(sol.State)
	e.Final = &st
	e.Dt = &dt
	e.Anomaly = &sol.Anomaly
	e.Iterations = sol.Iterations
	return e
}

// WithTimeOfFlight records a target position and the time to reach it.
func (e *Export) WithTimeOfFlight(target astro.Vec3, dt float64) *Export {
	t := [3]float64{target.X, target.Y, target.Z}
	e.Target = &t
	e.Dt = &dt
	return e
}

// WithAnomaly records a universal anomaly and its time of flight.
func (e *Export) WithAnomaly(chi, dt float64) *Export {
	e.Anomaly = &chi
	e.Dt = &dt
	return e
}

// WithElements records a classical element set.
func (e *Export) WithElements(el orbit.ClassicalElements) *Export {
	ex := ExportElements(el, e.Mu)
	e.Elements = &ex
	return e
}

// WithTrajectory records trajectory samples.
func (e *Export) WithTrajectory(samples []kepler.Sample) *Export {
	e.Trajectory = make([]SampleExport, len(samples))
	for i, smp := range samples {
		e.Trajectory[i] = SampleExport{T: smp.T, State: ExportState(smp.State)}
	}
	return e
}

// WithSweep records universal time-of-flight samples.
func (e *Export) WithSweep(points []kepler.AnomalyPoint) *Export {
	e.Sweep = points
	return e
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// ExportState converts a state vector.
func ExportState(s orbit.StateVector) StateExport {
	r, v := s.Position(), s.Velocity()
	return StateExport{
		Position: [3]float64{r.X, r.Y, r.Z},
		Velocity: [3]float64{v.X, v.Y, v.Z},
	}
}

// ExportElements converts an element set. mu is needed for the period.
func ExportElements(el orbit.ClassicalElements, mu float64) ElementsExport {
	ex := ElementsExport{
		A:         el.A,
		E:         el.E,
		IDeg:      astro.RadToDeg(el.I),
		RAANDeg:   astro.RadToDeg(el.RAAN),
		ArgPDeg:   astro.RadToDeg(el.ArgP),
		NuDeg:     astro.RadToDeg(el.Nu),
		Geometry:  el.Kind.String(),
		Periapsis: el.Periapsis(),
	}
	// encoding/json cannot represent infinities.
	if ra := el.Apoapsis(); !math.IsInf(ra, 0) {
		ex.Apoapsis = &ra
	}
	if period := el.Period(mu); !math.IsInf(period, 0) {
		ex.Period = &period
	}
	return ex
}
