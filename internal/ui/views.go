package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/state"
)

const historyRows = 15

// Field labels shared by the calculator forms.
const (
	fieldBody = "body"
	fieldMu   = "mu"
	fieldR0   = "r0"
	fieldV0   = "v0"
	fieldDt   = "dt [s]"
	fieldRf   = "rf"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// calcModel is one calculator tab: an input form and the last result.
type calcModel struct {
	title  string
	form   form
	result string
	err    error
	busy   bool
}

func (m calcModel) setResult(msg resultMsg) calcModel {
	m.busy = false
	m.result = msg.text
	m.err = msg.err
	return m
}

func (m calcModel) view() string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(hintStyle.Render("  Computing..."))
	case m.err != nil:
		b.WriteString("  ")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.result != "":
		b.WriteString(resultStyle.Render(strings.TrimRight(m.result, "\n")))
	default:
		b.WriteString(hintStyle.Render("  Press enter to compute"))
	}
	b.WriteString("\n")
	return b.String()
}

// defaultInputs returns example inputs for a low circular orbit in the
// table's units.
func defaultInputs(u bodies.Units) (r0, v0, rf string) {
	if u == bodies.UnitsKilometers {
		return "7000, 0, 0", "0, 7.546, 0", "0, 7000, 0"
	}
	return "7000000, 0, 0", "0, 7546, 0", "0, 7000000, 0"
}

func newCalcModels(u bodies.Units) [calcViews]calcModel {
	r0, v0, rf := defaultInputs(u)
	unit := u.LengthLabel()
	body := field{label: fieldBody, value: "earth", hint: "earth, sun, jupiter"}
	mu := field{label: fieldMu, hint: "overrides body when set (" + unit + "^3/s^2)"}
	pos := field{label: fieldR0, value: r0, hint: unit}
	vel := field{label: fieldV0, value: v0, hint: unit + "/s"}

	var views [calcViews]calcModel
	views[ViewPropagate] = calcModel{
		title: "Propagate a state by a time span",
		form:  newForm(body, mu, pos, vel, field{label: fieldDt, value: "3600", hint: "negative runs backward"}),
	}
	views[ViewTimeOfFlight] = calcModel{
		title: "Time of flight to a target position",
		form:  newForm(body, mu, pos, vel, field{label: fieldRf, value: rf, hint: unit}),
	}
	views[ViewElements] = calcModel{
		title: "Classical orbital elements",
		form:  newForm(body, mu, pos, vel),
	}
	return views
}

// renderHistory lists the most recent calculations, newest last.
func renderHistory(history *state.Manager) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Session history"))
	b.WriteString("\n\n")

	if history == nil || !history.HasEntries() {
		b.WriteString(hintStyle.Render("  No calculations yet"))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range history.Recent(historyRows) {
		line := fmt.Sprintf("  %s  %-15s %8s  ", e.Timestamp.Format("15:04:05"), e.Mode, e.Duration.Round(time.Microsecond))
		if e.Failed() {
			b.WriteString(inputStyle.Render(line))
			b.WriteString(errorStyle.Render(e.Err.Error()))
		} else {
			b.WriteString(inputStyle.Render(line + e.Summary))
		}
		b.WriteString("\n")
	}

	snap := history.Snapshot()
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("  %d runs, %d failed, %s total", snap.Runs, snap.Failures, snap.TotalTime.Round(time.Microsecond))))
	b.WriteString("\n")
	return b.String()
}
