// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/orbiter/internal/astro"
	"github.com/litescript/orbiter/internal/bodies"
	"github.com/litescript/orbiter/internal/kepler"
	"github.com/litescript/orbiter/internal/report"
	"github.com/litescript/orbiter/internal/state"
	"github.com/litescript/orbiter/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewPropagate ViewMode = iota
	ViewTimeOfFlight
	ViewElements
	ViewBodies
	ViewHistory
)

const (
	calcViews = 3 // views backed by a calculator form
	viewCount = 5
)

func (v ViewMode) String() string {
	switch v {
	case ViewPropagate:
		return "propagate"
	case ViewTimeOfFlight:
		return "time of flight"
	case ViewElements:
		return "elements"
	case ViewBodies:
		return "bodies"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// AnimTickMsg triggers spinner updates.
type AnimTickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	table   bodies.Table
	prop    *kepler.Propagator
	history *state.Manager

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	calcs [calcViews]calcModel
}

// New creates a new root UI model. μ values are read from table, whose units
// also set the units of every input and result. Finished calculations are
// recorded in history.
func New(table bodies.Table, prop *kepler.Propagator, history *state.Manager) Model {
	return Model{
		table:    table,
		prop:     prop,
		history:  history,
		viewMode: ViewPropagate,
		calcs:    newCalcModels(table.Units()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		if msg.view < calcViews {
			m.calcs[msg.view] = m.calcs[msg.view].setResult(msg)
		}
		m.statusMsg = ""
		if msg.err != nil {
			m.statusMsg = "Last computation failed"
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case AnimTickMsg:
		m.animTick++
		return m, animTickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "f1":
		m.viewMode = ViewPropagate
	case "f2":
		m.viewMode = ViewTimeOfFlight
	case "f3":
		m.viewMode = ViewElements
	case "f4":
		m.viewMode = ViewBodies
	case "f5":
		m.viewMode = ViewHistory

	case "ctrl+n", "ctrl+right":
		m.viewMode = (m.viewMode + 1) % viewCount
	case "ctrl+p", "ctrl+left":
		m.viewMode = (m.viewMode + viewCount - 1) % viewCount

	case "enter":
		cmd := m.compute()
		return m, cmd

	default:
		if m.viewMode < calcViews {
			m.calcs[m.viewMode].form, _ = m.calcs[m.viewMode].form.update(msg)
		}
	}
	return m, nil
}

// compute starts the active calculator. It returns nil when there is nothing
// to run.
func (m *Model) compute() tea.Cmd {
	if m.viewMode >= calcViews || m.calcs[m.viewMode].busy {
		return nil
	}

	view := m.viewMode
	f := m.calcs[view].form
	table, prop := m.table, m.prop
	m.calcs[view].busy = true
	m.statusMsg = ""

	switch view {
	case ViewPropagate:
		return computeCmd(view, m.history, func() (outcome, error) { return runPropagate(prop, table, f) })
	case ViewTimeOfFlight:
		return computeCmd(view, m.history, func() (outcome, error) { return runTimeOfFlight(table, f) })
	default:
		return computeCmd(view, m.history, func() (outcome, error) { return runElements(table, f) })
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch {
	case m.viewMode < calcViews:
		content = m.calcs[m.viewMode].view()
	case m.viewMode == ViewHistory:
		content = renderHistory(m.history)
	default:
		var b strings.Builder
		report.WriteBodies(&b, m.table)
		content = resultStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := "  ◉ ORBITER · universal-variable two-body mechanics"

	var b strings.Builder
	b.WriteString("\n")
	runes := []rune(logo)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, 0, len(runes), 1)))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s | units: %s", version.Version, m.table.Units().LengthLabel())))
	b.WriteString("\n\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// blue -> purple -> magenta -> pink, darkening toward the bottom row.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", channel(r*brightness), channel(g*brightness), channel(b*brightness))
}

func channel(v float64) int {
	return int(astro.Clamp(v, 0, 255))
}

func (m Model) renderTabs() string {
	tabs := []string{"[F1] Propagate", "[F2] Time of Flight", "[F3] Elements", "[F4] Bodies", "[F5] History"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	switch {
	case m.viewMode < calcViews && m.calcs[m.viewMode].busy:
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + dimStyle.Render(" computing")
	case m.statusMsg != "":
		status = errorStyle.Render(m.statusMsg)
	default:
		status = accentStyle.Render("●") + dimStyle.Render(" ready")
	}

	var help string
	if m.viewMode >= calcViews {
		help = dimStyle.Render("F1-F5 / ctrl+n ctrl+p: switch view | esc: quit")
	} else {
		help = dimStyle.Render("↑↓/tab: field | enter: compute | ctrl+u: clear | F1-F5: view | esc: quit")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
