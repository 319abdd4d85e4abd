package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(14)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	focusedInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// field is a single-line text input.
type field struct {
	label string
	value string
	hint  string
}

// form is a vertical list of fields with one focused at a time.
type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) form {
	return form{fields: fields}
}

// value returns the trimmed contents of the field with the given label.
func (f form) value(label string) string {
	for _, fl := range f.fields {
		if fl.label == label {
			return strings.TrimSpace(fl.value)
		}
	}
	return ""
}

// set replaces the contents of the field with the given label.
func (f form) set(label, value string) form {
	fields := make([]field, len(f.fields))
	copy(fields, f.fields)
	for i := range fields {
		if fields[i].label == label {
			fields[i].value = value
		}
	}
	f.fields = fields
	return f
}

// update applies an editing or navigation key. It reports whether the key
// was consumed.
func (f form) update(msg tea.KeyMsg) (form, bool) {
	if len(f.fields) == 0 {
		return f, false
	}

	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
		return f, true
	case tea.KeyDown, tea.KeyTab:
		f.focus = (f.focus + 1) % len(f.fields)
		return f, true
	case tea.KeyBackspace:
		cur := []rune(f.fields[f.focus].value)
		if len(cur) > 0 {
			f = f.set(f.fields[f.focus].label, string(cur[:len(cur)-1]))
		}
		return f, true
	case tea.KeyCtrlU:
		f = f.set(f.fields[f.focus].label, "")
		return f, true
	case tea.KeySpace:
		f = f.set(f.fields[f.focus].label, f.fields[f.focus].value+" ")
		return f, true
	case tea.KeyRunes:
		f = f.set(f.fields[f.focus].label, f.fields[f.focus].value+string(msg.Runes))
		return f, true
	}
	return f, false
}

func (f form) view() string {
	var b strings.Builder
	for i, fl := range f.fields {
		style := inputStyle
		cursor := " "
		if i == f.focus {
			style = focusedInputStyle
			cursor = "▌"
		}
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fl.label))
		b.WriteString(style.Render(" " + fl.value + cursor))
		if fl.hint != "" {
			b.WriteString("  ")
			b.WriteString(hintStyle.Render(fl.hint))
		}
		b.WriteString("\n")
	}
	return b.String()
}
