// Package bodies holds read-only gravitational-parameter tables keyed by body name.
//
// Tables are plain values handed to callers; the orbit core never reads them
// itself, it only receives the resolved μ.
package bodies

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownBody is returned when a name is not present in a table.
var ErrUnknownBody = errors.New("unknown body")

// Units names the length unit a table's μ values are expressed in.
type Units string

const (
	UnitsMeters     Units = "m"  // m^3/s^2
	UnitsKilometers Units = "km" // km^3/s^2
)

// ParseUnits parses a unit system name.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "si", "meters", "metres":
		return UnitsMeters, nil
	case "km", "kilometers", "kilometres":
		return UnitsKilometers, nil
	default:
		return "", fmt.Errorf("unknown unit system %q (want m or km)", s)
	}
}

// LengthLabel returns the short length label for display.
func (u Units) LengthLabel() string {
	if u == UnitsKilometers {
		return "km"
	}
	return "m"
}

// Body is a named central body.
type Body struct {
	Name string
	Mu   float64 // gravitational parameter in the table's units
}

// Table maps lower-case body names to bodies.
type Table struct {
	units  Units
	bodies map[string]Body
}

// NewTable builds a table from the given bodies. Names are matched
// case-insensitively. Bodies with a non-positive or non-finite μ are rejected.
func NewTable(units Units, list ...Body) (Table, error) {
	t := Table{units: units, bodies: make(map[string]Body, len(list))}
	for _, b := range list {
		if b.Mu <= 0 || math.IsNaN(b.Mu) || math.IsInf(b.Mu, 0) {
			return Table{}, fmt.Errorf("body %q: invalid gravitational parameter %v", b.Name, b.Mu)
		}
		key := strings.ToLower(strings.TrimSpace(b.Name))
		if key == "" {
			return Table{}, errors.New("body with empty name")
		}
		t.bodies[key] = b
	}
	return t, nil
}

// Units returns the unit system of the table.
func (t Table) Units() Units {
	return t.units
}

// Lookup returns the body registered under name.
func (t Table) Lookup(name string) (Body, error) {
	b, ok := t.bodies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Body{}, fmt.Errorf("%w %q: must be one of %s or provide mu directly",
			ErrUnknownBody, name, strings.Join(t.Names(), ", "))
	}
	return b, nil
}

// Mu returns the gravitational parameter registered under name.
func (t Table) Mu(name string) (float64, error) {
	b, err := t.Lookup(name)
	if err != nil {
		return 0, err
	}
	return b.Mu, nil
}

// Resolve picks the gravitational parameter for a call: an explicit mu > 0
// wins, otherwise name is looked up.
func (t Table) Resolve(name string, mu float64) (float64, error) {
	if mu > 0 && !math.IsInf(mu, 0) {
		return mu, nil
	}
	if mu < 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return 0, fmt.Errorf("invalid gravitational parameter %v", mu)
	}
	return t.Mu(name)
}

// Names returns the registered names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t.bodies))
	for k := range t.bodies {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bodies returns the registered bodies sorted by name.
func (t Table) Bodies() []Body {
	names := t.Names()
	out := make([]Body, len(names))
	for i, n := range names {
		out[i] = t.bodies[n]
	}
	return out
}
