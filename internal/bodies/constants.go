package bodies

import "fmt"

// Nominal gravitational parameters (IAU 2015 Resolution B3), m^3/s^2.
const (
	EarthMu   = 3.986004e14
	SunMu     = 1.3271244e20
	JupiterMu = 1.2668653e17
)

// cubic metres to cubic kilometres
const m3ToKm3 = 1e-9

// SI returns the built-in table in m^3/s^2.
func SI() Table {
	return mustTable(UnitsMeters, 1)
}

// Kilometers returns the built-in table in km^3/s^2.
func Kilometers() Table {
	return mustTable(UnitsKilometers, m3ToKm3)
}

// ForUnits returns the built-in table for a unit system.
func ForUnits(u Units) (Table, error) {
	switch u {
	case UnitsMeters:
		return SI(), nil
	case UnitsKilometers:
		return Kilometers(), nil
	default:
		return Table{}, fmt.Errorf("no built-in table for units %q", u)
	}
}

func mustTable(u Units, scale float64) Table {
	t, err := NewTable(u,
		Body{Name: "earth", Mu: EarthMu * scale},
		Body{Name: "sun", Mu: SunMu * scale},
		Body{Name: "jupiter", Mu: JupiterMu * scale},
	)
	if err != nil {
		panic(err)
	}
	return t
}
