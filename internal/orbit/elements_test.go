package orbit

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/litescript/orbiter/internal/astro"
)

const muEarthSI = 3.986004418e14 // m^3/s^2

// vecRelClose compares vectors by the norm of their difference relative to |want|.
func vecRelClose(got, want astro.Vec3, rel float64) bool {
	return got.Sub(want).Norm() <= rel*want.Norm()
}

func TestToElementsCircularEquatorial(t *testing.T) {
	r := 7000e3
	s := MustStateVector(astro.Vec3{X: r}, astro.Vec3{Y: math.Sqrt(muEarthSI / r)})

	el, err := ToElements(s, muEarthSI)
	if err != nil {
		t.Fatalf("ToElements() error: %v", err)
	}
	if el.E > 1e-10 {
		t.Errorf("e = %v, want ≈ 0", el.E)
	}
	if el.I > 1e-10 {
		t.Errorf("i = %v, want ≈ 0", el.I)
	}
	if math.Abs(el.A-r) > 1e-6 {
		t.Errorf("a = %v, want %v", el.A, r)
	}
	if el.Kind != CircularEquatorial {
		t.Errorf("Kind = %v, want %v", el.Kind, CircularEquatorial)
	}
	if el.RAAN != 0 || el.ArgP != 0 || el.Nu != 0 {
		t.Errorf("angles = (%v, %v, %v), want all zero", el.RAAN, el.ArgP, el.Nu)
	}
}

func TestToElementsInclinedCircular(t *testing.T) {
	inc := math.Pi / 4
	r := 7000e3
	v := math.Sqrt(muEarthSI / r)
	s := MustStateVector(
		astro.Vec3{X: r * math.Cos(inc), Z: r * math.Sin(inc)},
		astro.Vec3{Y: v},
	)

	el, err := ToElements(s, muEarthSI)
	if err != nil {
		t.Fatalf("ToElements() error: %v", err)
	}
	if math.Abs(el.I-inc) > 1e-10 {
		t.Errorf("i = %v, want %v", el.I, inc)
	}
	if el.E > 1e-10 {
		t.Errorf("e = %v, want ≈ 0", el.E)
	}
	if el.Kind != CircularInclined {
		t.Errorf("Kind = %v, want %v", el.Kind, CircularInclined)
	}
	// The ascending node lies on -Y and the body sits a quarter turn past it.
	if !scalar.EqualWithinAbs(el.RAAN, 3*math.Pi/2, 1e-10) {
		t.Errorf("RAAN = %v, want 3π/2", el.RAAN)
	}
	if !scalar.EqualWithinAbs(el.Nu, math.Pi/2, 1e-10) {
		t.Errorf("argument of latitude = %v, want π/2", el.Nu)
	}
}

func TestToElementsElliptical(t *testing.T) {
	a, e := 7000e3, 0.1
	rp := a * (1 - e)
	vp := math.Sqrt(muEarthSI * (2/rp - 1/a))
	s := MustStateVector(astro.Vec3{X: rp}, astro.Vec3{Y: vp})

	el, err := ToElements(s, muEarthSI)
	if err != nil {
		t.Fatalf("ToElements() error: %v", err)
	}
	if math.Abs(el.E-e) > 1e-10 {
		t.Errorf("e = %v, want %v", el.E, e)
	}
	if math.Abs(el.A-a) > 1e-6 {
		t.Errorf("a = %v, want %v", el.A, a)
	}
	if el.Kind != EllipticEquatorial {
		t.Errorf("Kind = %v, want %v", el.Kind, EllipticEquatorial)
	}
	if !scalar.EqualWithinAbs(el.Periapsis(), rp, 1e-6) {
		t.Errorf("Periapsis() = %v, want %v", el.Periapsis(), rp)
	}
	if !scalar.EqualWithinAbs(el.Apoapsis(), a*(1+e), 1e-6) {
		t.Errorf("Apoapsis() = %v, want %v", el.Apoapsis(), a*(1+e))
	}
	wantPeriod := 2 * math.Pi * math.Sqrt(a*a*a/muEarthSI)
	if !scalar.EqualWithinRel(el.Period(muEarthSI), wantPeriod, 1e-12) {
		t.Errorf("Period() = %v, want %v", el.Period(muEarthSI), wantPeriod)
	}
}

func TestToElementsHyperbolic(t *testing.T) {
	rp, e := 7000e3, 1.5
	a := rp / (1 - e)
	s := MustStateVector(astro.Vec3{X: rp}, astro.Vec3{Y: math.Sqrt(muEarthSI * (2/rp - 1/a))})

	el, err := ToElements(s, muEarthSI)
	if err != nil {
		t.Fatalf("ToElements() error: %v", err)
	}
	if el.A >= 0 {
		t.Errorf("a = %v, want negative", el.A)
	}
	if !scalar.EqualWithinRel(el.A, a, 1e-10) {
		t.Errorf("a = %v, want %v", el.A, a)
	}
	if !scalar.EqualWithinAbs(el.E, e, 1e-10) {
		t.Errorf("e = %v, want %v", el.E, e)
	}
	if !math.IsInf(el.Period(muEarthSI), 1) || !math.IsInf(el.Apoapsis(), 1) {
		t.Error("open orbit should report infinite period and apoapsis")
	}
}

func TestToElementsEdgeCases(t *testing.T) {
	v := math.Sqrt(muEarthSI / 7000e3)

	// nearly circular
	el, err := ToElements(MustStateVector(astro.Vec3{X: 7000e3, Y: 1e-6}, astro.Vec3{Y: v}), muEarthSI)
	if err != nil {
		t.Fatal(err)
	}
	if el.E > 1e-6 {
		t.Errorf("e = %v, want ≈ 0", el.E)
	}

	// nearly equatorial
	el, err = ToElements(MustStateVector(astro.Vec3{X: 7000e3, Z: 1e-6}, astro.Vec3{Y: v}), muEarthSI)
	if err != nil {
		t.Fatal(err)
	}
	if el.I > 1e-6 {
		t.Errorf("i = %v, want ≈ 0", el.I)
	}
}

func TestElementsAnglesInRange(t *testing.T) {
	states := []StateVector{
		MustStateVector(astro.Vec3{X: 6500e3, Y: 1000e3, Z: -200e3}, astro.Vec3{X: -1.0e3, Y: 7.0e3, Z: 1.0e3}),
		MustStateVector(astro.Vec3{X: -6500e3, Y: -1000e3, Z: 200e3}, astro.Vec3{X: 1.0e3, Y: -7.0e3, Z: -1.0e3}),
		MustStateVector(astro.Vec3{X: 7000e3, Y: 200e3, Z: 300e3}, astro.Vec3{X: 500, Y: -6.5e3, Z: 3e3}),
	}
	for _, s := range states {
		el, err := ToElements(s, muEarthSI)
		if err != nil {
			t.Fatalf("ToElements(%v) error: %v", s, err)
		}
		if el.I < 0 || el.I > math.Pi {
			t.Errorf("%v: i = %v outside [0, π]", s, el.I)
		}
		for name, x := range map[string]float64{"RAAN": el.RAAN, "ArgP": el.ArgP, "Nu": el.Nu} {
			if x < 0 || x >= 2*math.Pi {
				t.Errorf("%v: %s = %v outside [0, 2π)", s, name, x)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	vc := math.Sqrt(muEarthSI / 7000e3)

	tests := []struct {
		name string
		r, v astro.Vec3
		kind Singularity
	}{
		{
			name: "general inclined",
			r:    astro.Vec3{X: 6500e3, Y: 1000e3, Z: -200e3},
			v:    astro.Vec3{X: -1.0e3, Y: 7.0e3, Z: 1.0e3},
			kind: Regular,
		},
		{
			name: "inbound",
			r:    astro.Vec3{X: 6500e3, Y: 1000e3, Z: -200e3},
			v:    astro.Vec3{X: -3.0e3, Y: 6.5e3, Z: 1.0e3},
			kind: Regular,
		},
		{
			name: "retrograde",
			r:    astro.Vec3{X: 7200e3, Y: -300e3, Z: 900e3},
			v:    astro.Vec3{X: 400, Y: -7.1e3, Z: -1.5e3},
			kind: Regular,
		},
		{
			name: "hyperbolic",
			r:    astro.Vec3{X: 8000e3, Y: 500e3, Z: 1000e3},
			v:    astro.Vec3{X: 1.0e3, Y: 11.0e3, Z: 2.0e3},
			kind: Regular,
		},
		{
			name: "circular inclined",
			r:    astro.Vec3{X: 7000e3 * math.Cos(0.5), Z: 7000e3 * math.Sin(0.5)},
			v:    astro.Vec3{Y: vc},
			kind: CircularInclined,
		},
		{
			name: "elliptic equatorial",
			r:    astro.Vec3{X: 5000e3, Y: 4000e3},
			v:    astro.Vec3{X: -6.0e3, Y: 5.0e3},
			kind: EllipticEquatorial,
		},
		{
			name: "elliptic equatorial retrograde",
			r:    astro.Vec3{X: 5000e3, Y: 4000e3},
			v:    astro.Vec3{X: 6.0e3, Y: -5.0e3},
			kind: EllipticEquatorial,
		},
		{
			name: "circular equatorial",
			r:    astro.Vec3{X: 7000e3 * math.Cos(2), Y: 7000e3 * math.Sin(2)},
			v:    astro.Vec3{X: -vc * math.Sin(2), Y: vc * math.Cos(2)},
			kind: CircularEquatorial,
		},
		{
			name: "circular equatorial retrograde",
			r:    astro.Vec3{X: 7000e3 * math.Cos(2), Y: 7000e3 * math.Sin(2)},
			v:    astro.Vec3{X: vc * math.Sin(2), Y: -vc * math.Cos(2)},
			kind: CircularEquatorial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := MustStateVector(tt.r, tt.v)
			el, err := ToElements(orig, muEarthSI)
			if err != nil {
				t.Fatalf("ToElements() error: %v", err)
			}
			if el.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", el.Kind, tt.kind)
			}
			back, err := ToState(el, muEarthSI)
			if err != nil {
				t.Fatalf("ToState(%v) error: %v", el, err)
			}
			if !vecRelClose(back.Position(), orig.Position(), 1e-9) {
				t.Errorf("position = %v, want %v", back.Position(), orig.Position())
			}
			if !vecRelClose(back.Velocity(), orig.Velocity(), 1e-9) {
				t.Errorf("velocity = %v, want %v", back.Velocity(), orig.Velocity())
			}
		})
	}
}

func TestToStatePerifocal(t *testing.T) {
	mu := 398600.4418
	el := ClassicalElements{A: 7000, E: 0.1, I: 0, RAAN: 0, ArgP: 0, Nu: 0}

	s, err := ToState(el, mu)
	if err != nil {
		t.Fatalf("ToState() error: %v", err)
	}
	if !vecRelClose(s.Position(), astro.Vec3{X: 6300}, 1e-14) {
		t.Errorf("position = %v, want [6300 0 0]", s.Position())
	}
	wantV := math.Sqrt(mu * (2/6300.0 - 1/7000.0))
	if !vecRelClose(s.Velocity(), astro.Vec3{Y: wantV}, 1e-12) {
		t.Errorf("velocity = %v, want [0 %v 0]", s.Velocity(), wantV)
	}

	// Rotating the node by 90° carries periapsis onto +Y.
	el.RAAN = math.Pi / 2
	s, err = ToState(el, mu)
	if err != nil {
		t.Fatalf("ToState() error: %v", err)
	}
	if !vecRelClose(s.Position(), astro.Vec3{Y: 6300}, 1e-12) {
		t.Errorf("position = %v, want [0 6300 0]", s.Position())
	}
}

func TestConversionErrors(t *testing.T) {
	good := ClassicalElements{A: 7000, E: 0.1, I: 0.5, RAAN: 1, ArgP: 2, Nu: 3}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"zero position", func() error {
			_, err := ToElements(StateVector{}, 1)
			return err
		}},
		{"zero mu", func() error {
			_, err := ToElements(MustStateVector(astro.Vec3{X: 1}, astro.Vec3{Y: 1}), 0)
			return err
		}},
		{"rectilinear", func() error {
			_, err := ToElements(MustStateVector(astro.Vec3{X: 7000}, astro.Vec3{X: 1}), 398600)
			return err
		}},
		{"negative mu in ToState", func() error {
			_, err := ToState(good, -1)
			return err
		}},
		{"parabolic", func() error {
			el := good
			el.E = 1
			_, err := ToState(el, 398600)
			return err
		}},
		{"ellipse with negative a", func() error {
			el := good
			el.A = -7000
			_, err := ToState(el, 398600)
			return err
		}},
		{"hyperbola with positive a", func() error {
			el := good
			el.E = 1.5
			_, err := ToState(el, 398600)
			return err
		}},
		{"negative eccentricity", func() error {
			el := good
			el.E = -0.1
			_, err := ToState(el, 398600)
			return err
		}},
		{"inclination out of range", func() error {
			el := good
			el.I = 4
			_, err := ToState(el, 398600)
			return err
		}},
		{"raan out of range", func() error {
			el := good
			el.RAAN = -0.1
			_, err := ToState(el, 398600)
			return err
		}},
		{"beyond asymptote", func() error {
			el := ClassicalElements{A: -14000, E: 1.5, Nu: math.Pi}
			_, err := ToState(el, 398600)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestToStateReportsFirstBadAngle(t *testing.T) {
	el := ClassicalElements{A: 7000, E: 0.1, I: 0.5, RAAN: 7, ArgP: -1, Nu: 9}

	for i := 0; i < 20; i++ {
		_, err := ToState(el, 398600)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("error = %v, want ErrInvalidInput", err)
		}
		if !strings.Contains(err.Error(), "RAAN") {
			t.Fatalf("error = %q, want it to name RAAN", err)
		}
	}
}
