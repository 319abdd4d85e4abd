package orbit

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/litescript/orbiter/internal/astro"
)

func TestNewStateVector(t *testing.T) {
	tests := []struct {
		name    string
		r, v    astro.Vec3
		wantErr bool
	}{
		{"valid", astro.Vec3{X: 7000}, astro.Vec3{Y: 7.5}, false},
		{"zero velocity is fine", astro.Vec3{X: 7000}, astro.Vec3{}, false},
		{"zero position", astro.Vec3{}, astro.Vec3{Y: 7.5}, true},
		{"NaN position", astro.Vec3{X: math.NaN()}, astro.Vec3{Y: 7.5}, true},
		{"Inf velocity", astro.Vec3{X: 7000}, astro.Vec3{Y: math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStateVector(tt.r, tt.v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStateVector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestZeroStateIsInvalid(t *testing.T) {
	if err := (StateVector{}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() = %v, want ErrInvalidInput", err)
	}
}

func TestMustStateVectorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustStateVector() did not panic on zero position")
		}
	}()
	MustStateVector(astro.Vec3{}, astro.Vec3{})
}

func TestDerivedQuantities(t *testing.T) {
	mu := 398600.4418
	r := 7000.0
	v := math.Sqrt(mu / r)
	s := MustStateVector(astro.Vec3{X: r}, astro.Vec3{Y: v})

	if got, want := SpecificEnergy(s, mu), -mu/(2*r); !scalar.EqualWithinRel(got, want, 1e-12) {
		t.Errorf("SpecificEnergy() = %v, want %v", got, want)
	}
	if got, want := AngularMomentum(s), (astro.Vec3{Z: r * v}); !vecRelClose(got, want, 1e-15) {
		t.Errorf("AngularMomentum() = %v, want %v", got, want)
	}
	if got := EccentricityVector(s, mu).Norm(); got > 1e-12 {
		t.Errorf("|EccentricityVector()| = %v, want ≈ 0", got)
	}
	if got, want := InverseSemiMajorAxis(s, mu), 1/r; !scalar.EqualWithinRel(got, want, 1e-12) {
		t.Errorf("InverseSemiMajorAxis() = %v, want %v", got, want)
	}
	if got := s.RadialVelocity(); got != 0 {
		t.Errorf("RadialVelocity() = %v, want 0", got)
	}
	if s.Radius() != r || !scalar.EqualWithinRel(s.Speed(), v, 1e-15) {
		t.Errorf("Radius(), Speed() = %v, %v", s.Radius(), s.Speed())
	}
}

func TestClassify(t *testing.T) {
	rp := 8_000_000.0

	tests := []struct {
		name string
		v    float64
		want Conic
	}{
		{"circular", math.Sqrt(muEarthSI / rp), Elliptical},
		{"escape", math.Sqrt(2 * muEarthSI / rp), Parabolic},
		{"hyperbolic", 11000, Hyperbolic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustStateVector(astro.Vec3{X: rp}, astro.Vec3{Y: tt.v})
			if got := Classify(s, muEarthSI); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConicString(t *testing.T) {
	if Hyperbolic.String() != "hyperbolic" || Conic(9).String() != "unknown" {
		t.Errorf("unexpected Conic strings %q %q", Hyperbolic, Conic(9))
	}
}
