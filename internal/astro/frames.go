// Package astro provides vector math and reference-frame rotations for orbit work.
package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Angle returns the angle between two vectors in radians, in [0, π].
// Zero-length inputs yield 0. The atan2 form keeps full precision near 0 and π
// where acos does not.
func (v Vec3) Angle(u Vec3) float64 {
	return math.Atan2(v.Cross(u).Norm(), v.Dot(u))
}

// Slice returns the components as a three-element slice.
func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Rotation is a 3x3 rotation matrix between two frames.
type Rotation struct {
	m *mat.Dense
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 {
	var out mat.VecDense
	out.MulVec(r.m, mat.NewVecDense(3, v.Slice()))
	return Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// PerifocalToInertial returns the 3-1-3 rotation taking perifocal (PQW)
// coordinates to the inertial frame, i.e. R3(-raan)·R1(-inc)·R3(-argp).
// All angles are in radians.
func PerifocalToInertial(raan, inc, argp float64) Rotation {
	sO, cO := math.Sincos(raan)
	si, ci := math.Sincos(inc)
	sw, cw := math.Sincos(argp)

	return Rotation{m: mat.NewDense(3, 3, []float64{
		cO*cw - sO*sw*ci, -cO*sw - sO*cw*ci, sO * si,
		sO*cw + cO*sw*ci, -sO*sw + cO*cw*ci, -cO * si,
		sw * si, cw * si, ci,
	})}
}
