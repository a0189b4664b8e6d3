package core

import (
	stdmath "math"

	"daynight-engine/math"
)

// Color is linear RGBA with components nominally in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorYellow = Color{1, 0.92, 0.016, 1}
)

// Lerp blends every channel, alpha included. t is clamped to [0, 1].
func (c Color) Lerp(target Color, t float32) Color {
	return Color{
		R: math.Lerp(c.R, target.R, t),
		G: math.Lerp(c.G, target.G, t),
		B: math.Lerp(c.B, target.B, t),
		A: math.Lerp(c.A, target.A, t),
	}
}

// Scale multiplies the RGB channels, leaving alpha untouched.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Distance is the Euclidean RGBA distance.
func (c Color) Distance(other Color) float32 {
	dr, dg, db, da := c.R-other.R, c.G-other.G, c.B-other.B, c.A-other.A
	return float32(stdmath.Sqrt(float64(dr*dr + dg*dg + db*db + da*da)))
}

func (c Color) NearlyEqual(other Color, tolerance float32) bool {
	return math.NearlyEqual(c.R, other.R, tolerance) &&
		math.NearlyEqual(c.G, other.G, tolerance) &&
		math.NearlyEqual(c.B, other.B, tolerance) &&
		math.NearlyEqual(c.A, other.A, tolerance)
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Front)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}
