package math

import "math"

type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	c := float32(math.Cos(float64(halfAngle)))

	axis = axis.Normalize()
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// QuaternionFromEuler builds a rotation from radians, applied X first, then
// Y, then Z.
func QuaternionFromEuler(euler Vec3) Quaternion {
	cx := float32(math.Cos(float64(euler.X) / 2))
	sx := float32(math.Sin(float64(euler.X) / 2))
	cy := float32(math.Cos(float64(euler.Y) / 2))
	sy := float32(math.Sin(float64(euler.Y) / 2))
	cz := float32(math.Cos(float64(euler.Z) / 2))
	sz := float32(math.Sin(float64(euler.Z) / 2))

	return Quaternion{
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

// QuaternionFromEulerDegrees is QuaternionFromEuler for angles authored in
// degrees.
func QuaternionFromEulerDegrees(euler Vec3) Quaternion {
	return QuaternionFromEuler(euler.Radians())
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

func (q Quaternion) Normalize() Quaternion {
	length := float32(math.Sqrt(float64(q.Dot(q))))
	if length > 0 {
		invLength := 1 / length
		return Quaternion{
			X: q.X * invLength,
			Y: q.Y * invLength,
			Z: q.Z * invLength,
			W: q.W * invLength,
		}
	}
	return q
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) Negate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qVec := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qVec.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(qVec.Cross(t))
}

// ToEuler is the inverse of QuaternionFromEuler, in radians.
func (q Quaternion) ToEuler() Vec3 {
	sinXCosY := 2 * (q.W*q.X + q.Y*q.Z)
	cosXCosY := 1 - 2*(q.X*q.X+q.Y*q.Y)
	x := float32(math.Atan2(float64(sinXCosY), float64(cosXCosY)))

	sinY := 2 * (q.W*q.Y - q.Z*q.X)
	var y float32
	if math.Abs(float64(sinY)) >= 1 {
		y = float32(math.Copysign(math.Pi/2, float64(sinY)))
	} else {
		y = float32(math.Asin(float64(sinY)))
	}

	sinZCosY := 2 * (q.W*q.Z + q.X*q.Y)
	cosZCosY := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	z := float32(math.Atan2(float64(sinZCosY), float64(cosZCosY)))

	return Vec3{X: x, Y: y, Z: z}
}

// Yaw returns the heading of the rotated forward axis around world up, in
// radians. Pitch and roll are discarded.
func (q Quaternion) Yaw() float32 {
	f := q.RotateVector(Vec3Front)
	return float32(math.Atan2(float64(f.X), float64(f.Z)))
}

// Distance is the 4D distance to the nearer of other and -other, which
// represent the same rotation.
func (q Quaternion) Distance(other Quaternion) float32 {
	if q.Dot(other) < 0 {
		other = other.Negate()
	}
	dx, dy, dz, dw := q.X-other.X, q.Y-other.Y, q.Z-other.Z, q.W-other.W
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz + dw*dw)))
}

// NearlyEqual reports whether q and other describe the same rotation within
// a per-component tolerance.
func (q Quaternion) NearlyEqual(other Quaternion, tolerance float32) bool {
	if q.Dot(other) < 0 {
		other = other.Negate()
	}
	return NearlyEqual(q.X, other.X, tolerance) &&
		NearlyEqual(q.Y, other.Y, tolerance) &&
		NearlyEqual(q.Z, other.Z, tolerance) &&
		NearlyEqual(q.W, other.W, tolerance)
}

func (q Quaternion) Lerp(other Quaternion, t float32) Quaternion {
	return Quaternion{
		X: q.X + (other.X-q.X)*t,
		Y: q.Y + (other.Y-q.Y)*t,
		Z: q.Z + (other.Z-q.Z)*t,
		W: q.W + (other.W-q.W)*t,
	}.Normalize()
}

// Slerp interpolates along the shorter arc. t is clamped to [0, 1].
func (q Quaternion) Slerp(other Quaternion, t float32) Quaternion {
	t = Clamp01(t)
	if t == 1 {
		return other
	}

	dot := q.Dot(other)
	if dot < 0 {
		dot = -dot
		other = other.Negate()
	}

	if dot > 0.9995 {
		return q.Lerp(other, t)
	}

	theta0 := math.Acos(float64(dot))
	theta := theta0 * float64(t)
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)

	s0 := float32(math.Cos(theta) - float64(dot)*sinTheta/sinTheta0)
	s1 := float32(sinTheta / sinTheta0)

	return Quaternion{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}
