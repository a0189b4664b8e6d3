package math

import "math"

// Lerp blends a toward b. t is clamped to [0, 1], so a step larger than the
// remaining distance lands exactly on b.
func Lerp(a, b, t float32) float32 {
	t = Clamp01(t)
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

func Clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func NearlyEqual(a, b, tolerance float32) bool {
	return Abs(a-b) <= tolerance
}
