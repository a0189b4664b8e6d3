// Package blend moves live light and sky parameters toward a keyframe's
// targets a little every tick.
//
// Each interpolator is a two state machine. Retarget cancels whatever run
// is in flight and starts a fresh one (Converging); Step advances the run
// once and drops back to Idle when every parameter is within Tolerance of
// its target, snapping it there. Nothing blocks or spawns goroutines: the
// caller's tick drives everything.
package blend

import (
	"fmt"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
)

const (
	// DefaultLightRate and DefaultSkyRate are the fraction of the remaining
	// distance covered per second of frame time.
	DefaultLightRate float32 = 0.2
	DefaultSkyRate   float32 = 0.2

	// DefaultTolerance is how close, per component, a parameter must get
	// before it is snapped to its target and counted as converged.
	DefaultTolerance float32 = 1e-4
)

// Phase is the state of an interpolator's convergence run.
type Phase int

const (
	Idle Phase = iota
	Converging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Converging:
		return "converging"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Light is the live directional light being driven.
type Light interface {
	Color() core.Color
	SetColor(core.Color)
	Intensity() float32
	SetIntensity(float32)
	Rotation() math.Quaternion
	SetRotation(math.Quaternion)
}

// Heading is the scene object keyframe rotations are relative to.
type Heading interface {
	WorldRotation() math.Quaternion
}

// SkyMaterial is the live sky being driven.
type SkyMaterial interface {
	profile.SkyTarget
	SetFloat(name string, v float32)
	SetColor(name string, c core.Color)
}

// run is the bookkeeping shared by both interpolators. id counts starts, so
// a caller can tell a restarted run from a continuing one.
type run struct {
	phase Phase
	id    uint64
}

func (r *run) restart() {
	r.id++
	r.phase = Converging
}

func (r *run) cancel() {
	r.phase = Idle
}

func stepFactor(dt, rate float32) float32 {
	return math.Clamp01(dt * rate)
}

// The step helpers move live toward target and report whether it arrived.
// A parameter within tolerance snaps to its target. So does one whose step
// no longer closes the gap: near large targets a small t falls under half a
// float32 ulp and the lerp rounds back onto live, which would otherwise
// stall the run just outside tolerance.

func stepFloat(live, target, t, tolerance float32) (float32, bool) {
	if math.NearlyEqual(live, target, tolerance) {
		return target, true
	}
	next := math.Lerp(live, target, t)
	if math.NearlyEqual(next, target, tolerance) || math.Abs(next-target) >= math.Abs(live-target) {
		return target, true
	}
	return next, false
}

func stepColor(live, target core.Color, t, tolerance float32) (core.Color, bool) {
	if live.NearlyEqual(target, tolerance) {
		return target, true
	}
	next := live.Lerp(target, t)
	if next.NearlyEqual(target, tolerance) || next.Distance(target) >= live.Distance(target) {
		return target, true
	}
	return next, false
}

func stepRotation(live, target math.Quaternion, t, tolerance float32) (math.Quaternion, bool) {
	if live.NearlyEqual(target, tolerance) {
		return target, true
	}
	next := live.Slerp(target, t)
	if next.NearlyEqual(target, tolerance) || next.Distance(target) >= live.Distance(target) {
		return target, true
	}
	return next, false
}
