package blend

import (
	"daynight-engine/math"
	"daynight-engine/profile"
)

// LightInterpolator converges a directional light's colour, intensity and
// rotation toward the active keyframe.
type LightInterpolator struct {
	Rate      float32
	Tolerance float32

	light   Light
	heading Heading
	run     run

	keyframe *profile.Keyframe
}

// NewLightInterpolator drives light. heading may be nil, in which case
// keyframe rotations are world rotations.
func NewLightInterpolator(light Light, heading Heading) *LightInterpolator {
	return &LightInterpolator{
		Rate:      DefaultLightRate,
		Tolerance: DefaultTolerance,
		light:     light,
		heading:   heading,
	}
}

// Retarget cancels any run in flight and starts converging toward k.
func (li *LightInterpolator) Retarget(k *profile.Keyframe) {
	li.run.cancel()
	li.keyframe = k
	if k == nil {
		return
	}
	li.run.restart()
}

// Cancel stops the current run, leaving the light where it is.
func (li *LightInterpolator) Cancel() {
	li.run.cancel()
}

func (li *LightInterpolator) Phase() Phase { return li.run.phase }

// Runs counts the runs started so far.
func (li *LightInterpolator) Runs() uint64 { return li.run.id }

// Keyframe is the current target, or nil.
func (li *LightInterpolator) Keyframe() *profile.Keyframe { return li.keyframe }

// TargetRotation is the world rotation the light converges to for k: the
// keyframe rotation applied in the frame of the heading's yaw.
func (li *LightInterpolator) TargetRotation(k *profile.Keyframe) math.Quaternion {
	return TargetRotation(k.LightRotation, li.heading)
}

// TargetRotation turns Euler degrees relative to heading into a world
// rotation. Only the heading's yaw is used.
func TargetRotation(euler math.Vec3, heading Heading) math.Quaternion {
	rot := math.QuaternionFromEulerDegrees(euler)
	if heading == nil {
		return rot
	}
	yaw := math.QuaternionFromAxisAngle(math.Vec3Up, heading.WorldRotation().Yaw())
	return yaw.Mul(rot).Normalize()
}

// Step advances the run by dt seconds and reports whether the light has
// converged. An idle interpolator whose light has drifted off its keyframe,
// say because the heading turned, starts a new run first.
func (li *LightInterpolator) Step(dt float32) bool {
	if li.run.phase != Converging {
		if dt <= 0 || li.keyframe == nil || li.onTarget() {
			return true
		}
		li.run.restart()
	}
	if dt <= 0 {
		return false
	}

	k := li.keyframe
	t := stepFactor(dt, li.Rate)

	color, colorDone := stepColor(li.light.Color(), k.LightColor, t, li.Tolerance)
	li.light.SetColor(color)

	intensity, intensityDone := stepFloat(li.light.Intensity(), k.LightIntensity, t, li.Tolerance)
	li.light.SetIntensity(intensity)

	rotation, rotationDone := stepRotation(li.light.Rotation(), li.TargetRotation(k), t, li.Tolerance)
	li.light.SetRotation(rotation)

	if colorDone && intensityDone && rotationDone {
		li.run.cancel()
		return true
	}
	return false
}

func (li *LightInterpolator) onTarget() bool {
	k := li.keyframe
	return li.light.Color().NearlyEqual(k.LightColor, li.Tolerance) &&
		math.NearlyEqual(li.light.Intensity(), k.LightIntensity, li.Tolerance) &&
		li.light.Rotation().NearlyEqual(li.TargetRotation(k), li.Tolerance)
}

// Snap moves the light straight onto k's targets without a run.
func (li *LightInterpolator) Snap(k *profile.Keyframe) {
	li.run.cancel()
	li.keyframe = k
	li.light.SetColor(k.LightColor)
	li.light.SetIntensity(k.LightIntensity)
	li.light.SetRotation(li.TargetRotation(k))
}
