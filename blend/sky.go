package blend

import (
	"fmt"
	"log/slog"

	"daynight-engine/profile"
	"daynight-engine/scene"
)

// Procedural sky parameters, split by kind.
var (
	SkyColorProperties = []string{scene.SkyTint, scene.SkyGroundColor}
	SkyFloatProperties = []string{scene.SkySunSizeConverge, scene.SkyAtmosphere, scene.SkyExposure, scene.SkySunSize}
)

// MissingSkyPropertyError reports a sky parameter that one of the two
// materials does not define. The parameter is skipped; the tick goes on.
type MissingSkyPropertyError struct {
	Property string
	Keyframe string
	Target   bool // true when the keyframe's target lacks it, false for the live sky
}

func (e *MissingSkyPropertyError) Error() string {
	side := "live sky material"
	if e.Target {
		side = fmt.Sprintf("sky target of keyframe %q", e.Keyframe)
	}
	return fmt.Sprintf("sky property %q missing on %s", e.Property, side)
}

// SkyInterpolator converges the live procedural sky toward the active
// keyframe's sky target. Other sky modes are not animated.
type SkyInterpolator struct {
	Rate      float32
	Tolerance float32

	live   SkyMaterial
	logger *slog.Logger
	run    run

	keyframe *profile.Keyframe
	target   profile.SkyTarget
	missing  []error
	reported map[string]bool
}

func NewSkyInterpolator(live SkyMaterial, logger *slog.Logger) *SkyInterpolator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SkyInterpolator{
		Rate:      DefaultSkyRate,
		Tolerance: DefaultTolerance,
		live:      live,
		logger:    logger,
	}
}

// Retarget cancels any run in flight and, for the procedural mode, starts
// converging toward k's procedural target.
func (si *SkyInterpolator) Retarget(k *profile.Keyframe, mode profile.SkyMode) {
	si.run.cancel()
	si.keyframe = k
	si.target = nil
	si.missing = nil
	si.reported = make(map[string]bool)
	if k == nil {
		return
	}

	if mode != profile.Procedural {
		si.logger.Debug("sky mode is not animated", "mode", mode.String(), "keyframe", k.Name)
		return
	}
	target := k.SkyTarget(mode)
	if target == nil {
		si.logger.Warn("keyframe has no procedural sky target", "keyframe", k.Name)
		return
	}

	si.target = target
	si.run.restart()
}

func (si *SkyInterpolator) Cancel() {
	si.run.cancel()
}

func (si *SkyInterpolator) Phase() Phase { return si.run.phase }

// Runs counts the runs started so far.
func (si *SkyInterpolator) Runs() uint64 { return si.run.id }

// Missing returns the properties skipped during the current run.
func (si *SkyInterpolator) Missing() []error { return si.missing }

// Step advances the run by dt seconds and reports whether every parameter
// both materials define has converged.
func (si *SkyInterpolator) Step(dt float32) bool {
	if si.run.phase != Converging {
		return true
	}
	if dt <= 0 {
		return false
	}

	t := stepFactor(dt, si.Rate)
	done := true

	for _, name := range SkyColorProperties {
		if !si.present(name) {
			continue
		}
		c, ok := stepColor(si.live.Color(name), si.target.Color(name), t, si.Tolerance)
		si.live.SetColor(name, c)
		done = done && ok
	}
	for _, name := range SkyFloatProperties {
		if !si.present(name) {
			continue
		}
		v, ok := stepFloat(si.live.Float(name), si.target.Float(name), t, si.Tolerance)
		si.live.SetFloat(name, v)
		done = done && ok
	}

	if done {
		si.run.cancel()
		si.logger.Debug("sky converged", "keyframe", si.keyframe.Name)
	}
	return done
}

// present checks both materials for name, reporting a miss once per run.
func (si *SkyInterpolator) present(name string) bool {
	var err *MissingSkyPropertyError
	switch {
	case !si.target.HasProperty(name):
		err = &MissingSkyPropertyError{Property: name, Keyframe: si.keyframe.Name, Target: true}
	case !si.live.HasProperty(name):
		err = &MissingSkyPropertyError{Property: name, Keyframe: si.keyframe.Name}
	default:
		return true
	}
	if !si.reported[name] {
		si.reported[name] = true
		si.missing = append(si.missing, err)
		si.logger.Warn("skipping sky property", "error", err)
	}
	return false
}
