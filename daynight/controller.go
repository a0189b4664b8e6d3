// Package daynight ties the cycle clock to the light and sky interpolators.
// A Controller is driven by one AdvanceAndApply call per rendered frame.
package daynight

import (
	"fmt"
	"log/slog"

	"daynight-engine/blend"
	"daynight-engine/cycle"
	"daynight-engine/profile"
)

// Options configures a Controller. Light and Sky are optional; leaving one
// nil disables that half of the cycle. Zero rates and tolerance use the
// blend package defaults.
type Options struct {
	Profile   *profile.Profile
	StartTime float64 // hours into the cycle when elapsed time is 0

	Light  blend.Light
	Sky    blend.SkyMaterial
	Anchor blend.Heading

	LightRate float32
	SkyRate   float32
	Tolerance float32

	Logger *slog.Logger
}

// Controller owns the simulation state: the clock, the current time of day,
// the active keyframe and the two interpolators.
type Controller struct {
	profile   *profile.Profile
	startTime float64
	clock     *cycle.Clock
	logger    *slog.Logger

	light *blend.LightInterpolator
	sky   *blend.SkyInterpolator

	timeOfDay float64
	active    *profile.Keyframe
}

func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := opts.Profile
	if p == nil {
		p = profile.Default()
	}

	c := &Controller{
		profile:   p,
		startTime: opts.StartTime,
		logger:    logger,
	}
	c.clock = cycle.New(cycle.ConfigFor(p, opts.StartTime), logger)
	c.timeOfDay = c.clock.Advance(0)

	if opts.Light != nil {
		c.light = blend.NewLightInterpolator(opts.Light, opts.Anchor)
		if opts.LightRate > 0 {
			c.light.Rate = opts.LightRate
		}
		if opts.Tolerance > 0 {
			c.light.Tolerance = opts.Tolerance
		}
	}
	if opts.Sky != nil {
		c.sky = blend.NewSkyInterpolator(opts.Sky, logger)
		if opts.SkyRate > 0 {
			c.sky.Rate = opts.SkyRate
		}
		if opts.Tolerance > 0 {
			c.sky.Tolerance = opts.Tolerance
		}
	}
	return c
}

// AdvanceAndApply moves the clock to elapsedReal seconds since start,
// retargets the interpolators when the active keyframe changes and steps
// them once by frameDelta seconds.
//
// When the profile has no keyframes the wrapped cycle.ErrNoKeyframes is
// returned and nothing is modified.
func (c *Controller) AdvanceAndApply(elapsedReal, frameDelta float64) error {
	tod := c.clock.Advance(elapsedReal)
	kf, err := cycle.Resolve(tod, c.profile.Keyframes)
	if err != nil {
		return fmt.Errorf("failed to resolve keyframe at %s: %w", cycle.Format(tod), err)
	}

	c.timeOfDay = tod
	if kf != c.active {
		c.logger.Debug("keyframe changed", "keyframe", kf.Name, "time", cycle.Format(tod))
		c.active = kf
		if c.light != nil {
			c.light.Retarget(kf)
		}
		if c.sky != nil {
			c.sky.Retarget(kf, c.profile.SkyMode)
		}
	}

	dt := float32(frameDelta)
	if c.light != nil {
		c.light.Step(dt)
	}
	if c.sky != nil {
		c.sky.Step(dt)
	}
	return nil
}

// FormattedTime is the current time of day as "H : M : S".
func (c *Controller) FormattedTime() string {
	return cycle.Format(c.timeOfDay)
}

// TimeOfDay is the current time in hours, in [0, CycleHours).
func (c *Controller) TimeOfDay() float64 { return c.timeOfDay }

// ActiveKeyframe is nil until the first successful tick.
func (c *Controller) ActiveKeyframe() *profile.Keyframe { return c.active }

func (c *Controller) Profile() *profile.Profile { return c.profile }

func (c *Controller) Clock() *cycle.Clock { return c.clock }

// Converged reports whether neither interpolator has a run in flight.
func (c *Controller) Converged() bool {
	if c.light != nil && c.light.Phase() == blend.Converging {
		return false
	}
	if c.sky != nil && c.sky.Phase() == blend.Converging {
		return false
	}
	return true
}

// LightRuns and SkyRuns count convergence runs started so far.
func (c *Controller) LightRuns() uint64 {
	if c.light == nil {
		return 0
	}
	return c.light.Runs()
}

func (c *Controller) SkyRuns() uint64 {
	if c.sky == nil {
		return 0
	}
	return c.sky.Runs()
}

// SkyMissing lists sky properties skipped by the current sky run.
func (c *Controller) SkyMissing() []error {
	if c.sky == nil {
		return nil
	}
	return c.sky.Missing()
}

// SetProfile swaps in a new profile, keeping the start time. The clock is
// rebuilt and the next tick retargets both interpolators.
func (c *Controller) SetProfile(p *profile.Profile) {
	if p == nil {
		return
	}
	c.profile = p
	c.clock = cycle.New(cycle.ConfigFor(p, c.startTime), c.logger)
	c.active = nil
	if c.light != nil {
		c.light.Cancel()
	}
	if c.sky != nil {
		c.sky.Cancel()
	}
	c.logger.Info("profile replaced", "profile", p.Name, "keyframes", len(p.Keyframes))
}
