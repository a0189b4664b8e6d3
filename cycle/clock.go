// Package cycle maps elapsed real time onto the in-game time of day and
// resolves which keyframe of a profile owns that time.
package cycle

import (
	"errors"
	"fmt"
	"log/slog"
	stdmath "math"

	"daynight-engine/core"
	"daynight-engine/profile"
)

// ErrNoKeyframes is returned when resolving against an empty keyframe list.
var ErrNoKeyframes = errors.New("profile has no keyframes")

const secondsPerHour = 3600

// Config carries the profile fields the clock needs plus the start offset.
type Config struct {
	StartTime         float64 // hours into the cycle at elapsed time 0
	CycleHours        uint
	InGameUnitScale   core.TimeScale
	InGameUnitValue   float64
	RealTimeUnitScale core.TimeScale
}

// ConfigFor builds a clock config from a profile.
func ConfigFor(p *profile.Profile, startTime float64) Config {
	return Config{
		StartTime:         startTime,
		CycleHours:        p.CycleHours,
		InGameUnitScale:   p.InGameUnitScale,
		InGameUnitValue:   p.InGameUnitValue,
		RealTimeUnitScale: p.RealTimeUnitScale,
	}
}

// Clock converts real seconds into hours of the in-game cycle.
type Clock struct {
	startTime  float64
	cycleHours float64
	rate       float64 // in-game seconds per real second
}

// New derives the clock rate once. A start time outside [0, CycleHours] is
// clamped into it; a zero cycle length falls back to 24 hours.
func New(cfg Config, logger *slog.Logger) *Clock {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.CycleHours == 0 {
		cfg.CycleHours = profile.DefaultCycleHours
	}
	for _, s := range []core.TimeScale{cfg.InGameUnitScale, cfg.RealTimeUnitScale} {
		if !s.Valid() {
			logger.Debug("unknown time scale, converting as identity", "scale", int(s))
		}
	}

	cycle := float64(cfg.CycleHours)
	start := cfg.StartTime
	switch {
	case start < 0:
		start = 0
	case start > cycle:
		start = cycle
	}

	gameSeconds := core.SecondsPerUnit(cfg.InGameUnitScale, 1) * cfg.InGameUnitValue
	realSeconds := core.SecondsPerUnit(cfg.RealTimeUnitScale, 1)
	rate := 0.0
	if realSeconds != 0 {
		rate = gameSeconds / realSeconds
	}

	return &Clock{
		startTime:  start,
		cycleHours: cycle,
		rate:       rate,
	}
}

// Rate is the number of in-game seconds that pass per real second.
func (c *Clock) Rate() float64 { return c.rate }

func (c *Clock) StartTime() float64 { return c.startTime }

func (c *Clock) CycleHours() float64 { return c.cycleHours }

// Advance returns the time of day, in [0, CycleHours), after
// elapsedRealSeconds of real time. Negative input counts as zero.
func (c *Clock) Advance(elapsedRealSeconds float64) float64 {
	if elapsedRealSeconds < 0 || stdmath.IsNaN(elapsedRealSeconds) {
		elapsedRealSeconds = 0
	}
	hours := elapsedRealSeconds * c.rate / secondsPerHour
	return Wrap(c.startTime+hours, c.cycleHours)
}

// Wrap folds hours into [0, cycleHours).
func Wrap(hours, cycleHours float64) float64 {
	if stdmath.IsInf(hours, 0) || stdmath.IsNaN(hours) {
		return 0
	}
	t := stdmath.Mod(hours, cycleHours)
	if t < 0 {
		t += cycleHours
	}
	if t >= cycleHours {
		t = 0
	}
	return t
}

// Format renders a time of day as "H : M : S", truncating each part.
func Format(timeOfDay float64) string {
	h := stdmath.Floor(timeOfDay)
	minutes := (timeOfDay - h) * 60
	m := stdmath.Floor(minutes)
	s := stdmath.Floor((minutes - m) * 60)
	return fmt.Sprintf("%d : %d : %d", int(h), int(m), int(s))
}
