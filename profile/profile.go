package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"daynight-engine/core"
)

const (
	DefaultCycleHours  = 24
	MinInGameUnitValue = 0.01
)

// ErrInvalidProfile wraps every validation failure.
var ErrInvalidProfile = errors.New("invalid day/night profile")

// Profile is one complete day/night cycle configuration.
//
// InGameUnitValue scales the in-game unit: with both scales set to Second,
// 0.1 makes in-game time run ten times slower than 1, and 2 makes it run
// twice as fast.
type Profile struct {
	Name string

	InGameUnitScale   core.TimeScale
	RealTimeUnitScale core.TimeScale
	InGameUnitValue   float64

	CycleHours uint
	SkyMode    SkyMode

	// Keyframes are expected sorted by Time; Normalize sorts them.
	Keyframes []Keyframe
}

// New returns an empty profile with the default cycle settings.
func New(name string) *Profile {
	return &Profile{
		Name:              name,
		InGameUnitScale:   core.Second,
		RealTimeUnitScale: core.Second,
		InGameUnitValue:   1,
		CycleHours:        DefaultCycleHours,
		SkyMode:           Procedural,
	}
}

// Default returns the two keyframe profile new assets start from.
func Default() *Profile {
	p := New("Default")

	day := NewKeyframe("Day", 0.2)
	day.LightColor = core.ColorYellow
	night := NewKeyframe("Night", 0.8)

	p.Keyframes = []Keyframe{day, night}
	return p
}

// Normalize sorts the keyframes by time (stable, so equal times keep their
// authored order) and validates the result.
func (p *Profile) Normalize() error {
	p.Sort()
	return p.Validate()
}

// Sort orders the keyframes by time without validating.
func (p *Profile) Sort() {
	sort.SliceStable(p.Keyframes, func(i, j int) bool {
		return p.Keyframes[i].Time < p.Keyframes[j].Time
	})
}

// Validate checks the profile without modifying it. An empty keyframe list
// is valid here; resolving a keyframe from it is not.
func (p *Profile) Validate() error {
	if p.CycleHours < 1 {
		return fmt.Errorf("%w: cycle hours must be at least 1", ErrInvalidProfile)
	}
	if p.InGameUnitValue < MinInGameUnitValue {
		return fmt.Errorf("%w: in-game unit value %v is below %v", ErrInvalidProfile, p.InGameUnitValue, MinInGameUnitValue)
	}
	if !p.SkyMode.Valid() {
		return fmt.Errorf("%w: unknown sky mode %d", ErrInvalidProfile, int(p.SkyMode))
	}

	cycle := float64(p.CycleHours)
	for i := range p.Keyframes {
		k := &p.Keyframes[i]
		if k.Time < 0 || k.Time > cycle {
			return fmt.Errorf("%w: keyframe %q at %vh is outside [0, %d]", ErrInvalidProfile, k.Name, k.Time, p.CycleHours)
		}
		if k.LightIntensity < 0 {
			return fmt.Errorf("%w: keyframe %q has negative light intensity", ErrInvalidProfile, k.Name)
		}
		if i == 0 {
			continue
		}
		prev := &p.Keyframes[i-1]
		switch {
		case k.Time == prev.Time:
			return fmt.Errorf("%w: keyframes %q and %q share time %vh", ErrInvalidProfile, prev.Name, k.Name, k.Time)
		case k.Time < prev.Time:
			return fmt.Errorf("%w: keyframe %q at %vh comes after %q at %vh", ErrInvalidProfile, k.Name, k.Time, prev.Name, prev.Time)
		}
	}
	return nil
}

// Find returns the keyframe with the given name, or nil.
func (p *Profile) Find(name string) *Keyframe {
	for i := range p.Keyframes {
		if p.Keyframes[i].Name == name {
			return &p.Keyframes[i]
		}
	}
	return nil
}

// IndexOf returns the position of the keyframe with the given ID, or -1.
func (p *Profile) IndexOf(id uuid.UUID) int {
	for i := range p.Keyframes {
		if p.Keyframes[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone copies the profile and its keyframe slice. Sky targets are shared.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Keyframes = make([]Keyframe, len(p.Keyframes))
	for i, k := range p.Keyframes {
		sky := make(map[SkyMode]SkyTarget, len(k.Sky))
		for m, t := range k.Sky {
			sky[m] = t
		}
		k.Sky = sky
		c.Keyframes[i] = k
	}
	return &c
}
