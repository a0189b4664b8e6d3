package profile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"daynight-engine/core"
	"daynight-engine/math"
)

// SkyMode selects how the sky is rendered. Only Procedural is animated;
// the other modes are accepted so profiles can carry their targets.
type SkyMode int

const (
	Procedural SkyMode = iota
	Cubemap
	Panoramic
	SixSided
)

var skyModeNames = [...]string{"procedural", "cubemap", "panoramic", "six_sided"}

// SkyModes lists every mode in declaration order.
func SkyModes() []SkyMode {
	return []SkyMode{Procedural, Cubemap, Panoramic, SixSided}
}

func (m SkyMode) Valid() bool {
	return m >= Procedural && m <= SixSided
}

func (m SkyMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("SkyMode(%d)", int(m))
	}
	return skyModeNames[m]
}

func (m SkyMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown sky mode %d", int(m))
	}
	return []byte(skyModeNames[m]), nil
}

func (m *SkyMode) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range skyModeNames {
		if n == name {
			*m = SkyMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sky mode %q", string(text))
}

// SkyTarget is the read side of a sky material: the values a keyframe wants
// the live sky to reach.
type SkyTarget interface {
	HasProperty(name string) bool
	Float(name string) float32
	Color(name string) core.Color
}

// Keyframe is one named point of the cycle.
type Keyframe struct {
	ID   uuid.UUID
	Name string
	Time float64 // hours into the cycle

	LightColor     core.Color
	LightIntensity float32
	LightRotation  math.Vec3 // Euler degrees, relative to the controller's heading

	// Sky holds one target per sky mode; only the profile's mode is read.
	Sky map[SkyMode]SkyTarget
}

// NewKeyframe returns a keyframe with a fresh ID, white light and unit
// intensity.
func NewKeyframe(name string, time float64) Keyframe {
	return Keyframe{
		ID:             uuid.New(),
		Name:           name,
		Time:           time,
		LightColor:     core.ColorWhite,
		LightIntensity: 1,
		Sky:            make(map[SkyMode]SkyTarget),
	}
}

// SkyTarget returns the sky target for mode, or nil.
func (k *Keyframe) SkyTarget(mode SkyMode) SkyTarget {
	if k.Sky == nil {
		return nil
	}
	return k.Sky[mode]
}

// SetSkyTarget stores target for mode.
func (k *Keyframe) SetSkyTarget(mode SkyMode, target SkyTarget) {
	if k.Sky == nil {
		k.Sky = make(map[SkyMode]SkyTarget)
	}
	k.Sky[mode] = target
}

// NormalizedTime is the keyframe's position within a cycle of cycleHours,
// clamped to [0, 1].
func (k *Keyframe) NormalizedTime(cycleHours uint) float64 {
	if cycleHours == 0 {
		return 0
	}
	v := k.Time / float64(cycleHours)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
