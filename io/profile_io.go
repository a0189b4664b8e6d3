package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
	"daynight-engine/scene"
)

// FormatVersion is written into every saved profile.
const FormatVersion = "1.0"

// ProfileFile is the on-disk form of a day/night profile (.yaml or .json)
type ProfileFile struct {
	Version           string         `yaml:"version" json:"version"`
	Name              string         `yaml:"name" json:"name"`
	InGameUnitScale   string         `yaml:"in_game_unit_scale" json:"in_game_unit_scale"`
	InGameUnitValue   float64        `yaml:"in_game_unit_value" json:"in_game_unit_value"`
	RealTimeUnitScale string         `yaml:"real_time_unit_scale" json:"real_time_unit_scale"`
	CycleHours        uint           `yaml:"cycle_hours" json:"cycle_hours"`
	SkyMode           string         `yaml:"sky_mode" json:"sky_mode"`
	Keyframes         []KeyframeData `yaml:"keyframes" json:"keyframes"`
}

// KeyframeData stores one keyframe. Colours are hex strings, "#rrggbb" or
// "#rrggbbaa".
type KeyframeData struct {
	ID             string             `yaml:"id,omitempty" json:"id,omitempty"`
	Name           string             `yaml:"name" json:"name"`
	Time           float64            `yaml:"time" json:"time"`
	LightColor     string             `yaml:"light_color" json:"light_color"`
	LightIntensity *float32           `yaml:"light_intensity,omitempty" json:"light_intensity,omitempty"`
	LightRotation  [3]float32         `yaml:"light_rotation" json:"light_rotation"` // Euler degrees
	Sky            map[string]SkyData `yaml:"sky,omitempty" json:"sky,omitempty"`    // keyed by sky mode
}

// SkyData stores the parameters of a sky target. Only the parameters present
// are set on the material.
type SkyData struct {
	Colors map[string]string  `yaml:"colors,omitempty" json:"colors,omitempty"`
	Floats map[string]float32 `yaml:"floats,omitempty" json:"floats,omitempty"`
}

// SaveProfile writes p to path, choosing YAML or JSON from the extension.
func SaveProfile(path string, p *profile.Profile) error {
	f, err := ProfileToFile(p)
	if err != nil {
		return err
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(f, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		return fmt.Errorf("unsupported profile extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProfile reads a profile file, sorts its keyframes and validates it.
func LoadProfile(path string) (*profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	return DecodeProfile(data, filepath.Ext(path))
}

// DecodeProfile parses data in the format named by ext (".yaml", ".yml" or
// ".json").
func DecodeProfile(data []byte, ext string) (*profile.Profile, error) {
	f := &ProfileFile{}
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, f)
	default:
		return nil, fmt.Errorf("unsupported profile extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	return f.ToProfile()
}

// ToProfile converts the file form into a normalized profile. Missing
// settings take the profile.New defaults.
func (f *ProfileFile) ToProfile() (*profile.Profile, error) {
	p := profile.New(f.Name)
	if err := parseScale(f.InGameUnitScale, &p.InGameUnitScale); err != nil {
		return nil, err
	}
	if err := parseScale(f.RealTimeUnitScale, &p.RealTimeUnitScale); err != nil {
		return nil, err
	}
	if f.InGameUnitValue != 0 {
		p.InGameUnitValue = f.InGameUnitValue
	}
	if f.CycleHours != 0 {
		p.CycleHours = f.CycleHours
	}
	if f.SkyMode != "" {
		if err := p.SkyMode.UnmarshalText([]byte(f.SkyMode)); err != nil {
			return nil, err
		}
	}

	p.Keyframes = make([]profile.Keyframe, 0, len(f.Keyframes))
	for i := range f.Keyframes {
		k, err := f.Keyframes[i].toKeyframe()
		if err != nil {
			return nil, fmt.Errorf("keyframe %d (%q): %w", i, f.Keyframes[i].Name, err)
		}
		p.Keyframes = append(p.Keyframes, k)
	}

	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseScale(s string, dst *core.TimeScale) error {
	if s == "" {
		return nil
	}
	return dst.UnmarshalText([]byte(s))
}

func (d *KeyframeData) toKeyframe() (profile.Keyframe, error) {
	k := profile.NewKeyframe(d.Name, d.Time)
	if d.ID != "" {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return k, fmt.Errorf("failed to parse keyframe id: %w", err)
		}
		k.ID = id
	}
	if d.LightColor != "" {
		c, err := ParseColor(d.LightColor)
		if err != nil {
			return k, err
		}
		k.LightColor = c
	}
	if d.LightIntensity != nil {
		k.LightIntensity = *d.LightIntensity
	}
	k.LightRotation = ArrayToVec3(d.LightRotation)

	for modeName, sd := range d.Sky {
		var mode profile.SkyMode
		if err := mode.UnmarshalText([]byte(modeName)); err != nil {
			return k, err
		}
		m := scene.NewSkyMaterial(d.Name + " " + mode.String())
		for name, hex := range sd.Colors {
			c, err := ParseColor(hex)
			if err != nil {
				return k, fmt.Errorf("sky %s %s: %w", modeName, name, err)
			}
			m.SetColor(name, c)
		}
		for name, v := range sd.Floats {
			m.SetFloat(name, v)
		}
		k.SetSkyTarget(mode, m)
	}
	return k, nil
}

// propertyLister is implemented by sky targets that can enumerate their
// parameters, such as *scene.SkyMaterial.
type propertyLister interface {
	FloatNames() []string
	ColorNames() []string
}

// ProfileToFile converts a profile into its file form. Sky targets that cannot
// list their parameters are rejected.
func ProfileToFile(p *profile.Profile) (*ProfileFile, error) {
	f := &ProfileFile{
		Version:           FormatVersion,
		Name:              p.Name,
		InGameUnitScale:   p.InGameUnitScale.String(),
		InGameUnitValue:   p.InGameUnitValue,
		RealTimeUnitScale: p.RealTimeUnitScale.String(),
		CycleHours:        p.CycleHours,
		SkyMode:           p.SkyMode.String(),
		Keyframes:         make([]KeyframeData, 0, len(p.Keyframes)),
	}

	for i := range p.Keyframes {
		k := &p.Keyframes[i]
		intensity := k.LightIntensity
		d := KeyframeData{
			ID:             k.ID.String(),
			Name:           k.Name,
			Time:           k.Time,
			LightColor:     FormatColor(k.LightColor),
			LightIntensity: &intensity,
			LightRotation:  Vec3ToArray(k.LightRotation),
		}

		modes := make([]profile.SkyMode, 0, len(k.Sky))
		for mode := range k.Sky {
			modes = append(modes, mode)
		}
		sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
		for _, mode := range modes {
			target := k.Sky[mode]
			if target == nil {
				continue
			}
			lister, ok := target.(propertyLister)
			if !ok {
				return nil, fmt.Errorf("keyframe %q: sky target for %s cannot be saved", k.Name, mode)
			}
			sd := SkyData{}
			for _, name := range lister.ColorNames() {
				if sd.Colors == nil {
					sd.Colors = make(map[string]string)
				}
				sd.Colors[name] = FormatColor(target.Color(name))
			}
			for _, name := range lister.FloatNames() {
				if sd.Floats == nil {
					sd.Floats = make(map[string]float32)
				}
				sd.Floats[name] = target.Float(name)
			}
			if d.Sky == nil {
				d.Sky = make(map[string]SkyData)
			}
			d.Sky[mode.String()] = sd
		}
		f.Keyframes = append(f.Keyframes, d)
	}
	return f, nil
}

// --- Helper conversions ---

// ParseColor reads "#rrggbb" or "#rrggbbaa". Alpha defaults to 1.
func ParseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)
	alpha := float32(1)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return core.Color{}, fmt.Errorf("failed to parse colour %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return core.Color{}, fmt.Errorf("failed to parse colour %q: %w", s, err)
	}
	return core.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// FormatColor writes c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
// Channels are clamped to [0, 1].
func FormatColor(c core.Color) string {
	hex := ColorToColorful(c).Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Clamp01(c.A)*255+0.5))
}

// ColorToColorful drops alpha.
func ColorToColorful(c core.Color) colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// Vec3ToArray converts a Vec3 to a [3]float32
func Vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// ArrayToVec3 converts a [3]float32 to Vec3
func ArrayToVec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// LoadOrDefault loads path, or returns the default profile when path is
// empty.
func LoadOrDefault(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return LoadProfile(path)
}
