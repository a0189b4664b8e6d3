package scene

import (
	"sort"

	"daynight-engine/core"
)

// Procedural sky property names.
const (
	SkyTint            = "sky_tint"
	SkyGroundColor     = "ground_color"
	SkySunSizeConverge = "sun_size_convergence"
	SkyAtmosphere      = "atmosphere_thickness"
	SkyExposure        = "exposure"
	SkySunSize         = "sun_size"
)

// SkyMaterial is a named bag of float and colour shader properties. It is
// both the live sky the renderer reads and the target a keyframe points at.
type SkyMaterial struct {
	Name   string
	floats map[string]float32
	colors map[string]core.Color
}

func NewSkyMaterial(name string) *SkyMaterial {
	return &SkyMaterial{
		Name:   name,
		floats: make(map[string]float32),
		colors: make(map[string]core.Color),
	}
}

// NewProceduralSky returns a material holding every procedural sky
// property at a neutral daytime value.
func NewProceduralSky(name string) *SkyMaterial {
	m := NewSkyMaterial(name)
	m.SetColor(SkyTint, core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1})
	m.SetColor(SkyGroundColor, core.Color{R: 0.369, G: 0.349, B: 0.341, A: 1})
	m.SetFloat(SkySunSizeConverge, 5)
	m.SetFloat(SkyAtmosphere, 1)
	m.SetFloat(SkyExposure, 1.3)
	m.SetFloat(SkySunSize, 0.04)
	return m
}

func (m *SkyMaterial) HasProperty(name string) bool {
	if _, ok := m.floats[name]; ok {
		return true
	}
	_, ok := m.colors[name]
	return ok
}

// Float returns 0 for a property the material does not have.
func (m *SkyMaterial) Float(name string) float32 { return m.floats[name] }

func (m *SkyMaterial) SetFloat(name string, v float32) { m.floats[name] = v }

// Color returns the zero colour for a property the material does not have.
func (m *SkyMaterial) Color(name string) core.Color { return m.colors[name] }

func (m *SkyMaterial) SetColor(name string, c core.Color) { m.colors[name] = c }

// Remove deletes a property of either kind.
func (m *SkyMaterial) Remove(name string) {
	delete(m.floats, name)
	delete(m.colors, name)
}

// FloatNames lists the float properties, sorted.
func (m *SkyMaterial) FloatNames() []string {
	names := make([]string, 0, len(m.floats))
	for n := range m.floats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ColorNames lists the colour properties, sorted.
func (m *SkyMaterial) ColorNames() []string {
	names := make([]string, 0, len(m.colors))
	for n := range m.colors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone creates a deep copy of the material
func (m *SkyMaterial) Clone(newName string) *SkyMaterial {
	c := NewSkyMaterial(newName)
	for k, v := range m.floats {
		c.floats[k] = v
	}
	for k, v := range m.colors {
		c.colors[k] = v
	}
	return c
}
