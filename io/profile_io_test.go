package io

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daynight-engine/core"
	"daynight-engine/math"
	"daynight-engine/profile"
	"daynight-engine/scene"
)

const sampleYAML = `
name: Temperate
in_game_unit_scale: minutes
in_game_unit_value: 2
real_time_unit_scale: second
cycle_hours: 24
sky_mode: procedural
keyframes:
  - name: Night
    time: 20
    light_color: "#334466"
    light_intensity: 0.1
    light_rotation: [-20, 0, 0]
  - name: Day
    time: 6
    light_color: "#fff2cc80"
    light_rotation: [50, -30, 0]
    sky:
      procedural:
        colors:
          sky_tint: "#8099cc"
        floats:
          exposure: 1.5
          sun_size: 0.05
`

func TestDecodeProfileYAML(t *testing.T) {
	p, err := DecodeProfile([]byte(sampleYAML), ".yaml")
	require.NoError(t, err)

	require.Equal(t, "Temperate", p.Name)
	require.Equal(t, core.Minute, p.InGameUnitScale)
	require.Equal(t, 2.0, p.InGameUnitValue)
	require.Equal(t, core.Second, p.RealTimeUnitScale)
	require.Equal(t, profile.Procedural, p.SkyMode)

	require.Len(t, p.Keyframes, 2)
	require.Equal(t, "Day", p.Keyframes[0].Name, "keyframes are sorted on load")
	require.Equal(t, "Night", p.Keyframes[1].Name)

	day := p.Keyframes[0]
	require.Equal(t, float32(1), day.LightIntensity, "intensity defaults to 1")
	require.InDelta(t, 128.0/255, day.LightColor.A, 1e-6)
	require.Equal(t, math.Vec3{X: 50, Y: -30}, day.LightRotation)

	sky := day.SkyTarget(profile.Procedural)
	require.NotNil(t, sky)
	require.True(t, sky.HasProperty(scene.SkyExposure))
	require.Equal(t, float32(1.5), sky.Float(scene.SkyExposure))
	require.False(t, sky.HasProperty(scene.SkyAtmosphere), "absent parameters stay absent")
	require.InDelta(t, 0x99/255.0, sky.Color(scene.SkyTint).G, 1e-6)

	require.Nil(t, p.Keyframes[1].SkyTarget(profile.Procedural))
	require.Equal(t, float32(0.1), p.Keyframes[1].LightIntensity)
}

func TestDecodeProfileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"unknown scale", "in_game_unit_scale: fortnight\n", ".yaml"},
		{"unknown sky mode", "sky_mode: starfield\n", ".yaml"},
		{"bad colour", "keyframes:\n  - name: a\n    light_color: \"#zzzzzz\"\n", ".yaml"},
		{"bad id", "keyframes:\n  - name: a\n    id: nope\n", ".yml"},
		{"duplicate times", `{"keyframes":[{"name":"a","time":3},{"name":"b","time":3}]}`, ".json"},
		{"time past cycle", `{"cycle_hours":10,"keyframes":[{"name":"a","time":12}]}`, ".json"},
		{"bad extension", "{}", ".toml"},
		{"malformed", "{", ".json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfile([]byte(tt.data), tt.ext)
			require.Error(t, err)
		})
	}
}

func TestEmptyProfileLoads(t *testing.T) {
	p, err := DecodeProfile([]byte("name: blank\n"), ".yaml")
	require.NoError(t, err)
	require.Empty(t, p.Keyframes)
	require.Equal(t, uint(profile.DefaultCycleHours), p.CycleHours)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := profile.Default()
	src.InGameUnitScale = core.Hour
	night := src.Find("Night")
	night.LightRotation = math.Vec3{X: -15, Y: 90}
	night.LightColor = core.Color{R: 0.2, G: 0.3, B: 0.6, A: 0.5}
	sky := scene.NewProceduralSky("night")
	sky.Remove(scene.SkySunSize)
	night.SetSkyTarget(profile.Procedural, sky)

	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile"+ext)
			require.NoError(t, SaveProfile(path, src))

			got, err := LoadProfile(path)
			require.NoError(t, err)
			require.Equal(t, src.Name, got.Name)
			require.Equal(t, core.Hour, got.InGameUnitScale)
			require.Len(t, got.Keyframes, len(src.Keyframes))

			for i := range src.Keyframes {
				want, have := src.Keyframes[i], got.Keyframes[i]
				require.Equal(t, want.ID, have.ID)
				require.Equal(t, want.Name, have.Name)
				require.Equal(t, want.Time, have.Time)
				require.Equal(t, want.LightRotation, have.LightRotation)
				require.True(t, want.LightColor.NearlyEqual(have.LightColor, 1.0/255), "%v vs %v", want.LightColor, have.LightColor)
			}

			target := got.Find("Night").SkyTarget(profile.Procedural)
			require.NotNil(t, target)
			require.False(t, target.HasProperty(scene.SkySunSize))
			require.Equal(t, sky.Float(scene.SkyExposure), target.Float(scene.SkyExposure))
		})
	}
}

func TestSaveProfileRejectsUnknownExtension(t *testing.T) {
	require.Error(t, SaveProfile(filepath.Join(t.TempDir(), "p.txt"), profile.Default()))
}

func TestColorHex(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	require.True(t, c.NearlyEqual(core.Color{R: 1, G: 128.0 / 255, B: 0, A: 1}, 1e-6), "%v", c)
	require.Equal(t, "#ff8000", FormatColor(c))

	c, err = ParseColor(" #00000040 ")
	require.NoError(t, err)
	require.InDelta(t, 64.0/255, c.A, 1e-6)
	require.Equal(t, "#00000040", FormatColor(c))

	require.Equal(t, "#ffffff", FormatColor(core.Color{R: 2, G: 1, B: 1.5, A: 1}), "channels are clamped")

	_, err = ParseColor("#12345")
	require.Error(t, err)
	_, err = ParseColor("#123456zz")
	require.Error(t, err)
}

func TestWatchProfileReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cycle.yaml")
	require.NoError(t, SaveProfile(path, profile.Default()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := WatchProfile(ctx, path, nil)
	require.NoError(t, err)

	// Broken writes are logged and skipped.
	require.NoError(t, os.WriteFile(path, []byte("keyframes: ["), 0644))

	edited := profile.Default()
	edited.Name = "Edited"
	require.NoError(t, SaveProfile(path, edited))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-w.Profiles:
			require.NotNil(t, p)
			if p.Name == "Edited" {
				cancel()
				for range w.Profiles {
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload published")
		}
	}
}
