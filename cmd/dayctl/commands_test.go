package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"daynight-engine/core"
	"daynight-engine/cycle"
	dnio "daynight-engine/io"
	"daynight-engine/profile"
)

func writeProfile(t *testing.T, p *profile.Profile) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cycle.yaml")
	require.NoError(t, dnio.SaveProfile(path, p))
	return path
}

func hourly() *profile.Profile {
	p := profile.New("hourly")
	p.InGameUnitScale = core.Hour
	day := profile.NewKeyframe("Day", 6)
	day.LightColor = core.ColorYellow
	night := profile.NewKeyframe("Night", 18)
	night.LightIntensity = 0.2
	p.Keyframes = []profile.Keyframe{day, night}
	return p
}

func TestDispatchUsage(t *testing.T) {
	var out bytes.Buffer
	require.ErrorIs(t, dispatch(nil, &out, nil), errUsage)
	require.ErrorIs(t, dispatch([]string{"bake"}, &out, nil), errUsage)
	require.ErrorIs(t, dispatch([]string{"table"}, &out, nil), errUsage)
	require.Error(t, dispatch([]string{"validate", filepath.Join(t.TempDir(), "none.yaml")}, &out, nil))
}

func TestValidate(t *testing.T) {
	path := writeProfile(t, hourly())
	var out bytes.Buffer
	require.NoError(t, dispatch([]string{"validate", path}, &out, nil))
	require.Contains(t, out.String(), path+": ok")
	require.Contains(t, out.String(), "2 keyframes, 24h cycle, sky procedural")
	require.Contains(t, out.String(), "3600 in-game seconds per second")

	out.Reset()
	require.NoError(t, dispatch([]string{"validate", writeProfile(t, profile.New("empty"))}, &out, nil))
	require.Contains(t, out.String(), "no keyframes")
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dispatch([]string{"table", writeProfile(t, hourly())}, &out, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "Day")
	require.Contains(t, lines[1], "6:00-18:00")
	require.Contains(t, lines[2], "18:00-24:00, 0:00-6:00")
	require.Contains(t, lines[2], "#ffffff")
}

func TestSimulate(t *testing.T) {
	var out bytes.Buffer
	args := []string{"simulate", "-start", "5", "-duration", "2", "-step", "0.5", "-every", "2", writeProfile(t, hourly())}
	require.NoError(t, dispatch(args, &out, nil))

	text := out.String()
	require.Contains(t, text, "5 : 0 : 0")
	require.Contains(t, text, "Night")
	require.Contains(t, text, "7 : 0 : 0")
	require.Contains(t, text, "Day")

	require.ErrorIs(t, dispatch([]string{"simulate", "-step", "0", writeProfile(t, hourly())}, &out, nil), errUsage)
}

func TestSimulateEmptyProfile(t *testing.T) {
	var out bytes.Buffer
	err := simulate(&out, profile.New("empty"), 0, 1, 0.5, 1, nil)
	require.ErrorIs(t, err, cycle.ErrNoKeyframes)
}

func TestSolar(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "london.json")
	var out bytes.Buffer
	args := []string{"solar", "-lat", "51.5074", "-lng", "-0.1278", "-date", "2024-06-21", "-out", dest, writeProfile(t, hourly())}
	require.NoError(t, dispatch(args, &out, nil))
	require.Contains(t, out.String(), "sunrise 3:")
	require.Contains(t, out.String(), "wrote "+dest)

	p, err := dnio.LoadProfile(dest)
	require.NoError(t, err)
	require.InDelta(t, 3.8, p.Find("Day").Time, 0.5)
	require.InDelta(t, 20.3, p.Find("Night").Time, 0.5)

	require.Error(t, dispatch([]string{"solar", "-date", "tomorrow", writeProfile(t, hourly())}, &out, nil))
}
