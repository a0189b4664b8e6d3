package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"daynight-engine/config"
	"daynight-engine/profile"
)

func solarConfig() *config.Config {
	return &config.Config{Solar: config.SolarConfig{
		Enabled:   true,
		Latitude:  51.5,
		Longitude: -0.12,
		DayName:   "Day",
		NightName: "Night",
	}}
}

func TestPlaceSolarOnReload(t *testing.T) {
	june := time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC)

	// Each reload arrives with the authored times and gets placed again.
	for i := 0; i < 2; i++ {
		p := profile.Default()
		require.NoError(t, placeSolar(solarConfig(), p, june))
		require.InDelta(t, 3.8, p.Find("Day").Time, 0.5)
		require.InDelta(t, 20.3, p.Find("Night").Time, 0.5)
	}
}

func TestPlaceSolarDisabled(t *testing.T) {
	cfg := solarConfig()
	cfg.Solar.Enabled = false
	p := profile.Default()
	want := p.Find("Day").Time

	require.NoError(t, placeSolar(cfg, p, time.Now()))
	require.Equal(t, want, p.Find("Day").Time)
}

func TestPlaceSolarMissingKeyframe(t *testing.T) {
	cfg := solarConfig()
	cfg.Solar.DayName = "Dawn"
	require.Error(t, placeSolar(cfg, profile.Default(), time.Now()))
}
