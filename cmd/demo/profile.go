package main

import (
	"fmt"
	"time"

	"daynight-engine/config"
	dnio "daynight-engine/io"
	"daynight-engine/profile"
)

func loadProfile(cfg *config.Config) (*profile.Profile, error) {
	p, err := dnio.LoadOrDefault(cfg.Cycle.Profile)
	if err != nil {
		return nil, err
	}
	if err := placeSolar(cfg, p, time.Now()); err != nil {
		return nil, err
	}
	return p, nil
}

// placeSolar moves the configured Day/Night keyframes to the real sunrise
// and sunset. Reloaded profiles go through it too, so a save does not snap
// them back to their authored times.
func placeSolar(cfg *config.Config, p *profile.Profile, today time.Time) error {
	if !cfg.Solar.Enabled {
		return nil
	}
	date, err := cfg.Solar.ParseDate(today)
	if err != nil {
		return err
	}
	if err := p.PlaceSolar(cfg.Solar.DayName, cfg.Solar.NightName, cfg.Solar.Latitude, cfg.Solar.Longitude, date); err != nil {
		return fmt.Errorf("failed to place solar keyframes: %w", err)
	}
	return nil
}
