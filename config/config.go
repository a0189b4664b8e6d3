// Package config loads the runtime settings of the demo and dayctl binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no path is given and DAYNIGHT_CONFIG is unset.
const DefaultPath = "configs/daynight.yaml"

// Config aggregates runtime configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Cycle  CycleConfig  `yaml:"cycle"`
	Anchor AnchorConfig `yaml:"anchor"`
	Solar  SolarConfig  `yaml:"solar"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// CycleConfig selects the profile and tunes the controller. Zero rates and
// tolerance mean the controller defaults.
type CycleConfig struct {
	Profile   string  `yaml:"profile"` // empty uses the built-in default profile
	Watch     bool    `yaml:"watch"`   // reload the profile when the file changes
	StartTime float64 `yaml:"startTime"`
	LightRate float32 `yaml:"lightRate"`
	SkyRate   float32 `yaml:"skyRate"`
	Tolerance float32 `yaml:"tolerance"`
}

// AnchorConfig names the glTF scene node keyframe rotations are relative to.
type AnchorConfig struct {
	Scene string `yaml:"scene"`
	Node  string `yaml:"node"`
}

// SolarConfig moves the Day and Night keyframes to the real sunrise and
// sunset at a location.
type SolarConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Date      string  `yaml:"date"` // YYYY-MM-DD, empty for today
	DayName   string  `yaml:"dayName"`
	NightName string  `yaml:"nightName"`
}

type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// Load reads configuration from a YAML file and environment variables. An
// empty path falls back to DAYNIGHT_CONFIG, then DefaultPath if it exists.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("DAYNIGHT_CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Day/Night", VSync: true},
		Anchor: AnchorConfig{Node: "DayNight"},
		Solar:  SolarConfig{DayName: "Day", NightName: "Night"},
		Log:    LogConfig{Format: "text", Level: "info"},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DAYNIGHT_PROFILE"); v != "" {
		cfg.Cycle.Profile = v
	}
	if v := os.Getenv("DAYNIGHT_WATCH"); v != "" {
		cfg.Cycle.Watch = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DAYNIGHT_START_TIME"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse DAYNIGHT_START_TIME: %w", err)
		}
		cfg.Cycle.StartTime = parsed
	}
	if v := os.Getenv("DAYNIGHT_LIGHT_RATE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("parse DAYNIGHT_LIGHT_RATE: %w", err)
		}
		cfg.Cycle.LightRate = float32(parsed)
	}
	if v := os.Getenv("DAYNIGHT_SKY_RATE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("parse DAYNIGHT_SKY_RATE: %w", err)
		}
		cfg.Cycle.SkyRate = float32(parsed)
	}
	if v := os.Getenv("DAYNIGHT_ANCHOR_SCENE"); v != "" {
		cfg.Anchor.Scene = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate checks the combined configuration.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window size must be positive")
	}
	if c.Cycle.StartTime < 0 {
		return errors.New("cycle.startTime must not be negative")
	}
	if c.Cycle.LightRate < 0 || c.Cycle.SkyRate < 0 {
		return errors.New("cycle rates must not be negative")
	}
	if c.Cycle.Tolerance < 0 {
		return errors.New("cycle.tolerance must not be negative")
	}
	if c.Cycle.Watch && c.Cycle.Profile == "" {
		return errors.New("cycle.watch needs cycle.profile")
	}
	if c.Solar.Enabled {
		if c.Solar.Latitude < -90 || c.Solar.Latitude > 90 {
			return fmt.Errorf("solar.latitude %v out of range", c.Solar.Latitude)
		}
		if c.Solar.Longitude < -180 || c.Solar.Longitude > 180 {
			return fmt.Errorf("solar.longitude %v out of range", c.Solar.Longitude)
		}
		if _, err := c.Solar.ParseDate(time.Time{}); err != nil {
			return err
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	return nil
}

// ParseDate returns the configured date, or today when none is set.
func (s SolarConfig) ParseDate(today time.Time) (time.Time, error) {
	if s.Date == "" {
		return today, nil
	}
	d, err := time.Parse(time.DateOnly, s.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("solar.date: %w", err)
	}
	return d, nil
}
