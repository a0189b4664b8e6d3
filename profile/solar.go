package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ErrNoSunriseSunset is returned for polar day or polar night.
var ErrNoSunriseSunset = errors.New("sun does not rise and set on this date")

// SolarTimes returns the local sunrise and sunset of date at lat/lng as hours
// of a 24 hour day in date's location.
func SolarTimes(lat, lng float64, date time.Time) (rise, set float64, err error) {
	r, s := sunrise.SunriseSunset(lat, lng, date.Year(), date.Month(), date.Day())
	if r.IsZero() || s.IsZero() {
		return 0, 0, ErrNoSunriseSunset
	}
	return hourOfDay(r.In(date.Location())), hourOfDay(s.In(date.Location())), nil
}

func hourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

// PlaceSolar moves the keyframes named dayName and nightName to the real
// sunrise and sunset at lat/lng on date, scaled from a 24 hour day into the
// profile's cycle, and re-sorts the profile. On error p is left unchanged.
func (p *Profile) PlaceSolar(dayName, nightName string, lat, lng float64, date time.Time) error {
	placed := p.Clone()
	day := placed.Find(dayName)
	if day == nil {
		return fmt.Errorf("no keyframe named %q", dayName)
	}
	night := placed.Find(nightName)
	if night == nil {
		return fmt.Errorf("no keyframe named %q", nightName)
	}

	rise, set, err := SolarTimes(lat, lng, date)
	if err != nil {
		return fmt.Errorf("failed to place %q/%q: %w", dayName, nightName, err)
	}

	scale := float64(p.CycleHours) / 24
	day.Time = rise * scale
	night.Time = set * scale
	if err := placed.Normalize(); err != nil {
		return err
	}
	*p = *placed
	return nil
}
