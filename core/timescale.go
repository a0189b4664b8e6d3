package core

import (
	"fmt"
	"strings"
)

// TimeScale names the unit a profile measures in-game or real time in.
type TimeScale int

const (
	Second TimeScale = iota
	Minute
	Hour
	Day
)

// HoursPerDay is the day length SecondsPerUnit assumes for the Day scale.
const HoursPerDay = 24

var timeScaleNames = [...]string{"second", "minute", "hour", "day"}

func (s TimeScale) Valid() bool {
	return s >= Second && s <= Day
}

func (s TimeScale) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TimeScale(%d)", int(s))
	}
	return timeScaleNames[s]
}

func (s TimeScale) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown time scale %d", int(s))
	}
	return []byte(timeScaleNames[s]), nil
}

func (s *TimeScale) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range timeScaleNames {
		if n == name || n+"s" == name {
			*s = TimeScale(i)
			return nil
		}
	}
	return fmt.Errorf("unknown time scale %q", string(text))
}

// SecondsPerUnit converts units of scale into seconds, with a 24 hour day.
// Scales this package does not know convert to units unchanged.
func SecondsPerUnit(scale TimeScale, units float64) float64 {
	return SecondsPerUnitInDay(scale, units, HoursPerDay)
}

// SecondsPerUnitInDay is SecondsPerUnit for a day of hoursInDay hours.
func SecondsPerUnitInDay(scale TimeScale, units float64, hoursInDay int) float64 {
	switch scale {
	case Second:
		return units
	case Minute:
		return Minutes(units)
	case Hour:
		return Hours(units)
	case Day:
		return Days(units, hoursInDay)
	default:
		return units
	}
}

func Minutes(units float64) float64 {
	return units * 60
}

func Hours(units float64) float64 {
	return Minutes(units) * 60
}

func Days(units float64, hoursInDay int) float64 {
	return Hours(units) * float64(hoursInDay)
}
