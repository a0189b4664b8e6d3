package cycle

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/require"

	"daynight-engine/core"
	"daynight-engine/profile"
)

func dayNight() []profile.Keyframe {
	return []profile.Keyframe{
		profile.NewKeyframe("Day", 6),
		profile.NewKeyframe("Night", 18),
	}
}

func TestResolveDayNight(t *testing.T) {
	keyframes := dayNight()
	tests := []struct {
		timeOfDay float64
		want      string
	}{
		{0, "Night"},
		{5.99, "Night"},
		{6, "Day"},
		{12, "Day"},
		{17.9, "Day"},
		{18, "Night"},
		{23.99, "Night"},
	}
	for _, tt := range tests {
		k, err := Resolve(tt.timeOfDay, keyframes)
		require.NoError(t, err)
		require.Equal(t, tt.want, k.Name, "time %v", tt.timeOfDay)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	keyframes := dayNight()
	first, err := Resolve(13.37, keyframes)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Resolve(13.37, keyframes)
		require.NoError(t, err)
		require.Same(t, first, again)
	}
}

func TestResolveSingleKeyframeOwnsEverything(t *testing.T) {
	keyframes := []profile.Keyframe{profile.NewKeyframe("Only", 12)}
	for _, tod := range []float64{0, 11.9, 12, 23.9} {
		i, err := ResolveIndex(tod, keyframes)
		require.NoError(t, err)
		require.Equal(t, 0, i)
	}
}

func TestResolveEmpty(t *testing.T) {
	k, err := Resolve(3, nil)
	require.ErrorIs(t, err, ErrNoKeyframes)
	require.Nil(t, k)
}

func TestAdvanceStaysInCycle(t *testing.T) {
	c := New(Config{StartTime: 23, CycleHours: 24, InGameUnitScale: core.Minute, InGameUnitValue: 1, RealTimeUnitScale: core.Second}, nil)
	require.Equal(t, 60.0, c.Rate())

	for _, elapsed := range []float64{0, 1, 59.9, 3600, 86400, 1e9, 1e15, 1e300, stdmath.MaxFloat64, stdmath.Inf(1)} {
		tod := c.Advance(elapsed)
		require.GreaterOrEqual(t, tod, 0.0, "elapsed %v", elapsed)
		require.Less(t, tod, 24.0, "elapsed %v", elapsed)
	}
}

func TestAdvance(t *testing.T) {
	// One in-game minute per real second: an hour passes every 60 seconds.
	c := New(Config{StartTime: 6, CycleHours: 24, InGameUnitScale: core.Minute, InGameUnitValue: 1, RealTimeUnitScale: core.Second}, nil)
	require.Equal(t, 6.0, c.Advance(0))
	require.InDelta(t, 7.0, c.Advance(60), 1e-9)
	require.InDelta(t, 6.0, c.Advance(24*60), 1e-9, "a full cycle wraps back to the start")
	require.InDelta(t, 0.5, c.Advance(18.5*60), 1e-9)
	require.Equal(t, 6.0, c.Advance(-10), "negative elapsed time counts as zero")
}

func TestAdvanceUnitValueScalesSpeed(t *testing.T) {
	fast := New(Config{CycleHours: 24, InGameUnitScale: core.Hour, InGameUnitValue: 2, RealTimeUnitScale: core.Minute}, nil)
	// 7200 in-game seconds per 60 real seconds.
	require.Equal(t, 120.0, fast.Rate())
	require.InDelta(t, 2.0, fast.Advance(60), 1e-9)
}

func TestNewClampsStartTime(t *testing.T) {
	c := New(Config{StartTime: 30, CycleHours: 24, InGameUnitValue: 1}, nil)
	require.Equal(t, 24.0, c.StartTime())
	require.Equal(t, 0.0, c.Advance(0))

	c = New(Config{StartTime: -3, CycleHours: 10, InGameUnitValue: 1}, nil)
	require.Equal(t, 0.0, c.StartTime())
	require.Equal(t, 10.0, c.CycleHours())
}

func TestNewUnknownScaleIsIdentity(t *testing.T) {
	c := New(Config{CycleHours: 24, InGameUnitScale: core.TimeScale(42), InGameUnitValue: 3, RealTimeUnitScale: core.Second}, nil)
	require.Equal(t, 3.0, c.Rate())
}

func TestWrap(t *testing.T) {
	require.Equal(t, 0.0, Wrap(24, 24))
	require.Equal(t, 1.0, Wrap(25, 24))
	require.Equal(t, 23.0, Wrap(-1, 24))
	require.Equal(t, 0.0, Wrap(stdmath.NaN(), 24))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "6 : 30 : 0", Format(6.5))
	require.Equal(t, "0 : 0 : 0", Format(0))
	require.Equal(t, "23 : 59 : 59", Format(23.99999))
	require.Equal(t, "1 : 30 : 56", Format(1.515625))
}
