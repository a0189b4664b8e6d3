package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSecondsPerUnit(t *testing.T) {
	tests := []struct {
		name  string
		scale TimeScale
		units float64
		want  float64
	}{
		{"one second", Second, 1, 1},
		{"seconds", Second, 42, 42},
		{"minute", Minute, 1, 60},
		{"two hours", Hour, 2, 7200},
		{"day", Day, 1, 86400},
		{"half day", Day, 0.5, 43200},
		{"unknown scale is identity", TimeScale(99), 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SecondsPerUnit(tt.scale, tt.units))
		})
	}
}

func TestSecondsPerUnitInDay(t *testing.T) {
	require.Equal(t, 36000.0, SecondsPerUnitInDay(Day, 1, 10))
	require.Equal(t, 7200.0, SecondsPerUnitInDay(Hour, 2, 10))
}

func TestTimeScaleText(t *testing.T) {
	var cfg struct {
		Scale TimeScale `yaml:"scale"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("scale: Minutes\n"), &cfg))
	require.Equal(t, Minute, cfg.Scale)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "scale: minute\n", string(out))

	require.Error(t, yaml.Unmarshal([]byte("scale: fortnight\n"), &cfg))
	require.False(t, TimeScale(7).Valid())
	require.Equal(t, "TimeScale(7)", TimeScale(7).String())
}
