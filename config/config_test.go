package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-viewer/sim"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "Bus Viewer", cfg.Window.Title)
	assert.True(t, cfg.Window.VSync)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, 1, cfg.Viewports)
	assert.True(t, cfg.HUD)
	assert.Equal(t, float32(8), cfg.Camera.MoveSpeed)
	assert.Equal(t, float32(60), cfg.Camera.RotateSpeed)
	assert.Equal(t, float32(14), cfg.Lighting.SpotCutoff)
	assert.False(t, cfg.Render.FrustumCulling)
}

func TestLoad_DefaultsMatchSimulation(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSettings(), cfg.SimSettings())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeFile(t, "busview.json", `{
		"logLevel": "debug",
		"viewports": 4,
		"window": { "width": 800, "height": 600 },
		"drive": { "speed": 10 },
		"lighting": { "spotCutoff": 20, "k1": 0.1 }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Viewports)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, float32(10), cfg.Drive.Speed)
	assert.Equal(t, float32(90), cfg.Drive.TurnRate, "unset keys keep their default")
	assert.InDelta(t, 20, cfg.Lighting.SpotCutoff, 1e-6)
	assert.InDelta(t, 0.1, cfg.Lighting.K1, 1e-6)

	s := cfg.SimSettings()
	assert.Equal(t, 4, s.Viewports)
	assert.Equal(t, float32(10), s.Drive.Speed)
	assert.InDelta(t, 20, s.Lighting.SpotCutoff, 1e-6)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeFile(t, "busview.yaml", "hud: false\norbit:\n  radius: 25\nrender:\n  frustumCulling: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.HUD)
	assert.True(t, cfg.Render.FrustumCulling)
	assert.Equal(t, float32(25), cfg.Orbit.Radius)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BUSVIEW_VIEWPORTS", "4")
	t.Setenv("BUSVIEW_WINDOW_WIDTH", "1920")
	t.Setenv("BUSVIEW_LOGLEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Viewports)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/busview.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidViewports(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeFile(t, "busview.json", `{"viewports": 3}`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidViewports)
}

func TestValidate(t *testing.T) {
	t.Cleanup(viper.Reset)

	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, ErrInvalidWindow},
		{"two viewports", func(c *Config) { c.Viewports = 2 }, ErrInvalidViewports},
		{"zero speed", func(c *Config) { c.Drive.Speed = 0 }, ErrInvalidRate},
		{"negative fan rate", func(c *Config) { c.Animation.FanRate = -1 }, ErrInvalidRate},
		{"zero orbit radius", func(c *Config) { c.Orbit.Radius = 0 }, ErrInvalidRate},
		{"spot cutoff 90", func(c *Config) { c.Lighting.SpotCutoff = 90 }, ErrInvalidLighting},
		{"zero shininess", func(c *Config) { c.Lighting.Shininess = 0 }, ErrInvalidLighting},
		{"negative k2", func(c *Config) { c.Lighting.K2 = -0.1 }, ErrInvalidLighting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}

	assert.NoError(t, base.Validate())
}
