package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/display"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:80", cfg.Listen)
	assert.Equal(t, 120, cfg.DefaultSeconds)
	assert.Equal(t, DriverHT16K33, cfg.Display.Driver)
	assert.Equal(t, uint16(0x70), cfg.Display.Address)
	assert.Equal(t, 8, cfg.Display.Brightness)
	assert.False(t, cfg.Discovery.Enabled)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
listen: 127.0.0.1:8080
default_seconds: 90
display:
  driver: console
  address: 0x71
  brightness: 0
log:
  level: debug
  events: /tmp/events.tlog
  trace_display: true
history:
  path: /tmp/history.db
discovery:
  enabled: true
  interface: eth0
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, 90, cfg.DefaultSeconds)
	assert.Equal(t, DriverConsole, cfg.Display.Driver)
	assert.Equal(t, uint16(0x71), cfg.Display.Address)
	assert.Equal(t, 0, cfg.Display.Brightness)
	assert.Equal(t, "/tmp/events.tlog", cfg.Log.Events)
	assert.True(t, cfg.Log.TraceDisplay)
	assert.Equal(t, "/tmp/history.db", cfg.History.Path)
	assert.True(t, cfg.Discovery.Enabled)
	assert.Equal(t, "eth0", cfg.Discovery.Interface)
	assert.Equal(t, DefaultInstance, cfg.Discovery.Instance)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("listen: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "segtimer.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_seconds: 30\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.DefaultSeconds)
		assert.Equal(t, DefaultListen, cfg.Listen)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, "failed to read file", lerr.Message)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("display: [\n"), 0o644))

		_, err := Load(path)
		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, path, lerr.File)
		assert.Equal(t, "failed to parse YAML", lerr.Message)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"bad listen", func(c *Config) { c.Listen = "nohost" }, nil},
		{"seconds too high", func(c *Config) { c.DefaultSeconds = 6000 }, digits.ErrConfiguration},
		{"negative seconds", func(c *Config) { c.DefaultSeconds = -1 }, digits.ErrConfiguration},
		{"unknown driver", func(c *Config) { c.Display.Driver = "lcd" }, nil},
		{"address", func(c *Config) { c.Display.Address = 0x80 }, nil},
		{"brightness", func(c *Config) { c.Display.Brightness = 16 }, display.ErrInvalidBrightness},
		{"blink rate", func(c *Config) { c.Display.BlinkRate = 4 }, display.ErrInvalidBlinkRate},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	cfg := Default()
	cfg.DefaultSeconds = 5999
	cfg.Display.Brightness = 15
	cfg.Display.BlinkRate = 3
	cfg.Display.Driver = DriverNone
	assert.NoError(t, cfg.Validate())

	cfg.DefaultSeconds = 0
	cfg.Display.Brightness = 0
	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, DriverHT16K33, cfg.Display.Driver)
	assert.Equal(t, DefaultAddress, cfg.Display.Address)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultInstance, cfg.Discovery.Instance)
}
