package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/display"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

// Display drivers.
const (
	DriverHT16K33 = "ht16k33"
	DriverConsole = "console"
	DriverNone    = "none"
)

// Defaults.
const (
	DefaultListen         = "0.0.0.0:80"
	DefaultAddress uint16 = 0x70
	DefaultInstance       = "segtimer"
	DefaultLogLevel       = "info"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the service configuration.
type Config struct {
	Listen         string          `yaml:"listen"`
	DefaultSeconds int             `yaml:"default_seconds"`
	Display        DisplayConfig   `yaml:"display"`
	Log            LogConfig       `yaml:"log"`
	History        HistoryConfig   `yaml:"history"`
	Discovery      DiscoveryConfig `yaml:"discovery"`
}

// DisplayConfig selects and sets up the display.
type DisplayConfig struct {
	Driver string `yaml:"driver"`

	// Bus is the periph I2C bus name. Empty opens the first bus found.
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`

	Brightness int `yaml:"brightness"`
	BlinkRate  int `yaml:"blink_rate"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`

	// Events is the event log file. Empty disables it.
	Events string `yaml:"events"`

	// TraceDisplay adds a display event for every digit write.
	TraceDisplay bool `yaml:"trace_display"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	// Path is the SQLite file. Empty disables history.
	Path string `yaml:"path"`
}

// DiscoveryConfig configures mDNS advertisement.
type DiscoveryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:         DefaultListen,
		DefaultSeconds: timer.DefaultSeconds,
		Display: DisplayConfig{
			Driver:     DriverHT16K33,
			Address:    DefaultAddress,
			Brightness: display.DefaultBrightness,
			BlinkRate:  int(display.BlinkOff),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Discovery: DiscoveryConfig{
			Instance: DefaultInstance,
		},
	}
}

// LoadError reports a configuration file that could not be read or parsed.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Cause)
	}
	return e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a configuration file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, &LoadError{File: path, Message: "failed to parse YAML", Cause: err}
	}
	return cfg, nil
}

// ApplyDefaults fills fields left empty by a file or flags.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Display.Driver == "" {
		c.Display.Driver = DriverHT16K33
	}
	if c.Display.Address == 0 {
		c.Display.Address = DefaultAddress
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Discovery.Instance == "" {
		c.Discovery.Instance = DefaultInstance
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("%w: listen %q: %v", ErrInvalid, c.Listen, err)
	}
	if err := digits.ValidateSeconds(c.DefaultSeconds); err != nil {
		return fmt.Errorf("%w: default_seconds: %w", ErrInvalid, err)
	}

	switch c.Display.Driver {
	case DriverHT16K33, DriverConsole, DriverNone:
	default:
		return fmt.Errorf("%w: unknown display driver %q", ErrInvalid, c.Display.Driver)
	}
	if c.Display.Address > 0x7F {
		return fmt.Errorf("%w: display address 0x%X is not a 7-bit I2C address", ErrInvalid, c.Display.Address)
	}
	if err := display.ValidateBrightness(c.Display.Brightness); err != nil {
		return fmt.Errorf("%w: display: %w", ErrInvalid, err)
	}
	if err := display.ValidateBlinkRate(display.BlinkRate(c.Display.BlinkRate)); err != nil {
		return fmt.Errorf("%w: display: %w", ErrInvalid, err)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}
	return nil
}

// SlogLevel parses Level (debug, info, warn, error).
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
