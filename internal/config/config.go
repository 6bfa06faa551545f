// Package config provides configuration loading from a YAML file and
// environment variables. Environment variables take precedence for dev flexibility.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phinze/huedial/internal/dial"
	"github.com/phinze/huedial/internal/wheel"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps validation failures of a loaded configuration.
var ErrInvalid = errors.New("invalid config")

// Config holds the full application configuration, assembled from YAML + env.
type Config struct {
	Dial   DialConfig   `yaml:"dial"`
	Window WindowConfig `yaml:"window"`
	Deck   DeckConfig   `yaml:"deck"`
}

// DialConfig holds the initial dial properties.
type DialConfig struct {
	BorderWidth int     `yaml:"border_width"`
	Alpha       float64 `yaml:"alpha"`
	Beta        float64 `yaml:"beta"`
	Clockwise   bool    `yaml:"clockwise"`
	Background  string  `yaml:"background"`
}

// WindowConfig holds the desktop window host configuration.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DeckConfig holds the Stream Deck host configuration.
type DeckConfig struct {
	Brightness int `yaml:"brightness"`
	// StripX is the left edge of the dial region on the touch strip.
	StripX int `yaml:"strip_x"`
	// RotateStep is how far one dial detent turns both handles, in degrees.
	RotateStep float64 `yaml:"rotate_step"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Dial: DialConfig{
			Alpha:      dial.DefaultAlpha,
			Beta:       dial.DefaultBeta,
			Background: "hsv",
		},
		Window: WindowConfig{Width: 240, Height: 240, Title: "huedial"},
		Deck:   DeckConfig{Brightness: 80, RotateStep: 5},
	}
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "huedial")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	if p := os.Getenv("HUEDIAL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads the config at DefaultConfigPath and applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(DefaultConfigPath())
}

// LoadFile assembles configuration from the given YAML file + environment variables.
// A missing file is not an error; defaults are used instead.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	// 1. Try to load YAML config file
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// 2. Environment variables override everything
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Clamp()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HUEDIAL_BORDER_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HUEDIAL_BORDER_WIDTH: %w", err)
		}
		c.Dial.BorderWidth = n
	}
	if v := os.Getenv("HUEDIAL_ALPHA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HUEDIAL_ALPHA: %w", err)
		}
		c.Dial.Alpha = f
	}
	if v := os.Getenv("HUEDIAL_BETA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HUEDIAL_BETA: %w", err)
		}
		c.Dial.Beta = f
	}
	if v := os.Getenv("HUEDIAL_CLOCKWISE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HUEDIAL_CLOCKWISE: %w", err)
		}
		c.Dial.Clockwise = b
	}
	if v := os.Getenv("HUEDIAL_BACKGROUND"); v != "" {
		c.Dial.Background = v
	}
	return nil
}

// Validate checks values that cannot be clamped into range.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{"alpha": c.Dial.Alpha, "beta": c.Dial.Beta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: dial.%s must be finite, got %v", ErrInvalid, name, v)
		}
	}
	if _, err := wheel.Lookup(c.Dial.Background); err != nil {
		return fmt.Errorf("%w: dial.background: %w", ErrInvalid, err)
	}
	return nil
}

// Clamp pulls range-limited values into bounds. Angles are reduced to one
// turn here so the controller's single-step normalization always suffices.
func (c *Config) Clamp() {
	c.Dial.BorderWidth = max(0, min(c.Dial.BorderWidth, dial.MaxBorderWidth))
	c.Dial.Alpha = reduce(c.Dial.Alpha)
	c.Dial.Beta = reduce(c.Dial.Beta)
	c.Deck.Brightness = max(0, min(c.Deck.Brightness, 100))
}

func reduce(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Apply configures a controller from the dial section.
func (d DialConfig) Apply(c *dial.Controller) error {
	fn, err := wheel.Lookup(d.Background)
	if err != nil {
		return err
	}
	c.SetBackground(fn)
	c.SetBorderWidth(d.BorderWidth)
	c.SetAlpha(d.Alpha)
	c.SetBeta(d.Beta)
	c.SetClockwise(d.Clockwise)
	return nil
}

// WriteFile writes cfg as YAML to path, creating the directory if needed.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
