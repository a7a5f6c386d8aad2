// Package config loads annomap settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"annomap/internal/applog"
	"annomap/internal/feature"
	"annomap/internal/view"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the whole file. Zero sections are filled from Default.
type Config struct {
	View   View                          `toml:"view"`
	Canvas Canvas                        `toml:"canvas"`
	Style  map[string]feature.StylePatch `toml:"style"`
	Log    Log                           `toml:"log"`
}

// View configures the transform.
type View struct {
	XAxis     string  `toml:"x_axis"`
	YAxis     string  `toml:"y_axis"`
	MinScale  float64 `toml:"min_scale"`
	MaxScale  float64 `toml:"max_scale"`
	ZoomStep  float64 `toml:"zoom_step"`
	FitMargin float64 `toml:"fit_margin"`
}

// Canvas configures drawing and interaction.
type Canvas struct {
	PixelRatio    float64 `toml:"pixel_ratio"`
	MoveStep      float64 `toml:"move_step"`
	MinClickWidth float64 `toml:"min_click_width"`
	Background    string  `toml:"background"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		View: View{
			XAxis:     "right",
			YAxis:     "bottom",
			MinScale:  1e-4,
			MaxScale:  1e4,
			ZoomStep:  1.2,
			FitMargin: 1.1,
		},
		Canvas: Canvas{
			PixelRatio:    1,
			MoveStep:      1,
			MinClickWidth: 6,
			Background:    "#0b0f14",
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/annomap/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "annomap", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		applog.Logger().Debug("config not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := Decode(bytes.NewReader(b), &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	applog.Logger().Info("config loaded", "path", path)
	return cfg, nil
}

// Decode reads TOML into cfg, rejecting unknown keys, and validates the
// result.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, sme.String())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

// Save writes cfg as TOML, creating the directory.
func Save(path string, cfg Config) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.ViewOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(c.View.FitMargin >= 1) {
		return fmt.Errorf("%w: fit_margin %g must be at least 1", ErrInvalidConfig, c.View.FitMargin)
	}
	if !(c.Canvas.PixelRatio > 0) {
		return fmt.Errorf("%w: pixel_ratio %g", ErrInvalidConfig, c.Canvas.PixelRatio)
	}
	if !(c.Canvas.MoveStep > 0) {
		return fmt.Errorf("%w: move_step %g", ErrInvalidConfig, c.Canvas.MoveStep)
	}
	if !(c.Canvas.MinClickWidth >= 0) {
		return fmt.Errorf("%w: min_click_width %g", ErrInvalidConfig, c.Canvas.MinClickWidth)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	if _, err := c.StylePatches(); err != nil {
		return err
	}
	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Axes parses the axis directions.
func (c Config) Axes() (view.Axes, error) {
	x, err := view.ParseXDirection(c.View.XAxis)
	if err != nil {
		return view.Axes{}, err
	}
	y, err := view.ParseYDirection(c.View.YAxis)
	if err != nil {
		return view.Axes{}, err
	}
	return view.Axes{X: x, Y: y}, nil
}

// ViewOptions builds validated map options. The viewport size is left at
// the view default; the front end sets it from the terminal.
func (c Config) ViewOptions() (view.Options, error) {
	o := view.DefaultOptions()
	a, err := c.Axes()
	if err != nil {
		return o, err
	}
	o.Axes = a
	o.MinScale, o.MaxScale, o.ZoomStep = c.View.MinScale, c.View.MaxScale, c.View.ZoomStep
	o.Scale = min(max(o.Scale, o.MinScale), o.MaxScale)
	return o, o.Validate()
}

// Settings returns the feature interaction settings.
func (c Config) Settings() feature.Settings {
	return feature.Settings{MoveStep: c.Canvas.MoveStep, MinClickWidth: c.Canvas.MinClickWidth}
}

// StylePatches keys the [style.<kind>] tables by kind and checks each
// patch against the kind's default style.
func (c Config) StylePatches() (map[feature.Kind]feature.StylePatch, error) {
	out := make(map[feature.Kind]feature.StylePatch, len(c.Style))
	for name, p := range c.Style {
		k, err := feature.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: style: %v", ErrInvalidConfig, err)
		}
		if err := feature.DefaultStyle(k).Merge(p).Validate(); err != nil {
			return nil, fmt.Errorf("%w: style.%s: %v", ErrInvalidConfig, name, err)
		}
		out[k] = p
	}
	return out, nil
}
