// Package config loads renderer and server settings from YAML or TOML
// files.
//
// Keys not listed on File are ignored. Keys that are absent keep the
// value from Default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/sketch/backend"
	"github.com/gogpu/sketch/element"
	"github.com/gogpu/sketch/render"
)

var (
	// ErrInvalidConfig is returned when a value is out of range.
	ErrInvalidConfig = errors.New("config: invalid config")

	// ErrUnknownFormat is returned for file extensions other than
	// .yaml, .yml and .toml.
	ErrUnknownFormat = errors.New("config: unknown format")
)

// Format is a configuration file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Weight policy names accepted in File.Weights.
const (
	WeightsUniform = "uniform"
	WeightsDetail  = "detail"
)

// Duration is a time.Duration written as a string such as "5s".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Server holds the demo server settings.
type Server struct {
	Addr         string   `yaml:"addr" toml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout" toml:"write_timeout"`
}

// File is the content of a configuration file.
type File struct {
	// Backend is "canvas", "svg", "webgl", "gpu" or "auto". Unrecognized
	// names auto-select.
	Backend       string  `yaml:"backend" toml:"backend"`
	Cache         bool    `yaml:"cache" toml:"cache"`
	AutoThreshold float64 `yaml:"auto_threshold" toml:"auto_threshold"`

	// Weights is the complexity policy, "uniform" or "detail".
	Weights  string `yaml:"weights" toml:"weights"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Server   Server `yaml:"server" toml:"server"`
}

// Default returns the built-in settings.
func Default() File {
	return File{
		Backend:       backend.NameCanvas,
		AutoThreshold: render.DefaultAutoThreshold,
		Weights:       WeightsUniform,
		LogLevel:      "info",
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration(5 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
		},
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the file at path.
func Load(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (File, error) {
	f := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	default:
		return File{}, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return File{}, fmt.Errorf("config: decode %v: %w", format, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks value ranges and enumerations.
func (f File) Validate() error {
	var errs []error
	if f.AutoThreshold < 0 {
		errs = append(errs, fmt.Errorf("%w: auto_threshold %v is negative", ErrInvalidConfig, f.AutoThreshold))
	}
	switch strings.ToLower(f.Weights) {
	case "", WeightsUniform, WeightsDetail:
	default:
		errs = append(errs, fmt.Errorf("%w: weights %q", ErrInvalidConfig, f.Weights))
	}
	var lvl slog.Level
	if f.LogLevel != "" {
		if err := lvl.UnmarshalText([]byte(f.LogLevel)); err != nil {
			errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, f.LogLevel))
		}
	}
	if f.Server.ReadTimeout < 0 || f.Server.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative server timeout", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// RenderConfig converts f into a render.Config.
func (f File) RenderConfig() render.Config {
	cfg := render.Config{
		Backend:       f.Backend,
		Cache:         f.Cache,
		AutoThreshold: f.AutoThreshold,
		Weight:        element.UniformWeight,
	}
	if strings.EqualFold(f.Weights, WeightsDetail) {
		cfg.Weight = element.DetailWeight
	}
	return cfg
}

// SlogLevel returns the configured log level, or slog.LevelInfo when it is
// empty or invalid.
func (f File) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
