// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("compositor: invalid config")

// Config is the on-disk compositor configuration.
//
// TOML example:
//
//	backend = "native"
//	optical_zoom = 1.5
//	max_surface_dimension = 4096
//	surface_pool_bytes = 67108864
//	surface_format = "bgra8unorm"
//	log_level = "debug"
type Config struct {
	// Backend names a surface backend in the registry. Empty selects the
	// best available one.
	Backend string `toml:"backend" yaml:"backend"`

	// OpticalZoom is the zoom new layers start with.
	OpticalZoom float32 `toml:"optical_zoom" yaml:"optical_zoom"`

	// MaxSurfaceDimension caps backing-store width and height in pixels.
	// Zero keeps the backend default.
	MaxSurfaceDimension int `toml:"max_surface_dimension" yaml:"max_surface_dimension"`

	// SurfacePoolBytes is how much released backing-store memory backends
	// keep for reuse. Zero disables recycling.
	SurfacePoolBytes int64 `toml:"surface_pool_bytes" yaml:"surface_pool_bytes"`

	// SurfaceFormat is "rgba8unorm", "bgra8unorm" or "rgba16float".
	SurfaceFormat string `toml:"surface_format" yaml:"surface_format"`

	// LogLevel is a slog level name: "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		OpticalZoom: 1,
		LogLevel:    "warn",
	}
}

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as TOML. Keys not listed in Config are
// rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("compositor: load config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAMLConfig(data)
	default:
		return ParseConfig(data)
	}
}

// ParseConfig decodes a TOML configuration on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// ParseYAMLConfig decodes a YAML configuration on top of DefaultConfig.
func ParseYAMLConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.OpticalZoom < 0 {
		return fmt.Errorf("%w: optical_zoom %g is negative", ErrInvalidConfig, c.OpticalZoom)
	}
	if c.MaxSurfaceDimension < 0 {
		return fmt.Errorf("%w: max_surface_dimension %d is negative", ErrInvalidConfig, c.MaxSurfaceDimension)
	}
	if c.SurfacePoolBytes < 0 {
		return fmt.Errorf("%w: surface_pool_bytes %d is negative", ErrInvalidConfig, c.SurfacePoolBytes)
	}
	if _, err := c.Format(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Format returns the configured surface texture format.
// An empty name yields gputypes.TextureFormatUndefined (backend default).
func (c Config) Format() (gputypes.TextureFormat, error) {
	switch strings.ToLower(c.SurfaceFormat) {
	case "":
		return gputypes.TextureFormatUndefined, nil
	case "rgba8unorm":
		return gputypes.TextureFormatRGBA8Unorm, nil
	case "bgra8unorm":
		return gputypes.TextureFormatBGRA8Unorm, nil
	case "rgba16float":
		return gputypes.TextureFormatRGBA16Float, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: unknown surface_format %q", ErrInvalidConfig, c.SurfaceFormat)
	}
}

// Level returns the configured log level. An empty name means warn.
func (c Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return l, nil
}
