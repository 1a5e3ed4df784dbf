// Package config loads wirepath settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"

	"wirepath/routing"
)

// Prefix is prepended to every environment variable name.
const Prefix = "WIREPATH_"

// Config holds the settings shared by all wirepath commands.
type Config struct {
	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Router configuration
	Epsilon      float64 `env:"EPSILON" envDefault:"1e-9"`
	ObstacleMode string  `env:"OBSTACLE_MODE" envDefault:"segments"`
	Detour       string  `env:"DETOUR" envDefault:"intersection"`

	// Plot configuration
	CanvasWidth  int `env:"CANVAS_WIDTH" envDefault:"80"`
	CanvasHeight int `env:"CANVAS_HEIGHT" envDefault:"24"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadEnv(nil)
}

// LoadEnv loads configuration from the given variables instead of the process
// environment when environ is non-nil.
func LoadEnv(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: Prefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isValidLogLevel(c.LogLevel) {
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if c.Epsilon <= 0 {
		return errors.New("EPSILON must be positive")
	}

	if _, err := routing.ParseObstacleMode(c.ObstacleMode); err != nil {
		return errors.Wrap(err, "OBSTACLE_MODE")
	}

	if _, err := routing.ParseDetourPolicy(c.Detour); err != nil {
		return errors.Wrap(err, "DETOUR")
	}

	if c.CanvasWidth < 2 || c.CanvasHeight < 2 {
		return errors.New("CANVAS_WIDTH and CANVAS_HEIGHT must be at least 2")
	}

	return nil
}

// RouterOptions returns the router options described by the configuration.
// The configuration must have been validated.
func (c *Config) RouterOptions() []routing.Option {
	mode, _ := routing.ParseObstacleMode(c.ObstacleMode)
	detour, _ := routing.ParseDetourPolicy(c.Detour)
	return []routing.Option{
		routing.WithEpsilon(c.Epsilon),
		routing.WithObstacleMode(mode),
		routing.WithDetourPolicy(detour),
	}
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogLevel=%s, Epsilon=%g, ObstacleMode=%s, Detour=%s, Canvas=%dx%d}",
		c.LogLevel,
		c.Epsilon,
		c.ObstacleMode,
		c.Detour,
		c.CanvasWidth,
		c.CanvasHeight,
	)
}
