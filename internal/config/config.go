// Package config handles goobj configuration loading and management.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config holds all settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Parser  ParserConfig  `yaml:"parser"`
	Watch   WatchConfig   `yaml:"watch"`
	View    ViewConfig    `yaml:"view"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ParserConfig holds OBJ parser settings.
type ParserConfig struct {
	ExtraCoords bool `yaml:"extra_coords"` // keep w and other extra vertex values
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ViewConfig holds settings for how loaded models are presented.
type ViewConfig struct {
	Normalize bool `yaml:"normalize"` // center and fit into the unit cube on load
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Parser: ParserConfig{
			ExtraCoords: false,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		View: ViewConfig{
			Normalize: true,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if c.Watch.Debounce < 0 {
		err = multierr.Append(err, fmt.Errorf("watch.debounce: must not be negative, got %v", c.Watch.Debounce))
	}

	return err
}
