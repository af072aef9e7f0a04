package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/geopulse/timeline/internal/timeutil"
)

type (
	// Config holds all configuration settings
	Config struct {
		Location *time.Location `mapstructure:"-"`
		Log      LogConfig      `mapstructure:"log"`
		Display  DisplayConfig  `mapstructure:"display"`
		CLI      CLIConfig      `mapstructure:"-"`
		Cache    CacheConfig    `mapstructure:"cache"`
		Store    StoreConfig    `mapstructure:"store"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		Timezone       string `mapstructure:"timezone"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
		DarkTheme      bool   `mapstructure:"dark_theme"`
		NoColor        bool   `mapstructure:"-"`
	}

	// CacheConfig holds settings for memoized formatting
	CacheConfig struct {
		Capacity int `mapstructure:"capacity"`
	}

	// StoreConfig holds record store settings
	StoreConfig struct {
		// Lookback is how far before a reporting window the store searches
		// for records that started earlier but overlap it.
		Lookback time.Duration `mapstructure:"lookback"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Date   timeutil.Date
		Start  timeutil.Date
		End    timeutil.Date
		Period timeutil.Period
		Output string
		JSON   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}

// Locale identifies the clock format for cache invalidation.
func (c *Config) Locale() string {
	if c.Display.TwentyFourHour {
		return "24h"
	}

	return "12h"
}
