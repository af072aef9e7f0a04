package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"

	"github.com/geopulse/timeline/internal/cache"
	"github.com/geopulse/timeline/internal/timeutil"
)

const (
	keyTimezone       = "display.timezone"
	keyTwentyFourHour = "display.24hr_clock"
	keyDarkTheme      = "display.dark_theme"
	keyCacheCapacity  = "cache.capacity"
	keyStoreLookback  = "store.lookback"
	keyLogLevel       = "log.level"
	keyLogMaxSize     = "log.max_size"
	keyLogMaxBackups  = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// The config file is created with default values if it does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and any values already set by
// earlier options, such as the first-run prompt.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyTimezone, timeutil.UTC)
	v.SetDefault(keyTwentyFourHour, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyCacheCapacity, cache.DefaultCapacity)
	v.SetDefault(keyStoreLookback, "720h")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Display.Timezone != "" {
		v.Set(keyTimezone, c.Display.Timezone)
		v.Set(keyTwentyFourHour, c.Display.TwentyFourHour)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
