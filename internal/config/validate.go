package config

import (
	"slices"
	"strings"
	"time"

	"github.com/geopulse/timeline/internal/timeutil"
)

var (
	maxCacheCapacity = 1 << 16

	// Lookback bounds for overlapping records.
	minLookback = time.Duration(0)
	maxLookback = 366 * timeutil.HoursInADay * time.Hour

	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
// It also resolves the configured timezone if no option has done so.
func (c *Config) Validate() error {
	if err := c.validateDisplay(); err != nil {
		return err
	}

	if c.Cache.Capacity < 0 || c.Cache.Capacity > maxCacheCapacity {
		return errInvalidCapacity.Fmt(maxCacheCapacity, c.Cache.Capacity)
	}

	if c.Store.Lookback < minLookback || c.Store.Lookback > maxLookback {
		return errInvalidLookback.Fmt(minLookback, maxLookback, c.Store.Lookback)
	}

	return c.validateLog()
}

func (c *Config) validateDisplay() error {
	loc, err := resolveZone(c.Display.Timezone)
	if err != nil {
		return err
	}

	if c.Location == nil {
		c.Location = loc
	}

	return nil
}

// resolveZone loads the zone named by id, reporting unknown names with a
// hint about the expected format.
func resolveZone(id string) (*time.Location, error) {
	loc, err := timeutil.LoadZone(id)
	if timeutil.IsUnknownZone(err) {
		return nil, errInvalidTimezone.Fmt(id).Wrap(err)
	}

	return loc, err
}

func (c *Config) validateLog() error {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 {
		return errInvalidLogRotation
	}

	return nil
}
