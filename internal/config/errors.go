package config

import "github.com/geopulse/timeline/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidTimezone = &apperr.Error{
		Message: "invalid timezone %q: expected an IANA name such as Europe/Kyiv, or UTC",
	}

	errInvalidCapacity = &apperr.Error{
		Message: "cache capacity must be between 0 and %d, got %d",
	}

	errInvalidLookback = &apperr.Error{
		Message: "store lookback must be between %v and %v, got %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q: expected one of debug, info, warn, error",
	}

	errInvalidLogRotation = &apperr.Error{
		Message: "log max_size and max_backups must be positive",
	}

	errInvalidDateFlag = &apperr.Error{
		Message: "invalid --%s value",
	}

	errInvalidRange = &apperr.Error{
		Message: "end date (%s) cannot be before start date (%s)",
	}
)
