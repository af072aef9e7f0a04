package timeline

import (
	"errors"

	"github.com/geopulse/timeline/internal/apperr"
)

var (
	// ErrInvalidInput is returned when a record is missing a timestamp or
	// duration, or describes a span that ends before it starts.
	ErrInvalidInput = &apperr.Error{
		Message: "invalid %s record %q: %s",
	}

	// ErrUnknownKind is returned for records tagged with something other than
	// stay, trip or gap.
	ErrUnknownKind = &apperr.Error{
		Message: "record %q has unknown kind %q: expected one of stay, trip, gap",
	}

	errMissingTimestamp = errors.New("missing timestamp")
)

// IsInvalidInput reports whether err stems from a malformed record.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
