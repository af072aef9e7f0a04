package timeutil

import (
	"errors"
	"strings"
	"time"

	// embedded IANA rules
	_ "time/tzdata"

	"github.com/geopulse/timeline/internal/apperr"
)

// UTC is the timezone identifier that resolves without a rule lookup.
const UTC = "UTC"

var errUnknownZone = &apperr.Error{
	Message: "unknown timezone %q",
}

// LoadZone resolves an IANA timezone identifier. An empty identifier and
// "UTC" resolve to time.UTC.
func LoadZone(id string) (*time.Location, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == UTC {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, errUnknownZone.Fmt(id).Wrap(err)
	}

	return loc, nil
}

// IsUnknownZone reports whether err came from LoadZone rejecting an identifier.
func IsUnknownZone(err error) bool {
	return errors.Is(err, errUnknownZone)
}
