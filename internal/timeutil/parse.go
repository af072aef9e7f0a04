package timeutil

import (
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"github.com/geopulse/timeline/internal/apperr"
)

var errUnparsableDate = &apperr.Error{
	Message: "unable to understand date %q",
}

// FromStr parses a civil date from user input. Besides YYYY-MM-DD it accepts
// natural language such as "yesterday" or "3 days ago", resolved relative to
// now in loc.
func FromStr(s string, now time.Time, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)

	if d, err := ParseDate(s); err == nil {
		return d, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	cfg := &dps.Configuration{
		CurrentTime: now.In(loc),
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return Date{}, errUnparsableDate.Fmt(s).Wrap(err)
	}

	// The parser keeps the location it resolved the input in.
	return calendarDate(dt.Time), nil
}
