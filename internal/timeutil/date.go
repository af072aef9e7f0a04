package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/geopulse/timeline/internal/apperr"
)

// DateLayout is the wire format of a civil date.
const DateLayout = "2006-01-02"

var errInvalidDate = &apperr.Error{
	Message: "invalid date %q: expected YYYY-MM-DD",
}

// Date is a calendar date with no timezone attached. Paired with a location
// it names a civil day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errInvalidDate.Fmt(s).Wrap(err)
	}

	return calendarDate(t), nil
}

// DateOf returns the civil date of the instant in loc. This is the only
// technique used to decide whether two instants share a calendar day.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}

	y, m, d := t.In(loc).Date()

	return Date{Year: y, Month: m, Day: d}
}

// calendarDate returns the date shown on the clock of t in its own location.
func calendarDate(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: m, Day: d}
}

// midnightUTC is the naive UTC midnight of the date. It is only meaningful
// for calendar arithmetic.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d.
func (d Date) AddDays(n int) Date {
	return calendarDate(d.midnightUTC().AddDate(0, 0, n))
}

// Weekday returns the day of the week of the date.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	return d.midnightUTC().Compare(other.midnightUTC())
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format renders the date with a time.Format layout. Clock fields of the
// layout render as midnight.
func (d Date) Format(layout string) string {
	return d.midnightUTC().Format(layout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// DaysBetween returns the number of calendar days from one date to another.
// The result is negative when to is before from.
func DaysBetween(from, to Date) int {
	hours := to.midnightUTC().Sub(from.midnightUTC()).Hours()

	return Round(hours / HoursInADay)
}
