package timeline

import (
	"time"

	"github.com/hako/durafmt"

	"github.com/geopulse/timeline/internal/cache"
	"github.com/geopulse/timeline/internal/timeutil"
)

// NotAvailable is rendered in place of values that cannot be derived from a
// malformed record.
const NotAvailable = "N/A"

const (
	clock24 = "15:04"
	clock12 = "3:04 PM"

	locale24 = "24h"
	locale12 = "12h"

	rangeSeparator = " – "
)

// Formatter renders the time range of timeline entries in the display
// preferences of the user.
type Formatter struct {
	cache  *cache.Cache
	loc    *time.Location
	hour24 bool
}

// NewFormatter returns a formatter for the given zone and clock. A nil cache
// disables memoization.
func NewFormatter(loc *time.Location, hour24 bool, c *cache.Cache) *Formatter {
	f := &Formatter{cache: c}

	f.SetPreferences(loc, hour24)

	return f
}

// SetPreferences switches the zone and clock format. Memoized strings are
// dropped when either changes.
func (f *Formatter) SetPreferences(loc *time.Location, hour24 bool) {
	if loc == nil {
		loc = time.UTC
	}

	f.loc = loc
	f.hour24 = hour24

	f.cache.Reset(loc.String(), f.locale())
}

// Location returns the zone entries are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) locale() string {
	if f.hour24 {
		return locale24
	}

	return locale12
}

// Clock renders the wall clock time of t.
func (f *Formatter) Clock(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	layout := clock12
	if f.hour24 {
		layout = clock24
	}

	return t.In(f.loc).Format(layout)
}

// Duration renders d using its two most significant units.
func Duration(d time.Duration) string {
	if d < 0 {
		return NotAvailable
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d).LimitToUnit("hours").LimitFirstN(2).String()
}

// TimeRange renders the part of the entry that falls within its day as
// "HH:MM – HH:MM (duration)".
func (f *Formatter) TimeRange(e *Entry) string {
	k := cache.Key{
		SpanID: e.Record.ID,
		Date:   e.Date,
		Zone:   f.loc.String(),
		Locale: f.locale(),
	}

	if k.SpanID != "" {
		if v, ok := f.cache.Get(k); ok {
			return v
		}
	}

	w := e.Window

	v := f.Clock(w.EffectiveStart) + rangeSeparator + f.Clock(w.EffectiveEnd) +
		" (" + Duration(w.DurationInDay) + ")"

	if k.SpanID != "" {
		f.cache.Add(k, v)
	}

	return v
}

// RecordOnDay renders the part of the record that falls within date, or
// NotAvailable if the record is malformed or not shown on that day.
func (f *Formatter) RecordOnDay(r *Record, date timeutil.Date) string {
	span, err := NewSpan(r)
	if err != nil || !timeutil.IsAttributedToDay(span, date, f.loc) {
		return NotAvailable
	}

	return f.TimeRange(&Entry{
		Record: *r,
		Kind:   r.SpanKind(),
		Date:   date,
		Span:   span,
		Window: timeutil.ClipToDay(span, date, f.loc),
	})
}
