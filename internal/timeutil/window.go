package timeutil

import (
	"log/slog"
	"time"
)

// midnightSearchHours bounds the whole-hour candidate search used when the
// zone rules cannot place local midnight directly.
const midnightSearchHours = 24

// Span is an immutable interval of absolute time. End is exclusive and never
// before Start for spans built from valid records.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewSpan returns the span that begins at start and lasts for d.
func NewSpan(start time.Time, d time.Duration) Span {
	return Span{Start: start, End: start.Add(d)}
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Window is the half-open interval [Start, End) of one civil day.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastInstant returns the inclusive end of the day at millisecond precision.
func (w Window) LastInstant() time.Time {
	return w.End.Add(-time.Millisecond)
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the length of the civil day, which is not always 24 hours.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// ClippedWindow is the part of a span that falls within one civil day.
type ClippedWindow struct {
	DayStart       time.Time     `json:"day_start"`
	DayEnd         time.Time     `json:"day_end"`
	EffectiveStart time.Time     `json:"effective_start"`
	EffectiveEnd   time.Time     `json:"effective_end"`
	DurationInDay  time.Duration `json:"duration_in_day"`
}

// empty reports whether no part of the span falls within the day.
func (c ClippedWindow) empty() bool {
	return !c.EffectiveEnd.After(c.EffectiveStart)
}

// resolvers place the first instant of a civil day, in order of preference.
var resolvers = []func(Date, *time.Location) (time.Time, bool){
	zoneMidnight,
	searchMidnight,
}

// DayBounds returns the instants at which the civil day begins and the next
// one begins in loc. Consecutive days share a boundary.
func DayBounds(date Date, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}

	return Window{
		Start: dayStart(date, loc),
		End:   dayStart(date.AddDays(1), loc),
	}
}

func dayStart(date Date, loc *time.Location) time.Time {
	if loc == time.UTC {
		return date.midnightUTC()
	}

	for _, resolve := range resolvers {
		if t, ok := resolve(date, loc); ok {
			return t.UTC()
		}
	}

	slog.Warn(
		"timezone resolution failed, falling back to UTC midnight",
		slog.String("date", date.String()),
		slog.String("zone", loc.String()),
	)

	return date.midnightUTC()
}

func isLocalMidnight(t time.Time, date Date, loc *time.Location) bool {
	local := t.In(loc)

	return DateOf(local, loc) == date &&
		local.Hour() == 0 &&
		local.Minute() == 0 &&
		local.Second() == 0 &&
		local.Nanosecond() == 0
}

// zoneMidnight places local midnight using the zone rules. When midnight is
// skipped by a transition, the day begins at the transition.
func zoneMidnight(date Date, loc *time.Location) (time.Time, bool) {
	t := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)

	start, end := t.ZoneBounds()

	if isLocalMidnight(t, date, loc) {
		// Midnight occurs twice when clocks fall back across it.
		if !start.IsZero() {
			_, current := t.Zone()
			_, previous := start.Add(-time.Nanosecond).Zone()

			if previous > current {
				earlier := t.Add(-time.Duration(previous-current) * time.Second)
				if earlier.Before(start) && isLocalMidnight(earlier, date, loc) {
					return earlier, true
				}
			}
		}

		return t, true
	}

	for _, c := range []time.Time{start, end} {
		if c.IsZero() {
			continue
		}

		if DateOf(c, loc) == date && DateOf(c.Add(-time.Nanosecond), loc) != date {
			return c, true
		}
	}

	return time.Time{}, false
}

// searchMidnight tries whole-hour offsets from naive UTC midnight until the
// local clock reads 00:00:00 on the target date.
func searchMidnight(date Date, loc *time.Location) (time.Time, bool) {
	naive := date.midnightUTC()

	for h := -midnightSearchHours; h <= midnightSearchHours; h++ {
		c := naive.Add(time.Duration(h) * time.Hour)
		if isLocalMidnight(c, date, loc) {
			return c, true
		}
	}

	return time.Time{}, false
}

// SpansMultipleDays reports whether the span starts and ends on different
// civil days in loc. A span ending exactly at midnight is overnight.
// Zero-length spans never are.
func SpansMultipleDays(s Span, loc *time.Location) bool {
	if !s.End.After(s.Start) {
		return false
	}

	return DateOf(s.Start, loc) != DateOf(s.End, loc)
}

// OverlappingDays returns, in chronological order, every civil day in loc
// that the closed span [Start, End] touches. A span ending at midnight
// includes the next day, where its clipped duration is zero.
func OverlappingDays(s Span, loc *time.Location) []Date {
	first := DateOf(s.Start, loc)
	last := DateOf(s.End, loc)

	days := make([]Date, 0, DaysBetween(first, last)+1)

	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}

	return days
}

// IsAttributedToDay reports whether the span belongs on the timeline of the
// given civil day. Overnight spans belong to every day they overlap; other
// spans belong to the day they start on.
func IsAttributedToDay(s Span, date Date, loc *time.Location) bool {
	if !SpansMultipleDays(s, loc) {
		return DateOf(s.Start, loc) == date
	}

	w := DayBounds(date, loc)

	return s.Start.Before(w.End) && s.End.After(w.Start)
}

// ClipToDay returns the part of the span that falls within the civil day.
// The duration is floored to whole seconds and is zero when the span lies
// outside the day.
func ClipToDay(s Span, date Date, loc *time.Location) ClippedWindow {
	w := DayBounds(date, loc)

	start := s.Start
	if w.Start.After(start) {
		start = w.Start
	}

	end := s.End
	if w.End.Before(end) {
		end = w.End
	}

	c := ClippedWindow{
		DayStart:       w.Start,
		DayEnd:         w.End,
		EffectiveStart: start,
		EffectiveEnd:   end,
	}

	if !c.empty() {
		c.DurationInDay = end.Sub(start).Truncate(time.Second)
	}

	return c
}
