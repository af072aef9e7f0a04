package timeline

import (
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/maruel/natural"

	"github.com/geopulse/timeline/internal/timeutil"
)

// Entry is a record as it appears on the timeline of one civil day.
type Entry struct {
	Record        Record                 `json:"record"`
	Kind          Kind                   `json:"kind"`
	Date          timeutil.Date          `json:"date"`
	Span          timeutil.Span          `json:"span"`
	Window        timeutil.ClippedWindow `json:"window"`
	ContinuedFrom string                 `json:"continued_from,omitempty"`
	Overnight     bool                   `json:"overnight"`
	OvernightCard bool                   `json:"overnight_card"`
}

// Day groups the entries attributed to a civil day.
type Day struct {
	Date    timeutil.Date `json:"date"`
	Entries []Entry       `json:"entries"`
}

// Total returns the time entries of the given kind spend within the day.
func (d *Day) Total(kind Kind) time.Duration {
	var total time.Duration

	for i := range d.Entries {
		if d.Entries[i].Kind == kind {
			total += d.Entries[i].Window.DurationInDay
		}
	}

	return total
}

type spanned struct {
	record *Record
	kind   Kind
	span   timeutil.Span
}

// IsOvernight reports whether the record starts and ends on different civil
// days in loc. Malformed records are never overnight; only an unknown kind
// is reported as an error.
func IsOvernight(r *Record, loc *time.Location) (bool, error) {
	span, err := NewSpan(r)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return false, err
		}

		logSkipped(r, err)

		return false, nil
	}

	return timeutil.SpansMultipleDays(span, loc), nil
}

// ShouldShowAsOvernightCard reports whether the record is drawn with the
// overnight layout on the timeline of date.
func ShouldShowAsOvernightCard(
	r *Record,
	date timeutil.Date,
	loc *time.Location,
) (bool, error) {
	span, err := NewSpan(r)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			return false, err
		}

		logSkipped(r, err)

		return false, nil
	}

	return timeutil.SpansMultipleDays(span, loc) &&
		timeutil.IsAttributedToDay(span, date, loc), nil
}

// ForDay returns the entries attributed to the civil day, ordered by the
// time they begin within the day. Malformed records are skipped.
func ForDay(records []Record, date timeutil.Date, loc *time.Location) ([]Entry, error) {
	spans, err := toSpans(records)
	if err != nil {
		return nil, err
	}

	return entriesFor(spans, date, loc), nil
}

// GroupByDay returns one Day for every civil day from start to end
// inclusive, including days without entries.
func GroupByDay(
	records []Record,
	start, end timeutil.Date,
	loc *time.Location,
) ([]Day, error) {
	spans, err := toSpans(records)
	if err != nil {
		return nil, err
	}

	if end.Before(start) {
		return nil, nil
	}

	days := make([]Day, 0, timeutil.DaysBetween(start, end)+1)

	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, Day{
			Date:    d,
			Entries: entriesFor(spans, d, loc),
		})
	}

	return days, nil
}

func toSpans(records []Record) ([]spanned, error) {
	spans := make([]spanned, 0, len(records))

	for i := range records {
		r := &records[i]

		span, err := NewSpan(r)
		if err != nil {
			if errors.Is(err, ErrUnknownKind) {
				return nil, err
			}

			logSkipped(r, err)

			continue
		}

		spans = append(spans, spanned{
			record: r,
			kind:   r.SpanKind(),
			span:   span,
		})
	}

	return spans, nil
}

func entriesFor(spans []spanned, date timeutil.Date, loc *time.Location) []Entry {
	var entries []Entry

	for _, s := range spans {
		if !timeutil.IsAttributedToDay(s.span, date, loc) {
			continue
		}

		overnight := timeutil.SpansMultipleDays(s.span, loc)

		e := Entry{
			Record:        *s.record,
			Kind:          s.kind,
			Date:          date,
			Span:          s.span,
			Window:        timeutil.ClipToDay(s.span, date, loc),
			Overnight:     overnight,
			OvernightCard: overnight,
		}

		if timeutil.DateOf(s.span.Start, loc).Before(date) {
			e.ContinuedFrom = timeutil.ContinuationLabel(s.span.Start, date, loc)
		}

		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := a.Window.EffectiveStart.Compare(b.Window.EffectiveStart); c != 0 {
			return c
		}

		switch {
		case natural.Less(a.Record.ID, b.Record.ID):
			return -1
		case natural.Less(b.Record.ID, a.Record.ID):
			return 1
		default:
			return 0
		}
	})

	return entries
}

func logSkipped(r *Record, err error) {
	slog.Debug(
		"skipping malformed record",
		slog.String("id", r.ID),
		slog.Any("error", err),
		slog.String("record", spew.Sdump(r)),
	)
}
