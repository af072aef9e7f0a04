package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
	"github.com/geopulse/timeline/internal/ui"
)

const (
	dayHeaderLayout = "Monday, January 02, 2006"
	recordLayout    = "Jan 02, 2006 15:04"
	boundsLayout    = "2006-01-02 15:04:05.000 MST"
	noRecordsMsg    = "No records found for the specified time range"
)

// entryNote describes how an entry relates to the days around it.
func entryNote(e *timeline.Entry) string {
	var notes []string

	if e.ContinuedFrom != "" {
		notes = append(notes, "continued from "+e.ContinuedFrom)
	}

	if e.OvernightCard {
		notes = append(notes, ui.Magenta("overnight"))
	}

	return strings.Join(notes, " · ")
}

// printEntriesTable prints the entries of a day to w.
func printEntriesTable(
	w io.Writer,
	f *timeline.Formatter,
	date timeutil.Date,
	entries []timeline.Entry,
) {
	ui.PrintHeader(w, "%s (%s)", date.Format(dayHeaderLayout), f.Location())

	tableBody := make([][]string, 0, len(entries)+1)

	tableBody = append(tableBody, []string{"#", "KIND", "LOCATION", "TIME", "NOTE"})

	for i := range entries {
		e := &entries[i]

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			ui.Kind(string(e.Kind)),
			ui.Highlight(e.Record.LocationName),
			f.TimeRange(e),
			entryNote(e),
		})
	}

	ui.PrintTable(tableBody, w)

	day := timeline.Day{Date: date, Entries: entries}

	fmt.Fprintf(
		w,
		"Stays: %s · Trips: %s · Missing data: %s\n",
		ui.Green(timeline.Duration(day.Total(timeline.KindStay))),
		ui.Cyan(timeline.Duration(day.Total(timeline.KindTrip))),
		ui.Red(timeline.Duration(day.Total(timeline.KindGap))),
	)
}

// printBounds prints the civil day window of date in the formatter's zone.
func printBounds(w io.Writer, f *timeline.Formatter, date timeutil.Date, win timeutil.Window) {
	loc := f.Location()

	length := timeline.Duration(win.Duration())
	if win.Duration() != timeutil.HoursInADay*time.Hour {
		length = ui.Yellow(length)
	}

	ui.PrintTable([][]string{
		{"DATE", "ZONE", "START", "END", "LAST INSTANT", "LENGTH"},
		{
			date.String(),
			loc.String(),
			win.Start.In(loc).Format(boundsLayout),
			win.End.In(loc).Format(boundsLayout),
			win.LastInstant().In(loc).Format(boundsLayout),
			length,
		},
	}, w)
}

// printRecordsTable prints whole records, independent of civil days, to w.
func printRecordsTable(w io.Writer, f *timeline.Formatter, records []timeline.Record) {
	tableBody := make([][]string, 0, len(records)+1)

	tableBody = append(tableBody, []string{"#", "ID", "KIND", "LOCATION", "START", "LENGTH"})

	for i := range records {
		r := &records[i]

		start, length := timeline.NotAvailable, timeline.NotAvailable

		span, err := timeline.NewSpan(r)

		switch {
		case err == nil:
			start = span.Start.In(f.Location()).Format(recordLayout)
			length = timeline.Duration(span.Duration())
		case timeline.IsInvalidInput(err):
			slog.Warn("record has no usable span",
				slog.String("id", r.ID),
				slog.Any("error", err),
			)
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			r.ID,
			ui.Kind(string(r.SpanKind())),
			r.LocationName,
			start,
			length,
		})
	}

	ui.PrintTable(tableBody, w)
}
