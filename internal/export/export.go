// Package export writes timeline entries to CSV
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/geopulse/timeline/internal/timeline"
)

var header = []string{
	"date",
	"id",
	"kind",
	"location",
	"start",
	"end",
	"duration_seconds",
	"overnight",
	"continued_from",
}

// WriteCSV writes one row per entry and day. Overnight records appear once
// for every day they overlap, with the start, end and duration of the part
// within that day in loc.
func WriteCSV(w io.Writer, days []timeline.Day, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range days {
		for j := range days[i].Entries {
			e := &days[i].Entries[j]

			row := []string{
				days[i].Date.String(),
				e.Record.ID,
				string(e.Kind),
				e.Record.LocationName,
				e.Window.EffectiveStart.In(loc).Format(time.RFC3339),
				e.Window.EffectiveEnd.In(loc).Format(time.RFC3339),
				strconv.FormatInt(int64(e.Window.DurationInDay/time.Second), 10),
				strconv.FormatBool(e.Overnight),
				e.ContinuedFrom,
			}

			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}
