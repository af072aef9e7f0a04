// Package stats reports time spent at stays, on trips and in data gaps per
// civil day
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
	"github.com/geopulse/timeline/internal/ui"
)

const (
	barChartChar = "▇"
	noEntriesMsg = "No timeline entries found for the specified time range"
	headerLayout = "January 02, 2006"
	dayLabel     = "Mon Jan 02"
)

// Totals is the time covered by each kind of record. Durations are the
// parts of records that fall within the day or period.
type Totals struct {
	Stays     time.Duration `json:"stays"`
	Trips     time.Duration `json:"trips"`
	Gaps      time.Duration `json:"gaps"`
	Entries   int           `json:"entries"`
	Overnight int           `json:"overnight"`
}

// Tracked returns the time covered by stays and trips.
func (t Totals) Tracked() time.Duration {
	return t.Stays + t.Trips
}

func (t *Totals) add(o Totals) {
	t.Stays += o.Stays
	t.Trips += o.Trips
	t.Gaps += o.Gaps
	t.Entries += o.Entries
	t.Overnight += o.Overnight
}

// DayTotals is the breakdown of a single civil day.
type DayTotals struct {
	Date timeutil.Date `json:"date"`
	Totals
}

// Stats is the breakdown of a reporting period.
type Stats struct {
	Start   timeutil.Date `json:"start"`
	End     timeutil.Date `json:"end"`
	Zone    string        `json:"zone"`
	Days    []DayTotals   `json:"days"`
	Summary Totals        `json:"summary"`
	Average Totals        `json:"average"`
}

// Compute derives per-day totals from grouped timeline entries. Overnight
// records contribute to each day they overlap, clipped to that day.
func Compute(days []timeline.Day, loc *time.Location) *Stats {
	s := &Stats{
		Zone: loc.String(),
		Days: make([]DayTotals, 0, len(days)),
	}

	if len(days) == 0 {
		return s
	}

	s.Start = days[0].Date
	s.End = days[len(days)-1].Date

	for i := range days {
		d := &days[i]

		dt := DayTotals{
			Date: d.Date,
			Totals: Totals{
				Stays:   d.Total(timeline.KindStay),
				Trips:   d.Total(timeline.KindTrip),
				Gaps:    d.Total(timeline.KindGap),
				Entries: len(d.Entries),
			},
		}

		for j := range d.Entries {
			// counted once, on the day the record starts
			if d.Entries[j].Overnight && d.Entries[j].ContinuedFrom == "" {
				dt.Overnight++
			}
		}

		s.Summary.add(dt.Totals)
		s.Days = append(s.Days, dt)
	}

	n := len(s.Days)

	s.Average = Totals{
		Stays:     s.Summary.Stays / time.Duration(n),
		Trips:     s.Summary.Trips / time.Duration(n),
		Gaps:      s.Summary.Gaps / time.Duration(n),
		Entries:   timeutil.Round(float64(s.Summary.Entries) / float64(n)),
		Overnight: timeutil.Round(float64(s.Summary.Overnight) / float64(n)),
	}

	return s
}

// ToJSON returns the breakdown as JSON.
func (s *Stats) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

func minutes(d time.Duration) int {
	return timeutil.Round(d.Minutes())
}

func getBarChart(days []DayTotals, title string, value func(Totals) time.Duration) string {
	if len(days) < 2 {
		return ""
	}

	header := ui.Blue(fmt.Sprintf("\n%s per day (minutes)", title))

	bars := make(pterm.Bars, 0, len(days))

	for _, d := range days {
		bars = append(bars, pterm.Bar{
			Value: minutes(value(d.Totals)),
			Label: d.Date.Format(dayLabel),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func getTotals(title string, t Totals) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n%s\n", ui.Blue(title)))
	b.WriteString(fmt.Sprintf("Stays: %s\n", ui.Green(timeline.Duration(t.Stays))))
	b.WriteString(fmt.Sprintf("Trips: %s\n", ui.Cyan(timeline.Duration(t.Trips))))
	b.WriteString(fmt.Sprintf("Missing data: %s\n", ui.Red(timeline.Duration(t.Gaps))))
	b.WriteString(fmt.Sprintln("Entries:", ui.Green(t.Entries)))
	b.WriteString(fmt.Sprintln("Overnight records:", ui.Green(t.Overnight)))

	return b.String()
}

// Render writes the breakdown to w.
func (s *Stats) Render(w io.Writer) error {
	if s.Summary.Entries == 0 {
		pterm.Info.Println(noEntriesMsg)
		return nil
	}

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln(
			"Reporting period: %s - %s (%s)",
			s.Start.Format(headerLayout),
			s.End.Format(headerLayout),
			s.Zone,
		)

	output := fmt.Sprint(
		header,
		getTotals("Summary", s.Summary),
		getTotals("Daily average", s.Average),
		getBarChart(s.Days, "Stays", func(t Totals) time.Duration { return t.Stays }),
		getBarChart(s.Days, "Trips", func(t Totals) time.Duration { return t.Trips }),
		getBarChart(s.Days, "Missing data", func(t Totals) time.Duration { return t.Gaps }),
	)

	_, err := fmt.Fprintln(w, strings.TrimSpace(output))

	return err
}
