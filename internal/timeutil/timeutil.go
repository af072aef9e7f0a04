// Package timeutil provides timezone-aware civil day arithmetic for timeline
// spans: day bounds, overnight detection, per-day clipping and continuation
// labels. Every function takes the reference timezone explicitly.
package timeutil

import (
	"math"
	"time"

	"github.com/geopulse/timeline/internal/apperr"
)

const (
	HoursInADay      = 24
	keyLayout        = "2006-01-02T15:04:05.000000000Z"
	continuationDays = 7
)

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

var errInvalidPeriod = &apperr.Error{
	Message: "unknown reporting period: %s",
}

// PeriodRange returns the first and last civil dates covered by a reporting
// period ending on today. The first date is zero for PeriodAllTime.
func PeriodRange(p Period, today Date) (from, to Date, err error) {
	offset, ok := Range[p]
	if !ok {
		return Date{}, Date{}, errInvalidPeriod.Fmt(p)
	}

	switch p {
	case PeriodAllTime:
		return Date{}, today, nil
	case PeriodYesterday:
		yesterday := today.AddDays(offset)
		return yesterday, yesterday, nil
	default:
		return today.AddDays(offset), today, nil
	}
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// ToKey converts an instant to a database key. Keys have a fixed width so
// that byte order matches chronological order.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
