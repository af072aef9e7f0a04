package timeutil

import "time"

const (
	LabelYesterday  = "yesterday"
	shortDateLayout = "Jan 02"
)

// ContinuationLabel describes the day a span started on, relative to the
// civil day it is being shown on: "yesterday" one day back, the weekday name
// up to a week back, and a short month and day otherwise.
func ContinuationLabel(spanStart time.Time, current Date, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	startDate := DateOf(spanStart, loc)
	diff := DaysBetween(startDate, current)

	switch {
	case diff == 1:
		return LabelYesterday
	case diff >= 2 && diff <= continuationDays:
		return startDate.Weekday().String()
	default:
		return spanStart.In(loc).Format(shortDateLayout)
	}
}
