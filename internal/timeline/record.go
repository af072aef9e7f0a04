// Package timeline turns stay, trip and data gap records into the entries
// shown on the timeline of a civil day
package timeline

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/geopulse/timeline/internal/timeutil"
)

// Kind is the variant of a timeline record.
type Kind string

const (
	KindStay Kind = "stay"
	KindTrip Kind = "trip"
	KindGap  Kind = "gap"
)

// Record is a stay, trip or data gap as produced by the timeline service.
// Stays carry a duration in seconds, trips a duration in minutes, and gaps
// explicit start and end instants.
type Record struct {
	StayDuration *int64   `json:"stayDuration,omitempty"`
	TripDuration *float64 `json:"tripDuration,omitempty"`
	ID           string   `json:"id"`
	Kind         Kind     `json:"kind,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	LocationName string   `json:"locationName,omitempty"`
}

// SpanKind returns the kind of the record. Records without an explicit kind
// are classified by the fields they carry.
func (r *Record) SpanKind() Kind {
	if r.Kind != "" {
		return Kind(strings.ToLower(string(r.Kind)))
	}

	switch {
	case r.TripDuration != nil:
		return KindTrip
	case r.StayDuration != nil:
		return KindStay
	case r.StartTime != "" || r.EndTime != "":
		return KindGap
	default:
		return KindStay
	}
}

// Largest durations that fit in a time.Duration.
const (
	maxStaySeconds = math.MaxInt64 / int64(time.Second)
	maxTripMinutes = math.MaxInt64 / float64(time.Minute)
)

// NewSpan builds the immutable span covered by the record.
func NewSpan(r *Record) (timeutil.Span, error) {
	kind := r.SpanKind()

	switch kind {
	case KindStay:
		start, err := parseInstant(r.Timestamp)
		if err != nil {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, err)
		}

		if r.StayDuration == nil || *r.StayDuration < 0 {
			return timeutil.Span{}, ErrInvalidInput.Fmt(
				kind,
				r.ID,
				"missing or negative stay duration",
			)
		}

		if *r.StayDuration > maxStaySeconds {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, "stay duration too large")
		}

		return timeutil.NewSpan(start, time.Duration(*r.StayDuration)*time.Second), nil
	case KindTrip:
		start, err := parseInstant(r.Timestamp)
		if err != nil {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, err)
		}

		if r.TripDuration == nil || *r.TripDuration < 0 ||
			math.IsNaN(*r.TripDuration) || math.IsInf(*r.TripDuration, 0) {
			return timeutil.Span{}, ErrInvalidInput.Fmt(
				kind,
				r.ID,
				"missing or negative trip duration",
			)
		}

		if *r.TripDuration > maxTripMinutes {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, "trip duration too large")
		}

		d := time.Duration(math.Round(*r.TripDuration * float64(time.Minute)))

		return timeutil.NewSpan(start, d), nil
	case KindGap:
		startStr := r.StartTime
		if startStr == "" {
			startStr = r.Timestamp
		}

		start, err := parseInstant(startStr)
		if err != nil {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, err)
		}

		end, err := parseInstant(r.EndTime)
		if err != nil {
			return timeutil.Span{}, ErrInvalidInput.Fmt(kind, r.ID, err)
		}

		if end.Before(start) {
			return timeutil.Span{}, ErrInvalidInput.Fmt(
				kind,
				r.ID,
				"end time is before start time",
			)
		}

		return timeutil.Span{Start: start, End: end}, nil
	default:
		return timeutil.Span{}, ErrUnknownKind.Fmt(r.ID, r.Kind)
	}
}

// parseInstant reads an ISO-8601 timestamp. Timestamps without an offset are
// taken to be UTC.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errMissingTimestamp
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
