package timeline

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopulse/timeline/internal/timeutil"
)

func mustZone(t *testing.T, id string) *time.Location {
	t.Helper()

	loc, err := timeutil.LoadZone(id)
	require.NoError(t, err)

	return loc
}

func mustDate(t *testing.T, s string) timeutil.Date {
	t.Helper()

	d, err := timeutil.ParseDate(s)
	require.NoError(t, err)

	return d
}

func stay(id, ts string, secs int64) Record {
	return Record{ID: id, Kind: KindStay, Timestamp: ts, StayDuration: &secs}
}

func trip(id, ts string, mins float64) Record {
	return Record{ID: id, Kind: KindTrip, Timestamp: ts, TripDuration: &mins}
}

func gap(id, start, end string) Record {
	return Record{ID: id, Kind: KindGap, StartTime: start, EndTime: end}
}

func TestIsOvernight(t *testing.T) {
	testCases := []struct {
		name   string
		zone   string
		record Record
		want   bool
	}{
		{"stay into next UTC day", "UTC", stay("a", "2024-01-15T23:00:00Z", 7200), true},
		{"stay within one day", "UTC", stay("b", "2024-01-15T10:00:00Z", 7200), false},
		{"local midnight in New York", "America/New_York", stay("c", "2024-01-15T04:30:00Z", 3600), true},
		{"same span in UTC", "UTC", stay("c", "2024-01-15T04:30:00Z", 3600), false},
		{"zero duration", "UTC", stay("d", "2024-01-15T23:59:59Z", 0), false},
		{"trip ending at midnight", "UTC", trip("e", "2024-01-15T23:00:00Z", 60), true},
		{"trip ending before midnight", "UTC", trip("e2", "2024-01-15T23:00:00Z", 59), false},
		{"trip past midnight", "UTC", trip("f", "2024-03-10T23:00:00Z", 90), true},
		{"gap over two nights", "Europe/Kyiv", gap("g", "2024-01-14T20:00:00Z", "2024-01-16T03:00:00Z"), true},
		{"missing duration", "UTC", Record{ID: "h", Kind: KindStay, Timestamp: "2024-01-15T23:00:00Z"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsOvernight(&tc.record, mustZone(t, tc.zone))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsOvernightUnknownKind(t *testing.T) {
	r := Record{ID: "x", Kind: "teleport", Timestamp: "2024-01-15T23:00:00Z"}

	got, err := IsOvernight(&r, time.UTC)

	assert.False(t, got)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ShouldShowAsOvernightCard(&r, mustDate(t, "2024-01-15"), time.UTC)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestShouldShowAsOvernightCard(t *testing.T) {
	r := stay("a", "2024-01-15T23:00:00Z", 7200)

	for date, want := range map[string]bool{
		"2024-01-14": false,
		"2024-01-15": true,
		"2024-01-16": true,
		"2024-01-17": false,
	} {
		got, err := ShouldShowAsOvernightCard(&r, mustDate(t, date), time.UTC)
		require.NoError(t, err)
		assert.Equal(t, want, got, date)
	}

	single := stay("b", "2024-01-15T10:00:00Z", 600)

	got, err := ShouldShowAsOvernightCard(&single, mustDate(t, "2024-01-15"), time.UTC)
	require.NoError(t, err)
	assert.False(t, got)
}

// A two hour stay from 23:00 UTC is split evenly between both days.
func TestForDayScenarioA(t *testing.T) {
	records := []Record{stay("a", "2024-01-15T23:00:00Z", 7200)}

	first, err := ForDay(records, mustDate(t, "2024-01-15"), time.UTC)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := ForDay(records, mustDate(t, "2024-01-16"), time.UTC)
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, time.Hour, first[0].Window.DurationInDay)
	assert.Equal(t, time.Hour, second[0].Window.DurationInDay)

	assert.True(t, first[0].OvernightCard)
	assert.Empty(t, first[0].ContinuedFrom)
	assert.Equal(t, timeutil.LabelYesterday, second[0].ContinuedFrom)

	none, err := ForDay(records, mustDate(t, "2024-01-17"), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestForDayEndingAtMidnight(t *testing.T) {
	records := []Record{stay("a", "2024-01-15T23:00:00Z", 3600)}

	first, err := ForDay(records, mustDate(t, "2024-01-15"), time.UTC)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, first[0].Overnight)
	assert.True(t, first[0].OvernightCard)
	assert.Equal(t, time.Hour, first[0].Window.DurationInDay)

	second, err := ForDay(records, mustDate(t, "2024-01-16"), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestForDayOrdering(t *testing.T) {
	records := []Record{
		stay("r10", "2024-01-15T09:00:00Z", 600),
		trip("r2", "2024-01-15T08:00:00Z", 30),
		stay("r9", "2024-01-15T09:00:00Z", 600),
		gap("r1", "2024-01-14T22:00:00Z", "2024-01-15T01:00:00Z"),
	}

	entries, err := ForDay(records, mustDate(t, "2024-01-15"), time.UTC)
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].Record.ID)
	}

	if diff := cmp.Diff([]string{"r1", "r2", "r9", "r10"}, ids); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}

	assert.Equal(t, entries[0].Window.DayStart, entries[0].Window.EffectiveStart)
	assert.Equal(t, timeutil.LabelYesterday, entries[0].ContinuedFrom)
}

func TestForDaySkipsMalformedRecords(t *testing.T) {
	records := []Record{
		{ID: "broken", Kind: KindStay, Timestamp: "2024-01-15T10:00:00Z"},
		stay("ok", "2024-01-15T11:00:00Z", 60),
	}

	entries, err := ForDay(records, mustDate(t, "2024-01-15"), time.UTC)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Record.ID)
}

func TestForDayUnknownKindIsFatal(t *testing.T) {
	records := []Record{
		stay("ok", "2024-01-15T11:00:00Z", 60),
		{ID: "odd", Kind: "visit", Timestamp: "2024-01-15T10:00:00Z"},
	}

	entries, err := ForDay(records, mustDate(t, "2024-01-15"), time.UTC)

	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Nil(t, entries)
}

func TestForDayContinuationLabels(t *testing.T) {
	loc := mustZone(t, "Europe/Kyiv")
	// Ten days of missing data starting on Monday 2024-07-01 local time.
	records := []Record{gap("g", "2024-07-01T07:00:00Z", "2024-07-11T07:00:00Z")}

	cases := map[string]string{
		"2024-07-01": "",
		"2024-07-02": "yesterday",
		"2024-07-05": "Monday",
		"2024-07-11": "Jul 01",
	}

	for date, want := range cases {
		entries, err := ForDay(records, mustDate(t, date), loc)
		require.NoError(t, err)
		require.Len(t, entries, 1, date)
		assert.Equal(t, want, entries[0].ContinuedFrom, date)
	}
}

func TestGroupByDay(t *testing.T) {
	loc := mustZone(t, "America/New_York")
	records := []Record{
		stay("night", "2024-01-15T04:30:00Z", 3600),
		trip("commute", "2024-01-15T13:00:00Z", 45),
		gap("outage", "2024-01-16T15:00:00Z", "2024-01-16T17:30:00Z"),
	}

	days, err := GroupByDay(records, mustDate(t, "2024-01-14"), mustDate(t, "2024-01-17"), loc)
	require.NoError(t, err)
	require.Len(t, days, 4)

	assert.Equal(t, 30*time.Minute, days[0].Total(KindStay))
	assert.Equal(t, 30*time.Minute, days[1].Total(KindStay))
	assert.Equal(t, 45*time.Minute, days[1].Total(KindTrip))
	assert.Equal(t, 150*time.Minute, days[2].Total(KindGap))
	assert.Empty(t, days[3].Entries)

	none, err := GroupByDay(records, mustDate(t, "2024-01-17"), mustDate(t, "2024-01-14"), loc)
	require.NoError(t, err)
	assert.Empty(t, none)
}
