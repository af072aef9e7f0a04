package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopulse/timeline/internal/config"
	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
)

type fakeDB struct {
	records []timeline.Record
	first   time.Time
	from    time.Time
	to      time.Time
}

func (f *fakeDB) PutRecords(records []timeline.Record) (int, error) {
	f.records = append(f.records, records...)
	return len(records), nil
}

func (f *fakeDB) GetRecords(start, end time.Time) ([]timeline.Record, error) {
	f.from, f.to = start, end
	return f.records, nil
}

func (f *fakeDB) DeleteRecords(_ []string) error { return nil }

func (f *fakeDB) FirstStart() (time.Time, error) { return f.first, nil }

func (f *fakeDB) Count() (int, error) { return len(f.records), nil }

func (f *fakeDB) Close() error { return nil }

func mustDate(t *testing.T, s string) timeutil.Date {
	t.Helper()

	d, err := timeutil.ParseDate(s)
	require.NoError(t, err)

	return d
}

func mustZone(t *testing.T, id string) *time.Location {
	t.Helper()

	loc, err := timeutil.LoadZone(id)
	require.NoError(t, err)

	return loc
}

func TestReportingDays(t *testing.T) {
	loc := mustZone(t, "America/New_York")

	secs := int64(2 * 60 * 60)
	db := &fakeDB{
		records: []timeline.Record{
			{
				ID:           "stay-1",
				Kind:         timeline.KindStay,
				Timestamp:    "2024-03-10T04:00:00Z",
				StayDuration: &secs,
			},
		},
	}

	cfg := &config.Config{Location: loc}
	cfg.CLI.Start = mustDate(t, "2024-03-09")
	cfg.CLI.End = mustDate(t, "2024-03-10")

	days, err := reportingDays(cfg, db)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2024-03-09T05:00:00Z", db.from.UTC().Format(time.RFC3339))
	assert.Equal(t, "2024-03-11T04:00:00Z", db.to.UTC().Format(time.RFC3339))

	// 23:00 EST on the 9th to 01:00 EST on the 10th
	require.Len(t, days[0].Entries, 1)
	require.Len(t, days[1].Entries, 1)
	assert.Equal(t, time.Hour, days[0].Entries[0].Window.DurationInDay)
	assert.Equal(t, time.Hour, days[1].Entries[0].Window.DurationInDay)
	assert.Equal(t, timeutil.LabelYesterday, days[1].Entries[0].ContinuedFrom)
}

func TestReportingDaysAllTime(t *testing.T) {
	cfg := &config.Config{Location: time.UTC}
	cfg.CLI.End = mustDate(t, "2024-01-20")

	t.Run("starts on the earliest record", func(t *testing.T) {
		db := &fakeDB{first: time.Date(2024, 1, 17, 22, 0, 0, 0, time.UTC)}

		days, err := reportingDays(cfg, db)
		require.NoError(t, err)
		require.Len(t, days, 4)
		assert.Equal(t, "2024-01-17", days[0].Date.String())
	})

	t.Run("empty store", func(t *testing.T) {
		days, err := reportingDays(cfg, &fakeDB{})
		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "2024-01-20", days[0].Date.String())
	})
}

func TestEditorCommand(t *testing.T) {
	testCases := []struct {
		editor   string
		expected []string
	}{
		{"vi", []string{"vi", "/tmp/config.yml"}},
		{"code --wait", []string{"code", "--wait", "/tmp/config.yml"}},
		{`"/opt/my editor/bin/edit" -n`, []string{"/opt/my editor/bin/edit", "-n", "/tmp/config.yml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.editor, func(t *testing.T) {
			cmd, err := editorCommand(tc.editor, "/tmp/config.yml")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd.Args)
		})
	}
}

func TestEditorCommandErrors(t *testing.T) {
	_, err := editorCommand("  ", "/tmp/config.yml")
	assert.ErrorIs(t, err, errNoEditor)

	_, err = editorCommand(`"unterminated`, "/tmp/config.yml")
	assert.Error(t, err)
}

func TestPrintEntriesTable(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	loc := mustZone(t, "Europe/Kyiv")
	date := mustDate(t, "2024-01-16")

	secs := int64(7200)
	records := []timeline.Record{
		{
			ID:           "stay-1",
			Kind:         timeline.KindStay,
			Timestamp:    "2024-01-15T21:00:00Z",
			StayDuration: &secs,
			LocationName: "Home",
		},
	}

	entries, err := timeline.ForDay(records, date, loc)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var buf bytes.Buffer

	printEntriesTable(&buf, timeline.NewFormatter(loc, true, nil), date, entries)

	out := buf.String()
	assert.Contains(t, out, "Tuesday, January 16, 2024 (Europe/Kyiv)")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "00:00 – 01:00 (1 hour)")
	assert.Contains(t, out, "continued from yesterday")
}

func TestEntryNote(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	assert.Empty(t, entryNote(&timeline.Entry{}))
	assert.Equal(t, "overnight", entryNote(&timeline.Entry{OvernightCard: true}))
	assert.Equal(
		t,
		"continued from Monday · overnight",
		entryNote(&timeline.Entry{ContinuedFrom: "Monday", OvernightCard: true}),
	)
}

type deletingDB struct {
	fakeDB
	deleted []string
}

func (d *deletingDB) DeleteRecords(ids []string) error {
	d.deleted = append(d.deleted, ids...)
	return nil
}

func TestDelRecords(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	secs := int64(600)
	mins := 12.0
	records := []timeline.Record{
		{ID: "stay-1", Kind: timeline.KindStay, Timestamp: "2024-01-15T10:00:00Z", StayDuration: &secs},
		{ID: "trip-1", Kind: timeline.KindTrip, Timestamp: "2024-01-15T11:00:00Z", TripDuration: &mins},
	}

	db := &deletingDB{}

	var out bytes.Buffer

	f := timeline.NewFormatter(time.UTC, true, nil)

	err := delRecords(db, f, records, bytes.NewBufferString("\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"stay-1", "trip-1"}, db.deleted)
	assert.Contains(t, out.String(), "Jan 15, 2024 10:00")
	assert.Contains(t, out.String(), "12 minutes")
}

func TestDelRecordsNothingToDelete(t *testing.T) {
	db := &deletingDB{}

	err := delRecords(db, timeline.NewFormatter(time.UTC, true, nil), nil, nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, db.deleted)
}

func TestPrintRecordsTableInvalidRecord(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	secs := int64(600)
	records := []timeline.Record{
		{ID: "stay-1", Kind: timeline.KindStay, Timestamp: "2024-01-15T10:00:00Z", StayDuration: &secs},
		{ID: "stay-2", Kind: timeline.KindStay, Timestamp: "2024-01-15T11:00:00Z"},
	}

	var buf bytes.Buffer

	printRecordsTable(&buf, timeline.NewFormatter(time.UTC, true, nil), records)

	out := buf.String()
	assert.Contains(t, out, "Jan 15, 2024 10:00")
	assert.Contains(t, out, "stay-2")
	assert.Contains(t, out, timeline.NotAvailable)
}

func TestNewFormatterCache(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		wantNil  bool
	}{
		{"enabled", 8, false},
		{"disabled", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Location: time.UTC}
			cfg.Cache.Capacity = tc.capacity

			f, c, err := newFormatter(cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.wantNil, c == nil)

			r := timeline.Record{
				ID:           "trip-1",
				Kind:         timeline.KindTrip,
				Timestamp:    "2024-01-15T11:00:00Z",
				TripDuration: ptrFloat(12),
			}

			f.RecordOnDay(&r, mustDate(t, "2024-01-15"))

			if tc.wantNil {
				assert.Zero(t, c.Len())
			} else {
				assert.Equal(t, 1, c.Len())
			}
		})
	}
}

func ptrFloat(v float64) *float64 { return &v }
