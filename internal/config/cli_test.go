package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/timeutil"
)

func fixedNow(t *testing.T, s string) {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)

	now = func() time.Time { return ts }

	t.Cleanup(func() { now = time.Now })
}

func date(t *testing.T, s string) timeutil.Date {
	t.Helper()

	d, err := timeutil.ParseDate(s)
	require.NoError(t, err)

	return d
}

func TestApplyCLIOptions(t *testing.T) {
	fixedNow(t, "2024-01-15T12:00:00Z")

	testCases := []struct {
		name      string
		opts      CLIOptions
		wantZone  string
		wantDate  string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "defaults to today",
			opts:      CLIOptions{},
			wantZone:  "UTC",
			wantDate:  "2024-01-15",
			wantStart: "2024-01-15",
			wantEnd:   "2024-01-15",
		},
		{
			name:      "natural language date",
			opts:      CLIOptions{Date: "yesterday"},
			wantZone:  "UTC",
			wantDate:  "2024-01-14",
			wantStart: "2024-01-15",
			wantEnd:   "2024-01-15",
		},
		{
			name:      "reporting period",
			opts:      CLIOptions{Period: "7days", Start: "2020-01-01"},
			wantZone:  "UTC",
			wantDate:  "2024-01-15",
			wantStart: "2024-01-09",
			wantEnd:   "2024-01-15",
		},
		{
			name:      "explicit range",
			opts:      CLIOptions{Start: "2024-01-01", End: "2024-01-10"},
			wantZone:  "UTC",
			wantDate:  "2024-01-15",
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-10",
		},
		{
			name:      "today depends on the zone",
			opts:      CLIOptions{Timezone: "Pacific/Kiritimati"},
			wantZone:  "Pacific/Kiritimati",
			wantDate:  "2024-01-16",
			wantStart: "2024-01-16",
			wantEnd:   "2024-01-16",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Display: DisplayConfig{Timezone: timeutil.UTC}}

			err := applyCLIOptions(c, tc.opts)
			require.NoError(t, err)

			assert.Equal(t, tc.wantZone, c.Location.String())
			assert.Equal(t, date(t, tc.wantDate), c.CLI.Date)
			assert.Equal(t, date(t, tc.wantStart), c.CLI.Start)
			assert.Equal(t, date(t, tc.wantEnd), c.CLI.End)
		})
	}
}

func TestApplyCLIOptionsErrors(t *testing.T) {
	fixedNow(t, "2024-01-15T12:00:00Z")

	testCases := []struct {
		name string
		opts CLIOptions
		want error
	}{
		{"unknown zone", CLIOptions{Timezone: "Mars/Olympus_Mons"}, errInvalidTimezone},
		{"unparsable date", CLIOptions{Date: "qwertyuiop"}, errInvalidDateFlag},
		{"end before start", CLIOptions{Start: "2024-01-10", End: "2024-01-01"}, errInvalidRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Display: DisplayConfig{Timezone: timeutil.UTC}}

			err := applyCLIOptions(c, tc.opts)

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestResolveZone(t *testing.T) {
	testCases := []struct {
		id      string
		want    string
		wantErr bool
	}{
		{"", "UTC", false},
		{"Europe/Kyiv", "Europe/Kyiv", false},
		{"Mars/Olympus_Mons", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			loc, err := resolveZone(tc.id)
			if tc.wantErr {
				assert.ErrorIs(t, err, errInvalidTimezone)
				assert.True(t, timeutil.IsUnknownZone(err))
				assert.Nil(t, loc)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, loc.String())
		})
	}
}

func TestWithCLIConfig(t *testing.T) {
	fixedNow(t, "2024-07-01T02:00:00Z")

	f := flag.NewFlagSet("day", flag.ContinueOnError)
	f.String("tz", "", "")
	f.String("date", "", "")
	f.Bool("24h", true, "")
	f.Bool("json", false, "")

	require.NoError(t, f.Set("tz", "America/New_York"))
	require.NoError(t, f.Set("24h", "false"))
	require.NoError(t, f.Set("json", "true"))

	ctx := cli.NewContext(&cli.App{}, f, nil)

	c := &Config{Display: DisplayConfig{Timezone: timeutil.UTC, TwentyFourHour: true}}

	require.NoError(t, WithCLIConfig(ctx)(c))

	assert.Equal(t, "America/New_York", c.Display.Timezone)
	assert.False(t, c.Display.TwentyFourHour)
	assert.True(t, c.CLI.JSON)
	assert.Equal(t, date(t, "2024-06-30"), c.CLI.Date)
	assert.Equal(t, "12h", c.Locale())
}
