package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/timeutil"
)

// now is replaced in tests.
var now = time.Now

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Timezone       string
	Date           string
	Start          string
	End            string
	Period         string
	Output         string
	TwentyFourHour *bool
	NoColor        bool
	JSON           bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Timezone: ctx.String("tz"),
			Date:     ctx.String("date"),
			Start:    ctx.String("start"),
			End:      ctx.String("end"),
			Period:   ctx.String("period"),
			Output:   ctx.String("output"),
			NoColor:  ctx.Bool("no-color"),
			JSON:     ctx.Bool("json"),
		}

		if ctx.IsSet("24h") {
			v := ctx.Bool("24h")
			opts.TwentyFourHour = &v
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Flag values take
// precedence over the config file.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if tz := strings.TrimSpace(opts.Timezone); tz != "" {
		c.Display.Timezone = tz
	}

	if opts.TwentyFourHour != nil {
		c.Display.TwentyFourHour = *opts.TwentyFourHour
	}

	c.Display.NoColor = opts.NoColor
	c.CLI.JSON = opts.JSON
	c.CLI.Output = opts.Output

	loc, err := resolveZone(c.Display.Timezone)
	if err != nil {
		return err
	}

	c.Location = loc

	return applyCLIDates(c, opts)
}

// applyCLIDates resolves the date flags relative to the current day in the
// configured zone.
func applyCLIDates(c *Config, opts CLIOptions) error {
	current := now()
	today := timeutil.DateOf(current, c.Location)

	parse := func(flag, value string, fallback timeutil.Date) (timeutil.Date, error) {
		if strings.TrimSpace(value) == "" {
			return fallback, nil
		}

		d, err := timeutil.FromStr(value, current, c.Location)
		if err != nil {
			return timeutil.Date{}, errInvalidDateFlag.Fmt(flag).Wrap(err)
		}

		return d, nil
	}

	var err error

	c.CLI.Date, err = parse("date", opts.Date, today)
	if err != nil {
		return err
	}

	if opts.Period != "" {
		c.CLI.Period = timeutil.Period(strings.ToLower(opts.Period))

		c.CLI.Start, c.CLI.End, err = timeutil.PeriodRange(c.CLI.Period, today)

		return err
	}

	c.CLI.Start, err = parse("start", opts.Start, today)
	if err != nil {
		return err
	}

	c.CLI.End, err = parse("end", opts.End, today)
	if err != nil {
		return err
	}

	if c.CLI.End.Before(c.CLI.Start) {
		return errInvalidRange.Fmt(c.CLI.End, c.CLI.Start)
	}

	return nil
}
