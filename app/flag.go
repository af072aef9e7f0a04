package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/timeutil"
)

func periodNames() string {
	names := make([]string, len(timeutil.PeriodCollection))

	for i, p := range timeutil.PeriodCollection {
		names[i] = string(p)
	}

	return strings.Join(names, ", ")
}

var (
	tzFlag = &cli.StringFlag{
		Name:  "tz",
		Usage: "IANA timezone used to compute civil days (e.g. 'Europe/Kyiv'). Overrides display.timezone",
	}

	hour24Flag = &cli.BoolFlag{
		Name:  "24h",
		Usage: "Render clock times in 24-hour format. Use --24h=false for 12-hour times",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "The civil day to show. Accepts YYYY-MM-DD or phrases like 'yesterday' (default: today)",
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "First day of the reporting period (default: today)",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Last day of the reporting period, inclusive (default: today)",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: " + periodNames() + ". Takes precedence over --start and --end",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the output to a file instead of stdout",
	}
)
