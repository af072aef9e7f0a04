package app

import (
	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/config"
)

// Get retrieves the timeline app instance.
func Get() *cli.App {
	timelineApp := &cli.App{
		Name: "timeline",
		Usage: `
		Timeline shows stays, trips and data gaps recorded by a GPS timeline
		service on the civil days of any timezone. Records that cross midnight
		are split between the days they overlap.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "day",
				Usage:  "Show the timeline entries of a civil day",
				Action: dayAction,
				Flags: []cli.Flag{
					dateFlag,
					jsonFlag,
				},
			},
			{
				Name:   "bounds",
				Usage:  "Print the instants at which a civil day starts and ends",
				Action: boundsAction,
				Flags: []cli.Flag{
					dateFlag,
					jsonFlag,
				},
			},
			{
				Name: "stats",
				Usage: `
				Show the time spent at stays, travelling and without data on each
				day of a reporting period. Defaults to today`,
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					jsonFlag,
				},
			},
			{
				Name:      "import",
				Usage:     "Load timeline records from a JSON file into the local store",
				ArgsUsage: "FILE",
				Action:    importAction,
			},
			{
				Name:   "export",
				Usage:  "Export the entries of a reporting period as CSV",
				Action: exportAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					outputFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete the stored records that overlap a reporting period",
				Action: deleteAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			tzFlag,
			hour24Flag,
			noColorFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return timelineApp
}
