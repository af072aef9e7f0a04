package app

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/config"
	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
	"github.com/geopulse/timeline/store"
)

// delRecords deletes the specified records. It requests for confirmation
// before proceeding with the operation.
func delRecords(
	db store.DB,
	f *timeline.Formatter,
	records []timeline.Record,
	in io.Reader,
	out io.Writer,
) error {
	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	ids := make([]string, len(records))

	for i := range records {
		ids[i] = records[i].ID
	}

	printRecordsTable(out, f, records)

	warning := pterm.Warning.Sprint(
		"The above records will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(out, warning)

	reader := bufio.NewReader(in)

	_, _ = reader.ReadString('\n')

	return db.DeleteRecords(ids)
}

// deleteAction deletes the records that overlap the reporting period.
func deleteAction(ctx *cli.Context) error {
	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	start := cfg.CLI.Start
	if start.IsZero() {
		first, err := db.FirstStart()
		if err != nil {
			return err
		}

		start = timeutil.DateOf(first, cfg.Location)
	}

	records, err := db.GetRecords(
		timeutil.DayBounds(start, cfg.Location).Start,
		timeutil.DayBounds(cfg.CLI.End, cfg.Location).End,
	)
	if err != nil {
		return err
	}

	f, _, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	return delRecords(db, f, records, config.Stdin, config.Stdout)
}
