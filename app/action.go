package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/urfave/cli/v2"

	"github.com/geopulse/timeline/internal/cache"
	"github.com/geopulse/timeline/internal/config"
	"github.com/geopulse/timeline/internal/export"
	"github.com/geopulse/timeline/internal/osutil"
	"github.com/geopulse/timeline/internal/pathutil"
	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
	"github.com/geopulse/timeline/internal/ui"
	"github.com/geopulse/timeline/report"
	"github.com/geopulse/timeline/stats"
	"github.com/geopulse/timeline/store"
)

const (
	envNoColor         = "NO_COLOR"
	envTimelineNoColor = "TIMELINE_NO_COLOR"
	stdinArg           = "-"
)

var (
	errMissingFile = errors.New("import requires exactly one FILE argument ('-' reads stdin)")
	errNoEditor    = errors.New("no editor configured: set $VISUAL or $EDITOR")
)

// openStore is replaced in tests.
var openStore = func(cfg *config.Config) (store.DB, error) {
	return store.NewClient(pathutil.DBFilePath(), cfg.Store.Lookback)
}

// load resolves the configuration for a command and sets up styling and
// logging from it.
func load(ctx *cli.Context) (*config.Config, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	ui.Setup(cfg.Display.DarkTheme, cfg.Display.NoColor)

	slog.SetDefault(newLogger(cfg.Log, pathutil.LogFilePath()))

	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

func newFormatter(cfg *config.Config) (*timeline.Formatter, *cache.Cache, error) {
	c, err := cache.New(cfg.Cache.Capacity)
	if err != nil {
		return nil, nil, err
	}

	return timeline.NewFormatter(cfg.Location, cfg.Display.TwentyFourHour, c), c, nil
}

// reportingDays resolves the configured reporting period into days grouped
// from the store. An all-time period starts on the day of the earliest
// stored record.
func reportingDays(cfg *config.Config, db store.DB) ([]timeline.Day, error) {
	start, end := cfg.CLI.Start, cfg.CLI.End

	if start.IsZero() {
		first, err := db.FirstStart()
		if err != nil {
			return nil, err
		}

		start = end
		if !first.IsZero() {
			start = timeutil.DateOf(first, cfg.Location)
		}
	}

	from := timeutil.DayBounds(start, cfg.Location).Start
	to := timeutil.DayBounds(end, cfg.Location).End

	records, err := db.GetRecords(from, to)
	if err != nil {
		return nil, err
	}

	slog.Debug("reporting period resolved",
		slog.String("start", start.String()),
		slog.String("end", end.String()),
		slog.Int("records", len(records)),
	)

	return timeline.GroupByDay(records, start, end, cfg.Location)
}

// dayAction prints the timeline entries of a single civil day.
func dayAction(ctx *cli.Context) error {
	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	date := cfg.CLI.Date
	bounds := timeutil.DayBounds(date, cfg.Location)

	records, err := db.GetRecords(bounds.Start, bounds.End)
	if err != nil {
		return err
	}

	entries, err := timeline.ForDay(records, date, cfg.Location)
	if err != nil {
		return err
	}

	if cfg.CLI.JSON {
		return printJSON(config.Stdout, timeline.Day{
			Date:    date,
			Entries: entries,
		})
	}

	if len(entries) == 0 {
		report.NoEntries()
		return nil
	}

	f, c, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	printEntriesTable(config.Stdout, f, date, entries)

	slog.Debug("day rendered",
		slog.String("date", date.String()),
		slog.Int("entries", len(entries)),
		slog.Int("cached", c.Len()),
	)

	return nil
}

// boundsAction prints the instants at which a civil day starts and ends.
func boundsAction(ctx *cli.Context) error {
	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	date := cfg.CLI.Date
	win := timeutil.DayBounds(date, cfg.Location)

	if cfg.CLI.JSON {
		return printJSON(config.Stdout, struct {
			Date timeutil.Date `json:"date"`
			Zone string        `json:"zone"`
			timeutil.Window
		}{date, cfg.Location.String(), win})
	}

	f, _, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	printBounds(config.Stdout, f, date, win)

	return nil
}

// statsAction prints per-day totals for the reporting period.
func statsAction(ctx *cli.Context) error {
	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	days, err := reportingDays(cfg, db)
	if err != nil {
		return err
	}

	s := stats.Compute(days, cfg.Location)

	if cfg.CLI.JSON {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(config.Stdout, string(b))

		return err
	}

	return s.Render(config.Stdout)
}

// importAction loads records from a JSON file into the store.
func importAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errMissingFile
	}

	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	var r io.Reader = config.Stdin

	if path := ctx.Args().First(); path != stdinArg {
		f, err := os.Open(path)
		if err != nil {
			return err
		}

		defer f.Close()

		r = f
	}

	records, err := timeline.DecodeRecords(r)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	n, err := db.PutRecords(records)
	if err != nil {
		return err
	}

	stored, err := db.Count()
	if err != nil {
		return err
	}

	slog.Info("records imported",
		slog.Int("imported", n),
		slog.Int("read", len(records)),
		slog.Int("stored", stored),
	)

	report.RecordsImported(n, len(records))

	return nil
}

// exportAction writes the entries of the reporting period as CSV.
func exportAction(ctx *cli.Context) error {
	cfg, err := load(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	days, err := reportingDays(cfg, db)
	if err != nil {
		return err
	}

	if cfg.CLI.Output == "" {
		return export.WriteCSV(config.Stdout, days, cfg.Location)
	}

	f, err := os.OpenFile(
		cfg.CLI.Output,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY,
		osutil.FilePermission,
	)
	if err != nil {
		return err
	}

	if err = export.WriteCSV(f, days, cfg.Location); err != nil {
		f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	var rows int
	for i := range days {
		rows += len(days[i].Entries)
	}

	report.Exported(rows, cfg.CLI.Output)

	return nil
}

// editorCommand builds the command that opens path in the user's editor.
// Editor values may carry arguments, such as "code --wait".
func editorCommand(editor, path string) (*exec.Cmd, error) {
	args, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", editor, err)
	}

	if len(args) == 0 {
		return nil, errNoEditor
	}

	//nolint:gosec // the editor is chosen by the user
	return exec.Command(args[0], append(args[1:], path)...), nil
}

// editConfigAction opens the config file in the user's editor, creating it
// with default values first if needed.
func editConfigAction(_ *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	path := pathutil.ConfigFilePath()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err = config.New(config.WithViperConfig(path)); err != nil {
			return err
		}
	}

	cmd, err := editorCommand(osutil.Editor(), path)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	cli.AppHelpTemplate = helpText()

	report.Setup()

	_, noColor := os.LookupEnv(envNoColor)
	_, timelineNoColor := os.LookupEnv(envTimelineNoColor)

	if noColor || timelineNoColor {
		if err := ctx.Set(noColorFlag.Name, "true"); err != nil {
			return err
		}
	}

	if ctx.Bool(noColorFlag.Name) {
		report.DisableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting timeline")

	return nil
}
