// Package report prints status and error messages to the terminal
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/geopulse/timeline/internal/osutil"
)

// Setup styles the error prefix.
func Setup() {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// DisableStyling removes colours and prefixes from all output.
func DisableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func RecordsImported(n, total int) {
	if n == total {
		pterm.Success.Printfln("imported %d records", n)
		return
	}

	pterm.Warning.Printfln("imported %d of %d records: see the log for skipped records", n, total)
}

func Exported(n int, path string) {
	pterm.Success.Printfln("exported %d rows to %s", n, path)
}

func NoEntries() {
	pterm.Info.Println("No timeline entries found for the specified date")
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}
