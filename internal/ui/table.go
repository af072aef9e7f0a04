package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable writes data as a boxed table. The first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	if len(data) == 0 {
		return
	}

	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output timeline table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// PrintHeader writes a highlighted section header.
func PrintHeader(writer io.Writer, format string, args ...any) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln(format, args...)

	fmt.Fprint(writer, header)
}
