package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func helpText() string {
	description := fmt.Sprintf(
		"%s\n\t\t{{.Usage}}\n\n",
		pterm.Yellow("DESCRIPTION"),
	)

	usage := fmt.Sprintf(
		"%s\n\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n",
		pterm.Yellow("USAGE"),
	)

	version := fmt.Sprintf(
		"{{if .Version}}%s\n\t\t{{.Version}}{{end}}\n\n",
		pterm.Yellow("VERSION"),
	)

	commands := fmt.Sprintf(
		"%s\n{{range .VisibleCommands}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}\n",
		pterm.Yellow("COMMANDS"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"%s\n{{range .VisibleFlags}}\t\t%s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Yellow("GLOBAL OPTIONS"),
		pterm.Green("--{{.Name}}"),
	)

	env := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("ENVIRONMENTAL VARIABLES"),
		envHelp(),
	)

	return description + usage + version + commands + options + env
}

func envHelp() string {
	return `
TIMELINE_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

TIMELINE_ENV: use a separate config file, database and log named after its value (e.g. 'dev').

VISUAL, EDITOR: the command used by edit-config to open the config file.`
}
