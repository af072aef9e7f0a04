package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/geopulse/timeline/internal/timeutil"
)

const asciiLogo = `
▀█▀ █ █▀▄▀█ █▀▀ █   █ █▄ █ █▀▀
 █  █ █ ▀ █ ██▄ █▄▄ █ █ ▀█ ██▄`

const accentColor = "#B0DB43"

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Timezone       string
	TwentyFourHour bool
}

// isTerminal reports whether the prompt can be shown.
var isTerminal = func() bool {
	fd := os.Stdin.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WithPromptConfig returns an Option that asks for the display preferences
// when no config file exists yet. It does nothing outside a terminal.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if !isTerminal() {
			return nil
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		return applyPromptOptions(c, opts)
	}
}

// localZone suggests the zone of the machine if it has an IANA name.
func localZone() string {
	name := time.Local.String()
	if _, err := timeutil.LoadZone(name); err != nil || name == "Local" {
		return timeutil.UTC
	}

	return name
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		Timezone:       localZone(),
		TwentyFourHour: true,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure timeline for the first time.
Enter your values, or press ENTER to accept the defaults.
Edit the config file with 'timeline edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("Civil days are computed in this zone").
				Value(&opts.Timezone).
				Validate(func(s string) error {
					_, err := timeutil.LoadZone(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Clock format").
				Options(
					huh.NewOption("24-hour (23:00)", true).Selected(true),
					huh.NewOption("12-hour (11:00 PM)", false),
				).
				Value(&opts.TwentyFourHour),
		),
	)

	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	theme := huh.ThemeCharm()
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color(accentColor))

	// stdout is reserved for command output such as --json
	err := form.WithKeyMap(keys).
		WithTheme(theme).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Display.Timezone = opts.Timezone
	c.Display.TwentyFourHour = opts.TwentyFourHour

	return nil
}
