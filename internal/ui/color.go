// Package ui renders coloured terminal output
package ui

import (
	"github.com/pterm/pterm"
)

var DarkTheme bool

type shade struct {
	dark  pterm.Color
	light pterm.Color
}

var (
	green   = shade{pterm.FgLightGreen, pterm.FgGreen}
	cyan    = shade{pterm.FgLightCyan, pterm.FgCyan}
	magenta = shade{pterm.FgLightMagenta, pterm.FgMagenta}
	blue    = shade{pterm.FgLightBlue, pterm.FgBlue}
	red     = shade{pterm.FgLightRed, pterm.FgRed}
	yellow  = shade{pterm.FgLightYellow, pterm.FgYellow}
	white   = shade{pterm.FgLightWhite, pterm.FgBlack}
)

// Setup applies the display preferences to all output.
func Setup(darkTheme, noColor bool) {
	DarkTheme = darkTheme

	if noColor {
		pterm.DisableColor()
	} else {
		pterm.EnableColor()
	}
}

func (s shade) paint(a any) string {
	if DarkTheme {
		return s.dark.Sprint(a)
	}

	return s.light.Sprint(a)
}

func Green(a any) string {
	return green.paint(a)
}

func Cyan(a any) string {
	return cyan.paint(a)
}

func Magenta(a any) string {
	return magenta.paint(a)
}

func Blue(a any) string {
	return blue.paint(a)
}

func Red(a any) string {
	return red.paint(a)
}

func Yellow(a any) string {
	return yellow.paint(a)
}

func Highlight(a any) string {
	return white.paint(a)
}

// Kind colours a timeline record kind: stays green, trips cyan and data
// gaps red.
func Kind(kind string) string {
	switch kind {
	case "stay":
		return Green(kind)
	case "trip":
		return Cyan(kind)
	case "gap":
		return Red(kind)
	default:
		return Magenta(kind)
	}
}
