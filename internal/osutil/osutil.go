package osutil

import (
	"os"
	"os/exec"
	"runtime"
)

const Windows = "windows"

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const FilePermission = 0o600

// Editor returns the command used to edit files, preferring $VISUAL then
// $EDITOR over the platform default.
func Editor() string {
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}

	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}

	if runtime.GOOS == Windows {
		return "notepad"
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
