package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for pathkit.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// EnvNonInteractive forces non-interactive mode when set to "1".
const EnvNonInteractive = "PATHKIT_NON_INTERACTIVE"

// automationEnv lists variables whose presence means no human is watching.
var automationEnv = []string{"CI", "NO_COLOR"}

// DetectMode reports ModeInteractive only when a person can answer a prompt:
// PATHKIT_NON_INTERACTIVE is not "1", none of CI or NO_COLOR is set, and
// both stdin and stdout are terminals.
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	for _, name := range automationEnv {
		if os.Getenv(name) != "" {
			return ModeNonInteractive
		}
	}
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !term.IsTerminal(int(f.Fd())) {
			return ModeNonInteractive
		}
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
