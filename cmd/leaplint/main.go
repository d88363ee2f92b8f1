// Package main is the entry point of the leaplint command.
package main

import (
	"errors"
	"os"

	"github.com/leapstack-labs/leaplint/internal/cli"
	"github.com/leapstack-labs/leaplint/internal/cli/commands"
)

// Exit codes.
const (
	exitOK     = 0
	exitIssues = 1
	exitError  = 2
)

func main() {
	os.Exit(exitCode(cli.Execute()))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, commands.ErrLintIssues):
		return exitIssues
	default:
		return exitError
	}
}
