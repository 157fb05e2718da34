// Package main is the entry point for the rex CLI.
package main

import (
	"errors"
	"os"

	"github.com/coregx/rex/internal/cli"
	"github.com/coregx/rex/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrNoMatch) {
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
