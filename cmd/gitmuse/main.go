// Package main is the entry point for the GitMuse CLI.
// GitMuse drafts git commit messages by piping the staged diff to an
// installed AI command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/gitmuse/gitmuse/internal/cmd"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprintln(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(1)
	}
}
