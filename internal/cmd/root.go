// Package cmd contains the CLI command definitions for GitMuse.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the GitMuse CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	flags := &GenerateFlags{}

	rootCmd := &cobra.Command{
		Use:   "gitmuse",
		Short: "Draft git commit messages with the AI CLI you already have",
		Long: `GitMuse drafts commit messages from your staged changes by piping
the diff to an installed AI command-line tool.

The model name picks the tool: gpt-* and o1-* route to codex, the claude
family routes to claude, copilot/<model> routes to copilot, and any other
<author>/<model> pair routes to opencode. The drafted message is printed
to stdout or written to a file, ready for git commit -F or a
prepare-commit-msg hook.`,
		Version: version,
		// Default action is to draft a message for the staged changes
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	rootCmd.SetVersionTemplate(`GitMuse {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.gitmuse/config.yaml)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model name to route (default: sonnet)")

	// Draft flags on the root command for the default action
	addGenerateFlags(rootCmd, flags)

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewHookCmd())
	rootCmd.AddCommand(NewInstallHookCmd())
	rootCmd.AddCommand(NewModelsCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
