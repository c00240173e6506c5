package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gitmuse/gitmuse/internal/app"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/gitmuse/gitmuse/internal/pkg/runner"
	"github.com/gitmuse/gitmuse/internal/pkg/ui"
	"github.com/spf13/cobra"
)

// hookScript is the prepare-commit-msg hook body installed by
// install-hook. $2 is the commit source; merges, squashes, amends, and
// -m messages are left alone.
const hookScript = `#!/bin/sh
# gitmuse prepare-commit-msg hook
case "$2" in
  merge|squash|commit|message) exit 0 ;;
esac
gitmuse hook "$1"
`

// NewHookCmd creates the hook command, invoked by prepare-commit-msg.
func NewHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook <message-file>",
		Short: "Fill a commit message file from a prepare-commit-msg hook",
		Long: `Draft a commit message and write it to the file git passes to the
prepare-commit-msg hook.

If the file already carries a message (for example from commit -m or an
amend), it is left untouched. Failures are reported on stderr but never
block the commit; git falls back to an empty message template.`,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd, args[0])
		},
	}
}

// runHook drafts a message into the hook file. Errors are swallowed
// after reporting so the commit proceeds.
func runHook(cmd *cobra.Command, messageFile string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	_, cfg, err := loadConfig(cmd, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitmuse: %v\n", err)
		return nil
	}

	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = runner.DefaultTimeout
	}

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	service := app.NewDraftService(
		git.NewClient(),
		runner.NewRunnerWithTimeout(timeout),
		ui.NewQuietManager(),
		historyMgr,
		cfg,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout+30*time.Second)
	defer cancel()

	modelOverride, _ := cmd.Flags().GetString("model")

	opts := &app.GenerateOptions{
		ModelName:  modelOverride,
		OutputFile: messageFile,
		HookMode:   true,
	}

	if err := service.Draft(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "gitmuse: %v\n", err)
	}
	return nil
}

// NewInstallHookCmd creates the install-hook command.
func NewInstallHookCmd() *cobra.Command {
	force := false

	cmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install the prepare-commit-msg hook in the current repository",
		Long: `Write a prepare-commit-msg hook that runs gitmuse for every plain
'git commit'. Commits with an explicit message (-m, merges, squashes,
amends) are not touched.

The hook is installed into the repository's hooks directory, honoring
core.hooksPath when set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallHook(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing prepare-commit-msg hook")

	return cmd
}

// runInstallHook writes the hook script into the repository hooks dir.
func runInstallHook(cmd *cobra.Command, force bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), git.CommandTimeout)
	defer cancel()

	client := git.NewClient()
	hooksDir, err := client.HooksDir(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to create hooks directory")
	}

	hookPath := filepath.Join(hooksDir, "prepare-commit-msg")
	if _, err := os.Stat(hookPath); err == nil && !force {
		return apperrors.New(apperrors.ErrFileSystemError, fmt.Sprintf("hook already exists at %s", hookPath)).
			WithSuggestion("Re-run with --force to overwrite it")
	}

	if err := os.WriteFile(hookPath, []byte(hookScript), 0755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to write hook")
	}

	fmt.Printf("Installed prepare-commit-msg hook at %s\n", hookPath)
	return nil
}
