package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gitmuse/gitmuse/internal/app"
	"github.com/gitmuse/gitmuse/internal/pkg/config"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/gitmuse/gitmuse/internal/pkg/runner"
	"github.com/gitmuse/gitmuse/internal/pkg/security"
	"github.com/gitmuse/gitmuse/internal/pkg/ui"
	"github.com/spf13/cobra"
)

// GenerateFlags holds the flags for the generate command.
type GenerateFlags struct {
	OutputFile     string
	Yes            bool
	NoHistory      bool
	TimeoutSeconds int
}

// addGenerateFlags registers the draft flags on a command.
func addGenerateFlags(cmd *cobra.Command, flags *GenerateFlags) {
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write the drafted message to a file instead of stdout")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the preview and confirmation step")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this draft in the history")
	cmd.Flags().IntVar(&flags.TimeoutSeconds, "timeout", 0, "Seconds to wait for the AI CLI (default from config)")
}

// NewGenerateCmd creates the generate command, the explicit form of the
// default action.
func NewGenerateCmd() *cobra.Command {
	flags := &GenerateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft a commit message for the staged changes",
		Long: `Draft a commit message from the staged diff.

The staged diff and recent commit subjects are assembled into a prompt,
piped to the CLI the model name routes to, and the message is extracted
from the tool's output.

Examples:
  gitmuse generate                    # Draft and print to stdout
  gitmuse generate -o msg.txt         # Write the message to a file
  gitmuse generate --model gpt-5      # Route to the codex CLI
  gitmuse generate --model opus -y    # No confirmation prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	addGenerateFlags(cmd, flags)

	return cmd
}

// runGenerate executes the draft workflow.
func runGenerate(cmd *cobra.Command, flags *GenerateFlags) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	_, cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	if verbose {
		apperrors.Info("Using model: %s", cfg.Model.Name)
		if cfg.Model.APIKey != "" {
			apperrors.Info("API key: %s", security.MaskAPIKey(cfg.Model.APIKey))
		}
	}

	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second
	if flags.TimeoutSeconds > 0 {
		timeout = time.Duration(flags.TimeoutSeconds) * time.Second
	}
	if timeout <= 0 {
		timeout = runner.DefaultTimeout
	}

	interactive := !flags.Yes && flags.OutputFile == ""

	uiMgr := ui.NewDefaultManager(cfg.UI.ColorEnabled, cfg.UI.Editor)

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	service := app.NewDraftService(
		git.NewClient(),
		runner.NewRunnerWithTimeout(timeout),
		uiMgr,
		historyMgr,
		cfg,
	)

	// The overall deadline leaves room for git commands around the AI call.
	ctx, cancel := context.WithTimeout(context.Background(), timeout+30*time.Second)
	defer cancel()

	modelOverride, _ := cmd.Flags().GetString("model")

	opts := &app.GenerateOptions{
		ModelName:   modelOverride,
		OutputFile:  flags.OutputFile,
		Interactive: interactive,
		NoHistory:   flags.NoHistory,
	}

	return service.Draft(ctx, opts)
}

// loadConfig creates the config manager and loads the configuration.
// When setup is true and no config file exists, the interactive setup
// wizard runs first.
func loadConfig(cmd *cobra.Command, setup bool) (*config.ViperManager, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfgMgr, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to create config manager")
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}

	if setup && !cfgMgr.ConfigExists() {
		if err := ui.RunInteractiveSetup(cfgMgr); err != nil {
			return nil, nil, fmt.Errorf("setup failed: %w", err)
		}
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInvalidConfig, "failed to load config")
	}

	return cfgMgr, cfg, nil
}
