// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/ai"
	"github.com/gitmuse/gitmuse/internal/pkg/config"
	"github.com/gitmuse/gitmuse/internal/pkg/contextual"
	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/extract"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/gitmuse/gitmuse/internal/pkg/model"
	"github.com/gitmuse/gitmuse/internal/pkg/msgfile"
	"github.com/gitmuse/gitmuse/internal/pkg/prompt"
	"github.com/gitmuse/gitmuse/internal/pkg/runner"
	"github.com/gitmuse/gitmuse/internal/pkg/security"
	"github.com/gitmuse/gitmuse/internal/pkg/ui"
)

// newFallbackClient is a variable to allow mocking in tests.
var newFallbackClient = func(cfg ai.FallbackConfig) (fallbackClient, error) {
	return ai.NewFallbackClient(cfg)
}

// fallbackClient is the subset of the API client the service needs.
type fallbackClient interface {
	Complete(ctx context.Context, promptText string) (string, error)
}

// GenerateOptions contains options for the draft workflow.
type GenerateOptions struct {
	// ModelName overrides the configured model when non-empty.
	ModelName string

	// OutputFile receives the message instead of stdout when non-empty.
	OutputFile string

	// HookMode indicates the call comes from a prepare-commit-msg hook.
	// An output file that already carries a message is left untouched.
	HookMode bool

	// Interactive enables the preview and confirm step.
	Interactive bool

	// NoHistory disables the history record for this run.
	NoHistory bool
}

// DraftService orchestrates the commit message draft workflow.
type DraftService struct {
	gitClient  git.Client
	cliRunner  runner.Runner
	builder    *contextual.Builder
	uiManager  ui.Manager
	historyMgr history.Manager
	config     *config.Config
	stdout     io.Writer
}

// NewDraftService creates a new DraftService with the given dependencies.
func NewDraftService(
	gitClient git.Client,
	cliRunner runner.Runner,
	uiManager ui.Manager,
	historyMgr history.Manager,
	cfg *config.Config,
) *DraftService {
	builderCfg := contextual.Config{
		MaxFileSize:  contextual.DefaultMaxFileSize,
		MaxTotalSize: contextual.DefaultMaxTotalSize,
	}
	if cfg != nil {
		if cfg.Git.MaxFileSize > 0 {
			builderCfg.MaxFileSize = cfg.Git.MaxFileSize
		}
		if cfg.Git.MaxTotalSize > 0 {
			builderCfg.MaxTotalSize = cfg.Git.MaxTotalSize
		}
	}

	return &DraftService{
		gitClient:  gitClient,
		cliRunner:  cliRunner,
		builder:    contextual.NewBuilderWithConfig(builderCfg),
		uiManager:  uiManager,
		historyMgr: historyMgr,
		config:     cfg,
		stdout:     os.Stdout,
	}
}

// SetStdout redirects message output, used by tests.
func (s *DraftService) SetStdout(w io.Writer) {
	s.stdout = w
}

// Draft runs the complete workflow: check staged changes, build the
// context block, resolve the model to a CLI invocation, run it, extract
// the message, and deliver it to stdout or the output file.
func (s *DraftService) Draft(ctx context.Context, opts *GenerateOptions) error {
	if opts == nil {
		opts = &GenerateOptions{}
	}

	// A file that already carries a real message wins over generation.
	if opts.OutputFile != "" {
		present, err := msgfile.HasContent(opts.OutputFile)
		if err != nil {
			return err
		}
		if present {
			apperrors.Debug("existing message found in %s, skipping generation", opts.OutputFile)
			return nil
		}
	}

	hasChanges, err := s.gitClient.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !hasChanges {
		if opts.HookMode {
			apperrors.Debug("no staged changes, leaving hook message untouched")
			return nil
		}
		return apperrors.New(apperrors.ErrInvalidArguments, "no staged changes found").
			WithSuggestion("Stage changes with 'git add' before running gitmuse")
	}

	message, inv, err := s.draftMessage(ctx, opts)
	if err != nil {
		return err
	}

	for _, warning := range msgfile.Lint(message) {
		s.uiManager.ShowWarning(warning)
	}

	if opts.Interactive {
		message, err = s.confirmOrEdit(message)
		if err != nil {
			return err
		}
		if message == "" {
			s.uiManager.ShowSuccess("Cancelled, nothing written")
			return nil
		}
	}

	target, err := s.deliver(opts.OutputFile, message)
	if err != nil {
		return err
	}

	s.recordHistory(opts, message, inv, target)
	return nil
}

// draftMessage builds the prompt, invokes the backend, and extracts the
// commit message from its raw output.
func (s *DraftService) draftMessage(ctx context.Context, opts *GenerateOptions) (string, *model.Invocation, error) {
	spinner := s.uiManager.ShowSpinner("Reading staged changes...")
	spinner.Start()

	chunks, err := s.gitClient.GetStagedDiff(ctx)
	if err != nil {
		spinner.Stop()
		return "", nil, err
	}

	logCount := git.DefaultLogCount
	if s.config != nil && s.config.Git.LogCount > 0 {
		logCount = s.config.Git.LogCount
	}
	recentLog, err := s.gitClient.RecentLog(ctx, logCount)
	if err != nil {
		spinner.Stop()
		return "", nil, err
	}

	spinner.Stop()

	diffContext := s.builder.Build(recentLog, chunks)
	if diffContext.FilesKept == 0 {
		return "", nil, apperrors.New(apperrors.ErrInvalidArguments, "staged changes contain only lock files and binaries").
			WithSuggestion("Write the message by hand, there is nothing for the model to read")
	}

	for _, warning := range security.ScanDiff(diffContext.Block) {
		s.uiManager.ShowWarning(warning)
	}

	modelName := opts.ModelName
	if modelName == "" && s.config != nil {
		modelName = s.config.Model.Name
	}
	inv, err := model.Resolve(modelName)
	if err != nil {
		return "", nil, err
	}

	templatePath := ""
	if s.config != nil {
		templatePath = s.config.Model.TemplatePath
	}
	tmpl, err := prompt.LoadTemplate(templatePath)
	if err != nil {
		return "", nil, err
	}
	promptText, err := tmpl.Render(&prompt.Data{ContextBlock: diffContext.Block})
	if err != nil {
		return "", nil, err
	}

	raw, err := s.invoke(ctx, inv, promptText)
	if err != nil {
		return "", nil, err
	}

	message, err := extract.Message(raw)
	if err != nil {
		return "", nil, err
	}

	return message, inv, nil
}

// invoke runs the resolved CLI, falling back to the OpenAI API when the
// binary is missing and the fallback is configured.
func (s *DraftService) invoke(ctx context.Context, inv *model.Invocation, promptText string) (string, error) {
	if !s.cliRunner.IsInstalled(inv.Program) && s.fallbackAvailable(inv) {
		apperrors.Info("%s not found, using the OpenAI API fallback", inv.Program)
		client, err := newFallbackClient(ai.FallbackConfig{
			APIKey:   s.config.Model.APIKey,
			Endpoint: s.config.Model.APIEndpoint,
			Model:    inv.Model,
		})
		if err != nil {
			return "", err
		}

		spinner := s.uiManager.ShowSpinner("Drafting commit message via API...")
		spinner.Start()
		defer spinner.Stop()
		return client.Complete(ctx, promptText)
	}

	spinner := s.uiManager.ShowSpinner(fmt.Sprintf("Drafting commit message with %s...", inv.Program))
	spinner.Start()
	defer spinner.Stop()
	return s.cliRunner.Run(ctx, inv, promptText)
}

// fallbackAvailable reports whether the API fallback applies to this
// invocation and is enabled in the configuration.
func (s *DraftService) fallbackAvailable(inv *model.Invocation) bool {
	return inv.SupportsAPIFallback() &&
		s.config != nil &&
		s.config.Model.APIFallbackEnabled &&
		s.config.Model.APIKey != ""
}

// confirmOrEdit shows the drafted message and lets the user accept,
// edit, or cancel. An empty return means cancelled.
func (s *DraftService) confirmOrEdit(message string) (string, error) {
	if err := s.uiManager.DisplayMessage(message); err != nil {
		return "", err
	}

	accepted, err := s.uiManager.PromptConfirm("Use this message?")
	if err != nil {
		return "", err
	}
	if accepted {
		return message, nil
	}

	edit, err := s.uiManager.PromptConfirm("Edit it instead?")
	if err != nil {
		return "", err
	}
	if !edit {
		return "", nil
	}

	edited, err := s.uiManager.EditMessage(message)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(edited), nil
}

// deliver writes the message to the output file or stdout and returns
// the history target label.
func (s *DraftService) deliver(outputFile, message string) (string, error) {
	if outputFile != "" {
		if err := msgfile.Write(outputFile, message); err != nil {
			return "", err
		}
		return outputFile, nil
	}

	fmt.Fprintln(s.stdout, message)
	return "stdout", nil
}

// recordHistory saves the run. History failures never fail the draft.
func (s *DraftService) recordHistory(opts *GenerateOptions, message string, inv *model.Invocation, target string) {
	if opts.NoHistory || s.historyMgr == nil {
		return
	}
	if s.config != nil && !s.config.History.Enabled {
		return
	}

	entry := &history.Entry{
		Message:  message,
		Model:    inv.Model,
		Provider: inv.Kind.String(),
		Target:   target,
	}
	if err := s.historyMgr.Save(entry); err != nil {
		apperrors.Warn("failed to save history entry: %v", err)
	}
}
