package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/gitmuse/gitmuse/internal/pkg/config"
	"github.com/gitmuse/gitmuse/internal/pkg/security"
)

// RunInteractiveSetup runs the first-run setup wizard using huh.
func RunInteractiveSetup(cfgMgr *config.ViperManager) error {
	fmt.Println("No configuration found. Let's set up GitMuse!")
	fmt.Print(security.FirstUseWarning)

	// Ensure the config directory exists before writing.
	_ = cfgMgr.Init()

	var model string

	err := huh.NewSelect[string]().
		Title("Default Model").
		Description("The model used when --model is not given").
		Options(
			huh.NewOption("sonnet (claude CLI)", "sonnet"),
			huh.NewOption("opus (claude CLI)", "opus"),
			huh.NewOption("haiku (claude CLI)", "haiku"),
			huh.NewOption("gpt-5 (codex CLI)", "gpt-5"),
			huh.NewOption("gpt-4o-mini (codex CLI)", "gpt-4o-mini"),
			huh.NewOption("copilot/gpt-4o (copilot CLI)", "copilot/gpt-4o"),
			huh.NewOption("other (enter below)", ""),
		).
		Value(&model).
		Run()
	if err != nil {
		return err
	}

	timeout := "120"
	fields := []huh.Field{}

	if model == "" {
		fields = append(fields,
			huh.NewInput().
				Title("Model Name").
				Description("e.g. o1-mini, claude-sonnet-4, groq/llama3").
				Value(&model).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("model name cannot be empty")
					}
					return nil
				}),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Timeout (seconds)").
			Description("How long to wait for the AI CLI").
			Value(&timeout).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n <= 0 {
					return fmt.Errorf("timeout must be a positive integer")
				}
				return nil
			}),
	)

	var apiKey string
	fields = append(fields,
		huh.NewInput().
			Title("OpenAI API Key (optional)").
			Description("Used as a fallback when the codex CLI is not installed").
			Value(&apiKey).
			Password(true),
	)

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	if err := cfgMgr.Set("model.name", strings.TrimSpace(model)); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}
	if err := cfgMgr.Set("model.timeout_seconds", strings.TrimSpace(timeout)); err != nil {
		return fmt.Errorf("failed to set timeout: %w", err)
	}
	if apiKey != "" {
		if err := cfgMgr.Set("model.api_key", apiKey); err != nil {
			return fmt.Errorf("failed to set api key: %w", err)
		}
		if err := cfgMgr.Set("model.api_fallback_enabled", "true"); err != nil {
			return fmt.Errorf("failed to enable api fallback: %w", err)
		}
	}

	fmt.Printf("\nConfiguration saved to %s\n", cfgMgr.GetConfigPath())
	fmt.Println("Setup complete! Stage some changes and run 'gitmuse'.")
	fmt.Println()

	return nil
}
