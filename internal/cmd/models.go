package cmd

import (
	"fmt"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/model"
	"github.com/gitmuse/gitmuse/internal/pkg/runner"
	"github.com/spf13/cobra"
)

// NewModelsCmd creates the models command.
func NewModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show the model routing table and which CLIs are installed",
		Long: `Show how model names route to AI CLIs and whether each CLI is
installed on this machine.

Examples:
  gitmuse --model gpt-5           # routes to codex
  gitmuse --model opus            # routes to claude
  gitmuse --model copilot/gpt-4o  # routes to copilot
  gitmuse --model groq/llama3     # routes to opencode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(cmd)
		},
	}
}

// routingRow pairs a name pattern with the program it routes to.
type routingRow struct {
	pattern string
	program string
}

var routingTable = []routingRow{
	{"gpt-*, o1-*", model.CodexProgram},
	{"claude-*, haiku, sonnet, opus", model.ClaudeProgram},
	{"copilot/<model>", model.CopilotProgram},
	{"<author>/<model>", model.GenericProgram},
}

// runModels prints the routing table with install status per program.
func runModels(cmd *cobra.Command) error {
	r := runner.NewRunner()

	fmt.Printf("Default model: %s\n\n", model.DefaultModel)
	fmt.Printf("%-32s %-10s %s\n", "MODEL PATTERN", "CLI", "STATUS")
	fmt.Println(strings.Repeat("-", 56))

	for _, row := range routingTable {
		status := "not installed"
		if r.IsInstalled(row.program) {
			status = "installed"
		}
		fmt.Printf("%-32s %-10s %s\n", row.pattern, row.program, status)
	}

	return nil
}
