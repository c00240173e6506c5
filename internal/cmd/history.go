package cmd

import (
	"fmt"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/history"
	"github.com/spf13/cobra"
)

// DefaultHistoryLimit is the default number of history entries to display.
const DefaultHistoryLimit = 20

// NewHistoryCmd creates the history command and its subcommands.
func NewHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View drafted message history",
		Long: `View the history of drafted commit messages.

By default, displays the most recent 20 entries.

Examples:
  gitmuse history           # Show last 20 entries
  gitmuse history --limit 5 # Show last 5 entries
  gitmuse history clear     # Clear all history`,
		RunE: runHistoryList,
	}

	historyCmd.Flags().IntP("limit", "l", DefaultHistoryLimit, "Number of entries to display")

	historyCmd.AddCommand(newHistoryClearCmd())

	return historyCmd
}

// runHistoryList displays the history entries.
func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	_, cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		fmt.Println("History is disabled. Enable it with: gitmuse config set history.enabled true")
		return nil
	}

	historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)

	entries, err := historyMgr.List(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	fmt.Printf("Showing %d most recent entries:\n\n", len(entries))

	// Most recent first
	for i := len(entries) - 1; i >= 0; i-- {
		printHistoryEntry(entries[i], len(entries)-i)
	}

	return nil
}

// printHistoryEntry prints a single history entry.
func printHistoryEntry(entry *history.Entry, index int) {
	fmt.Printf("[%d] %s\n", index, entry.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("    Model: %s (%s)  Target: %s\n", entry.Model, entry.Provider, entry.Target)

	subject := entry.Message
	if idx := strings.Index(subject, "\n"); idx >= 0 {
		subject = subject[:idx]
	}
	fmt.Printf("    %s\n\n", subject)
}

// newHistoryClearCmd creates the 'history clear' subcommand.
func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}

			historyMgr := history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
			if err := historyMgr.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}

			fmt.Println("History cleared.")
			return nil
		},
	}
}
