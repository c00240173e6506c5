package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage GitMuse configuration",
		Long: `Manage GitMuse configuration settings.

Use subcommands to initialize, view, or modify configuration values.
Configuration is stored in ~/.gitmuse/config.yaml by default.`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigListCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' subcommand.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the configuration file",
		Long: `Create a new configuration file with default values.

The file is created with permissions 0600 (user read/write only)
because it may contain an API key for the fallback.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if err := mgr.Init(); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at %s\n", mgr.GetConfigPath())
			fmt.Println("Edit this file to pick a default model and customize settings.")
			return nil
		},
	}
}

// newConfigSetCmd creates the 'config set' subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value by key.

Supports nested keys using dot notation.

Examples:
  gitmuse config set model.name gpt-5
  gitmuse config set model.timeout_seconds 180
  gitmuse config set git.log_count 5
  gitmuse config set history.enabled false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			if err := mgr.Set(key, value); err != nil {
				return err
			}

			shown := value
			if strings.Contains(key, "api_key") {
				shown = config.MaskAPIKey(value)
			}
			fmt.Printf("Set %s = %s\n", key, shown)
			return nil
		},
	}
}

// newConfigGetCmd creates the 'config get' subcommand.
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			value, err := mgr.Get(key)
			if err != nil {
				return err
			}

			if strings.Contains(key, "api_key") {
				value = config.MaskAPIKey(value)
			}
			fmt.Println(value)
			return nil
		},
	}
}

// newConfigListCmd creates the 'config list' subcommand.
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			mgr, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to create config manager: %w", err)
			}

			settings := flattenSettings("", mgr.List())
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				v := settings[k]
				if strings.Contains(k, "api_key") {
					v = config.MaskAPIKey(v)
				}
				fmt.Printf("%s = %s\n", k, v)
			}
			return nil
		},
	}
}

// flattenSettings flattens viper's nested settings map into dot keys.
func flattenSettings(prefix string, settings map[string]interface{}) map[string]string {
	flat := make(map[string]string)
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			for k, v := range flattenSettings(fullKey, nested) {
				flat[k] = v
			}
			continue
		}
		flat[fullKey] = fmt.Sprintf("%v", value)
	}
	return flat
}
