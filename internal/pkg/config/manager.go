package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/security"
	"github.com/spf13/viper"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.gitmuse/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".gitmuse", "config.yaml")
	}

	v.SetConfigFile(configPath)

	v.SetEnvPrefix("GITMUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be set before env binding works for nested keys.
	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// Viper's AutomaticEnv doesn't handle nested keys well on its own.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("model.name", "GITMUSE_MODEL_NAME")
	_ = v.BindEnv("model.timeout_seconds", "GITMUSE_MODEL_TIMEOUT_SECONDS")
	_ = v.BindEnv("model.template_path", "GITMUSE_MODEL_TEMPLATE_PATH")
	_ = v.BindEnv("model.api_fallback_enabled", "GITMUSE_MODEL_API_FALLBACK_ENABLED")
	_ = v.BindEnv("model.api_key", "GITMUSE_MODEL_API_KEY")
	_ = v.BindEnv("model.api_endpoint", "GITMUSE_MODEL_API_ENDPOINT")

	_ = v.BindEnv("git.log_count", "GITMUSE_GIT_LOG_COUNT")
	_ = v.BindEnv("git.max_file_size", "GITMUSE_GIT_MAX_FILE_SIZE")
	_ = v.BindEnv("git.max_total_size", "GITMUSE_GIT_MAX_TOTAL_SIZE")

	_ = v.BindEnv("ui.color_enabled", "GITMUSE_UI_COLOR_ENABLED")
	_ = v.BindEnv("ui.editor", "GITMUSE_UI_EDITOR")

	_ = v.BindEnv("history.enabled", "GITMUSE_HISTORY_ENABLED")
	_ = v.BindEnv("history.max_entries", "GITMUSE_HISTORY_MAX_ENTRIES")
	_ = v.BindEnv("history.file_path", "GITMUSE_HISTORY_FILE_PATH")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model.name", "sonnet")
	v.SetDefault("model.timeout_seconds", 120)
	v.SetDefault("model.template_path", "")
	v.SetDefault("model.api_fallback_enabled", false)
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.api_endpoint", "")

	v.SetDefault("git.log_count", 10)
	v.SetDefault("git.max_file_size", 20*1024)
	v.SetDefault("git.max_total_size", 100*1024)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.editor", "")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 1000)
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("history.file_path", filepath.Join(homeDir, ".gitmuse", "history.json"))
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults.
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Init creates a new configuration file with default values.
// Sets file permissions to 0600 because the file may hold an API key.
func (m *ViperManager) Init() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.configPath)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Set sets a configuration value by key.
// Supports nested keys using dot notation (e.g., "model.name").
func (m *ViperManager) Set(key string, value string) error {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	existingValue := m.v.Get(key)
	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}

	m.v.Set(key, convertedValue)

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// convertValue converts a string value to the type of the existing value.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	case []interface{}, []string:
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return "", fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}

	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.v.ReadInConfig()
	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// Used for command-line flag overrides that shouldn't persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// MaskAPIKey masks an API key, showing only the last 4 characters.
func MaskAPIKey(key string) string {
	return security.MaskAPIKey(key)
}
