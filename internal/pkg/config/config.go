// Package config provides configuration management for GitMuse.
package config

// Config represents the complete GitMuse configuration.
type Config struct {
	Model   ModelConfig   `mapstructure:"model"`
	Git     GitConfig     `mapstructure:"git"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
}

// ModelConfig contains model routing and backend settings.
type ModelConfig struct {
	// Name is the default model when --model is not given.
	Name string `mapstructure:"name"`
	// TimeoutSeconds bounds a single AI CLI run.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// TemplatePath points to a custom prompt template file.
	TemplatePath string `mapstructure:"template_path"`
	// APIFallbackEnabled allows a direct OpenAI API call when the codex
	// CLI is not installed.
	APIFallbackEnabled bool `mapstructure:"api_fallback_enabled"`
	// APIKey is the key for the API fallback.
	APIKey string `mapstructure:"api_key"`
	// APIEndpoint overrides the API fallback endpoint.
	APIEndpoint string `mapstructure:"api_endpoint"`
}

// GitConfig contains Git context settings.
type GitConfig struct {
	LogCount     int `mapstructure:"log_count"`
	MaxFileSize  int `mapstructure:"max_file_size"`
	MaxTotalSize int `mapstructure:"max_total_size"`
}

// UIConfig contains UI-related settings.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Editor       string `mapstructure:"editor"`
}

// HistoryConfig contains history-related settings.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	FilePath   string `mapstructure:"file_path"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
