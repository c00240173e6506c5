// Package ai provides the direct OpenAI API fallback used when the
// codex CLI is not installed but an API key is configured.
package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultAPIModel is used when the resolved model name is empty.
	DefaultAPIModel = "gpt-4o-mini"

	// DefaultTemperature keeps generation close to deterministic.
	DefaultTemperature = 0.2

	// DefaultMaxTokens bounds the completion length.
	DefaultMaxTokens = 500

	// DefaultHTTPTimeout is the timeout for a single API call.
	DefaultHTTPTimeout = 60 * time.Second
)

// FallbackConfig holds the settings for the OpenAI fallback client.
type FallbackConfig struct {
	APIKey   string
	Endpoint string
	Model    string
}

// FallbackClient calls the OpenAI chat completion API directly with the
// same prompt that would otherwise be piped to the codex CLI.
type FallbackClient struct {
	client *openai.Client
	model  string
}

// NewFallbackClient creates a fallback client from the given configuration.
func NewFallbackClient(cfg FallbackConfig) (*FallbackClient, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewInvalidConfigError("model.api_key is required for the API fallback").
			WithSuggestion("Set model.api_key (or GITMUSE_MODEL_API_KEY) to use the API fallback, or install the codex CLI")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	clientConfig.HTTPClient = &http.Client{
		Timeout: DefaultHTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAPIModel
	}

	return &FallbackClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Complete sends the prompt and returns the raw completion text. The
// caller extracts the commit message from it the same way it would from
// CLI output.
func (c *FallbackClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	apperrors.Debug("calling OpenAI API: model=%s prompt_length=%d", c.model, len(prompt))
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError("openai-api", DefaultHTTPTimeout)
		}
		return "", apperrors.NewAPIProviderError("OpenAI", err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewAPIProviderError("OpenAI", nil).
			WithContext("reason", "empty choices in response")
	}

	content := resp.Choices[0].Message.Content
	apperrors.Debug("OpenAI API response: length=%d duration=%s", len(content), time.Since(start).Round(time.Millisecond))

	if strings.TrimSpace(content) == "" {
		return "", apperrors.NewAPIProviderError("OpenAI", nil).
			WithContext("reason", "empty completion")
	}

	return content, nil
}

// Model returns the model name the client will request.
func (c *FallbackClient) Model() string {
	return c.model
}
