// Package errors provides error types and handling utilities for GitMuse.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors
	ErrUnsupportedModel ErrorCode = iota + 100
	ErrInvalidConfig
	ErrInvalidArguments
	ErrNotARepository

	// System errors
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrFileSystemError
	ErrMissingBinary

	// External errors
	ErrRunnerFailed ErrorCode = iota + 300
	ErrTimeout
	ErrExtractionFailed
	ErrAPIProviderFailed
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrUnsupportedModel:
		return "UnsupportedModel"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInvalidArguments:
		return "InvalidArguments"
	case ErrNotARepository:
		return "NotARepository"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrFileSystemError:
		return "FileSystemError"
	case ErrMissingBinary:
		return "MissingBinary"
	case ErrRunnerFailed:
		return "RunnerFailed"
	case ErrTimeout:
		return "Timeout"
	case ErrExtractionFailed:
		return "ExtractionFailed"
	case ErrAPIProviderFailed:
		return "APIProviderFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
//
// Every failure maps to process exit code 1; the code exists for
// diagnostics and suggestions, not for exit-code fan-out.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Context    map[string]interface{}
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// Common error constructors with suggestions

// NewUnsupportedModelError creates an error for an unroutable model name.
func NewUnsupportedModelError(model string) *AppError {
	return &AppError{
		Code:       ErrUnsupportedModel,
		Message:    fmt.Sprintf("unsupported model: %q", model),
		Suggestion: "Run 'gitmuse models' to see the supported model name patterns",
	}
}

// NewMissingBinaryError creates an error for a missing AI CLI on PATH.
func NewMissingBinaryError(program string) *AppError {
	return &AppError{
		Code:       ErrMissingBinary,
		Message:    fmt.Sprintf("%s is not installed or not on PATH", program),
		Suggestion: fmt.Sprintf("Install the %s CLI, or pick a model routed to an installed tool ('gitmuse models' shows what is available)", program),
	}
}

// NewRunnerError creates an error for an AI CLI invocation failure.
func NewRunnerError(program string, err error, stderr string) *AppError {
	appErr := &AppError{
		Code:    ErrRunnerFailed,
		Message: fmt.Sprintf("%s invocation failed", program),
		Cause:   err,
	}
	if stderr != "" {
		appErr.Context = map[string]interface{}{
			"stderr": stderr,
		}
	}
	return appErr
}

// NewTimeoutError creates an error for an expired subprocess deadline.
func NewTimeoutError(program string, timeout time.Duration) *AppError {
	return &AppError{
		Code:       ErrTimeout,
		Message:    fmt.Sprintf("%s did not finish within %v", program, timeout),
		Suggestion: "Increase model.timeout_seconds in the config, or try a faster model",
	}
}

// NewExtractionError creates an error for a missing marker or fence block.
// The raw output is attached for diagnostics.
func NewExtractionError(rawOutput string) *AppError {
	return &AppError{
		Code:       ErrExtractionFailed,
		Message:    "message not found in AI output",
		Suggestion: "The backend did not produce a marker or fenced block; rerun, or adjust the prompt template",
		Context: map[string]interface{}{
			"raw_output": rawOutput,
		},
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, output string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if output != "" {
		appErr.Context = map[string]interface{}{
			"output": output,
		}
	}
	return appErr
}

// NewInvalidConfigError creates an error for invalid configuration.
func NewInvalidConfigError(message string) *AppError {
	return &AppError{
		Code:       ErrInvalidConfig,
		Message:    message,
		Suggestion: "Run 'gitmuse config init' to create a valid configuration file",
	}
}

// NewAPIProviderError creates an error for API fallback failures.
func NewAPIProviderError(provider string, err error) *AppError {
	return &AppError{
		Code:       ErrAPIProviderFailed,
		Message:    fmt.Sprintf("%s provider error", provider),
		Cause:      err,
		Suggestion: "Please check your API key and network connectivity",
	}
}

// FormatError formats an error for user display.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Message))

		if appErr.Cause != nil {
			sb.WriteString("\n  Cause: ")
			sb.WriteString(SanitizeErrorMessage(appErr.Cause.Error()))
		}

		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// FormatErrorVerbose formats an error with full details for verbose mode.
// API keys and other sensitive data are automatically masked.
func FormatErrorVerbose(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString(fmt.Sprintf("Error [%s]: %s\n", appErr.Code.String(), SanitizeErrorMessage(appErr.Message)))

		if appErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("  Cause: %v\n", SanitizeErrorMessage(appErr.Cause.Error())))
			sb.WriteString("  Error chain:\n")
			printErrorChain(&sb, appErr.Cause, 2)
		}

		if len(appErr.Context) > 0 {
			sb.WriteString("  Context:\n")
			for k, v := range appErr.Context {
				sb.WriteString(fmt.Sprintf("    %s: %v\n", k, SanitizeErrorMessage(fmt.Sprintf("%v", v))))
			}
		}

		if appErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", appErr.Suggestion))
		}
	} else {
		sb.WriteString(fmt.Sprintf("Error: %v\n", SanitizeErrorMessage(err.Error())))
		sb.WriteString("  Error chain:\n")
		printErrorChain(&sb, err, 2)
	}

	return sb.String()
}

// printErrorChain prints the error chain with indentation.
func printErrorChain(sb *strings.Builder, err error, indent int) {
	if err == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	errMsg := SanitizeErrorMessage(err.Error())
	sb.WriteString(fmt.Sprintf("%s- %T: %v\n", prefix, err, errMsg))

	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		printErrorChain(sb, unwrapped, indent+1)
	}
}

// SanitizeErrorMessage masks any API keys or sensitive data in error messages.
func SanitizeErrorMessage(msg string) string {
	result := apiKeyPattern.ReplaceAllStringFunc(msg, func(match string) string {
		if len(match) <= 4 {
			return "****"
		}
		return strings.Repeat("*", len(match)-4) + match[len(match)-4:]
	})
	return result
}

// apiKeyPattern matches common API key patterns.
var apiKeyPattern = regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`)
