// Package security provides secret masking and diff scanning for GitMuse.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// MaskAPIKey masks an API key, showing only the last 4 characters.
// This should be used when logging or displaying API keys.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// SanitizeForLogging sanitizes a string for safe logging by masking potential secrets.
// It looks for common patterns like API keys, passwords, and tokens.
func SanitizeForLogging(s string) string {
	patterns := []struct {
		regex       *regexp.Regexp
		replacement string
	}{
		// API keys (sk-...)
		{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "sk-****"},
		// Bearer tokens
		{regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]+`), "Bearer ****"},
		// Generic API key patterns
		{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api_secret|secret[_-]?key)\s*[:=]\s*["']?[a-zA-Z0-9._-]+["']?`), "$1=****"},
		// Password patterns
		{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[:=]\s*["']?[^\s"']+["']?`), "$1=****"},
	}

	result := s
	for _, p := range patterns {
		result = p.regex.ReplaceAllString(result, p.replacement)
	}

	return result
}

// secretPattern pairs a detector with a short human-readable label.
type secretPattern struct {
	label string
	regex *regexp.Regexp
}

var diffSecretPatterns = []secretPattern{
	{"OpenAI-style API key", regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`)},
	{"AWS access key ID", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"GitHub token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"private key block", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
	{"bearer token", regexp.MustCompile(`Bearer\s+[a-zA-Z0-9._-]{20,}`)},
}

// ScanDiff scans added lines of a diff for likely secrets and returns a
// warning per finding. The diff is about to leave the machine through an
// AI CLI, so the caller should surface these before running it.
func ScanDiff(diff string) []string {
	var warnings []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		for _, p := range diffSecretPatterns {
			if p.regex.MatchString(line) && !seen[p.label] {
				seen[p.label] = true
				warnings = append(warnings, fmt.Sprintf("staged diff appears to contain a %s", p.label))
			}
		}
	}

	return warnings
}

// FirstUseWarning is the warning message displayed on first use.
const FirstUseWarning = `
GitMuse pipes your staged git diff to an external AI CLI (claude, codex,
copilot, or opencode) to draft commit messages.

Your code changes leave this machine through whichever tool the model name
routes to. Please ensure you:

1. Do not stage sensitive information (API keys, passwords, secrets)
2. Review your staged changes before running GitMuse

`
