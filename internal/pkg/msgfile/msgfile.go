// Package msgfile inspects and writes git commit message files.
package msgfile

import (
	"fmt"
	"os"
	"strings"
)

// commentPrefix marks git comment lines in a commit message file.
const commentPrefix = "#"

// HasContent reports whether the file at path already holds a commit
// message: some line, after stripping comment lines and blank lines, has
// non-whitespace content. A missing file reads as absent, not as an error.
//
// Hook runs use this to stay idempotent: a message the user already wrote,
// or a previous run already produced, is never clobbered.
func HasContent(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read message file %s: %w", path, err)
	}
	return hasMessageLines(string(data)), nil
}

// hasMessageLines reports whether the text contains any effective message
// line once comments and blanks are stripped.
func hasMessageLines(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		return true
	}
	return false
}

// StripComments returns the text with comment lines removed and surrounding
// whitespace trimmed.
func StripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Write writes a commit message to the file at path.
func Write(path, message string) error {
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	if err := os.WriteFile(path, []byte(message), 0644); err != nil {
		return fmt.Errorf("failed to write message file %s: %w", path, err)
	}
	return nil
}

// MaxSubjectLength is the recommended maximum length for the subject line.
const MaxSubjectLength = 72

// Lint returns non-fatal warnings about a drafted commit message. The
// message is still usable; callers surface these to the user.
func Lint(message string) []string {
	var warnings []string

	lines := strings.Split(strings.TrimSpace(message), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return []string{"message has no subject line"}
	}

	if len(lines[0]) > MaxSubjectLength {
		warnings = append(warnings, fmt.Sprintf(
			"subject line exceeds %d characters (%d chars)", MaxSubjectLength, len(lines[0])))
	}

	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		warnings = append(warnings, "subject and body are not separated by a blank line")
	}

	return warnings
}
