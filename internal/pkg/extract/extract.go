// Package extract pulls the drafted commit message out of raw AI output.
package extract

import (
	"strings"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

// Markers used in the prompt/output contract.
const (
	// EndDiffMarker terminates the context block in the prompt. Some
	// backends echo the prompt back; everything up to and including this
	// line is discarded before extraction.
	EndDiffMarker = "===== END DIFF ====="

	// HeaderMarker opens the commit message block.
	HeaderMarker = "=== commit header ==="

	// FooterMarker closes the commit message block.
	FooterMarker = "=== commit footer ==="
)

// fenceOpeners are the fence lines accepted as fallback block openers.
var fenceOpeners = []string{"```", "```text", "```yaml"}

// Message extracts the commit message from raw AI output.
//
// Extraction is a two-tier fallback: the marker block is the primary
// contract, a fenced code block the secondary one, because different
// backends format responses inconsistently. If neither yields non-empty
// content the raw output is attached to the error for diagnostics.
func Message(raw string) (string, error) {
	lines := strings.Split(raw, "\n")
	lines = dropContextEcho(lines)

	if msg, ok := markerBlock(lines); ok {
		return msg, nil
	}
	if msg, ok := fencedBlock(lines); ok {
		return msg, nil
	}
	return "", apperrors.NewExtractionError(raw)
}

// dropContextEcho discards everything up to and including the END DIFF
// marker line, if present.
func dropContextEcho(lines []string) []string {
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r") == EndDiffMarker {
			return lines[i+1:]
		}
	}
	return lines
}

// markerBlock returns the lines strictly between the header and footer
// markers. Returns false when the block is missing or empty.
func markerBlock(lines []string) (string, bool) {
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if start < 0 {
			if trimmed == HeaderMarker {
				start = i + 1
			}
			continue
		}
		if trimmed == FooterMarker {
			return joinNonEmpty(lines[start:i])
		}
	}
	return "", false
}

// fencedBlock returns the lines strictly between an accepted fence opener
// and the closing fence. Returns false when no complete block exists.
func fencedBlock(lines []string) (string, bool) {
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if start < 0 {
			if isFenceOpener(trimmed) {
				start = i + 1
			}
			continue
		}
		if trimmed == "```" {
			return joinNonEmpty(lines[start:i])
		}
	}
	return "", false
}

// isFenceOpener reports whether the line opens an accepted fenced block.
func isFenceOpener(line string) bool {
	for _, opener := range fenceOpeners {
		if line == opener {
			return true
		}
	}
	return false
}

// joinNonEmpty joins the block lines and reports whether the result has any
// non-whitespace content.
func joinNonEmpty(lines []string) (string, bool) {
	msg := strings.TrimSpace(strings.Join(lines, "\n"))
	if msg == "" {
		return "", false
	}
	return msg, true
}
