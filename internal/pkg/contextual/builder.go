// Package contextual builds the context block sent to the AI backend.
package contextual

import (
	"fmt"
	"strings"

	"github.com/gitmuse/gitmuse/internal/pkg/extract"
	"github.com/gitmuse/gitmuse/internal/pkg/git"
)

// Default thresholds for context processing.
const (
	// DefaultMaxFileSize caps a single file's diff inside the context.
	DefaultMaxFileSize = 20 * 1024
	// DefaultMaxTotalSize caps the whole context block.
	DefaultMaxTotalSize = 100 * 1024
)

// BeginDiffMarker opens the context block inside the prompt.
const BeginDiffMarker = "===== BEGIN DIFF ====="

// Config holds size limits for the context builder.
type Config struct {
	MaxFileSize  int
	MaxTotalSize int
}

// Builder renders recent history plus the staged diff into the text block
// the prompt embeds between the BEGIN/END DIFF markers.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder with default limits.
func NewBuilder() *Builder {
	return NewBuilderWithConfig(Config{})
}

// NewBuilderWithConfig creates a Builder, applying defaults for zero values.
func NewBuilderWithConfig(config Config) *Builder {
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}
	if config.MaxTotalSize <= 0 {
		config.MaxTotalSize = DefaultMaxTotalSize
	}
	return &Builder{config: config}
}

// Context is the rendered block plus bookkeeping about what went into it.
type Context struct {
	Block        string
	FilesKept    int
	FilesSkipped int
	Truncated    bool
}

// Build renders the context block. Lock-file chunks are dropped, oversized
// file diffs are replaced with statistics, and the total stays within the
// configured budget. The block always ends with the END DIFF marker so the
// extractor can strip a prompt echo from the AI output.
func (b *Builder) Build(recentLog []string, chunks []git.DiffChunk) *Context {
	result := &Context{}
	var sb strings.Builder

	sb.WriteString("Recent commits:\n")
	if len(recentLog) == 0 {
		sb.WriteString("(no previous commits)\n")
	}
	for _, line := range recentLog {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(BeginDiffMarker)
	sb.WriteString("\n")

	budget := b.config.MaxTotalSize
	for _, chunk := range chunks {
		if chunk.IsLockFile {
			result.FilesSkipped++
			continue
		}

		content := chunk.Content
		if chunk.IsBinary || len(content) > b.config.MaxFileSize {
			content = summarizeChunk(&chunk)
			result.Truncated = true
		}

		if sb.Len()+len(content) > budget {
			content = summarizeChunk(&chunk)
			result.Truncated = true
			if sb.Len()+len(content) > budget {
				result.FilesSkipped++
				continue
			}
		}

		sb.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString("\n")
		}
		result.FilesKept++
	}

	sb.WriteString(extract.EndDiffMarker)
	sb.WriteString("\n")

	result.Block = sb.String()
	return result
}

// summarizeChunk replaces a diff body with its statistics.
func summarizeChunk(chunk *git.DiffChunk) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s (%s, +%d -%d)\n",
		chunk.FilePath, chunk.ChangeType, chunk.Additions, chunk.Deletions))
	if chunk.IsBinary {
		sb.WriteString("Note: binary file, content not shown\n")
	} else {
		sb.WriteString(fmt.Sprintf("Note: large diff (%d bytes), statistics only\n", len(chunk.Content)))
	}
	return sb.String()
}
