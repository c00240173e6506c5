// Package git provides Git operations for GitMuse.
package git

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

const (
	// CommandTimeout is the default timeout for git commands.
	CommandTimeout = 10 * time.Second

	// DefaultLogCount is how many recent commits the context block carries.
	DefaultLogCount = 10
)

// ChangeType represents the type of change in a diff.
type ChangeType int

const (
	ChangeTypeAdded ChangeType = iota
	ChangeTypeModified
	ChangeTypeDeleted
	ChangeTypeRenamed
)

// String returns the string representation of ChangeType.
func (c ChangeType) String() string {
	switch c {
	case ChangeTypeAdded:
		return "added"
	case ChangeTypeModified:
		return "modified"
	case ChangeTypeDeleted:
		return "deleted"
	case ChangeTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// DiffChunk represents one file's segment of the staged diff.
type DiffChunk struct {
	FilePath   string
	ChangeType ChangeType
	Additions  int
	Deletions  int
	Content    string
	IsLockFile bool
	IsBinary   bool
}

// Client defines the interface for Git operations.
type Client interface {
	HasStagedChanges(ctx context.Context) (bool, error)
	GetStagedDiff(ctx context.Context) ([]DiffChunk, error)
	RecentLog(ctx context.Context, count int) ([]string, error)
	RepoRoot(ctx context.Context) (string, error)
	HooksDir(ctx context.Context) (string, error)
}

// DefaultClient implements the Client interface using exec.CommandContext.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// run executes a git command and returns stdout.
func (c *DefaultClient) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError("git", CommandTimeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return nil, apperrors.NewGitError(err, "")
	}
	return output, nil
}

// HasStagedChanges checks if there are any staged changes in the repository.
func (c *DefaultClient) HasStagedChanges(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return false, apperrors.NewTimeoutError("git", CommandTimeout)
		}
		// Exit code 1 means there are differences (staged changes exist).
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return true, nil
		}
		return false, apperrors.NewGitError(err, "")
	}
	return false, nil
}

// GetStagedDiff retrieves the staged changes as per-file DiffChunks.
func (c *DefaultClient) GetStagedDiff(ctx context.Context) ([]DiffChunk, error) {
	diffOutput, err := c.run(ctx, "diff", "--cached")
	if err != nil {
		return nil, err
	}

	numstatOutput, err := c.run(ctx, "diff", "--cached", "--numstat")
	if err != nil {
		return nil, err
	}

	return parseDiff(diffOutput, parseNumstat(numstatOutput)), nil
}

// RecentLog returns the subject lines of the most recent commits, newest
// first. An empty repository yields an empty slice, not an error.
func (c *DefaultClient) RecentLog(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultLogCount
	}

	output, err := c.run(ctx, "log", "--oneline", "-n", strconv.Itoa(count))
	if err != nil {
		// A repository with no commits makes git log fail; treat it as
		// an empty history so first commits still get drafted.
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code == apperrors.ErrGitCommandFailed {
			return nil, nil
		}
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// RepoRoot returns the absolute path of the repository's top-level directory.
func (c *DefaultClient) RepoRoot(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrNotARepository, "not inside a git repository")
	}
	return strings.TrimSpace(string(output)), nil
}

// HooksDir returns the repository's hooks directory, honoring core.hooksPath.
func (c *DefaultClient) HooksDir(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}

	dir := strings.TrimSpace(string(output))
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	root, err := c.RepoRoot(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, dir), nil
}

// lockFilePatterns contains base names of dependency lock files whose diffs
// add noise without adding meaning.
var lockFilePatterns = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
	"Cargo.lock",
	"Gemfile.lock",
	"composer.lock",
	"poetry.lock",
	"Pipfile.lock",
}

// isLockFile checks if a file path matches any lock file pattern.
func isLockFile(filePath string) bool {
	baseName := filepath.Base(filePath)
	for _, pattern := range lockFilePatterns {
		if baseName == pattern {
			return true
		}
	}
	return strings.HasSuffix(baseName, ".lock")
}

// fileStat holds statistics for a single file from numstat.
type fileStat struct {
	additions int
	deletions int
	isBinary  bool
}

// parseNumstat parses the output of git diff --numstat.
// Format: additions<TAB>deletions<TAB>filepath; binary files show "-" counts.
func parseNumstat(output []byte) map[string]fileStat {
	stats := make(map[string]fileStat)
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 3 {
			continue
		}

		stat := fileStat{}
		if parts[0] == "-" && parts[1] == "-" {
			stat.isBinary = true
		} else {
			stat.additions, _ = strconv.Atoi(parts[0])
			stat.deletions, _ = strconv.Atoi(parts[1])
		}
		stats[parts[2]] = stat
	}

	return stats
}

// parseDiff splits the full staged diff into per-file chunks.
func parseDiff(diffOutput []byte, fileStats map[string]fileStat) []DiffChunk {
	var chunks []DiffChunk

	for _, fileDiff := range splitByFileDiff(string(diffOutput)) {
		if chunk := parseFileDiff(fileDiff, fileStats); chunk != nil {
			chunks = append(chunks, *chunk)
		}
	}

	return chunks
}

// splitByFileDiff splits the diff output on "diff --git" boundaries,
// keeping the header line with each segment.
func splitByFileDiff(diffStr string) []string {
	parts := strings.Split(diffStr, "diff --git ")
	var result []string
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i > 0 {
			part = "diff --git " + part
		}
		result = append(result, part)
	}
	return result
}

// parseFileDiff parses a single file's diff into a DiffChunk.
func parseFileDiff(fileDiff string, fileStats map[string]fileStat) *DiffChunk {
	if strings.TrimSpace(fileDiff) == "" {
		return nil
	}

	chunk := &DiffChunk{
		ChangeType: ChangeTypeModified,
		Content:    fileDiff,
	}

	for _, line := range strings.Split(fileDiff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			chunk.FilePath = extractFilePath(line)
		case strings.HasPrefix(line, "new file mode"):
			chunk.ChangeType = ChangeTypeAdded
		case strings.HasPrefix(line, "deleted file mode"):
			chunk.ChangeType = ChangeTypeDeleted
		case strings.HasPrefix(line, "rename to "):
			chunk.FilePath = strings.TrimPrefix(line, "rename to ")
			chunk.ChangeType = ChangeTypeRenamed
		case strings.HasPrefix(line, "Binary files"):
			chunk.IsBinary = true
		}
	}

	if stat, ok := fileStats[chunk.FilePath]; ok {
		chunk.Additions = stat.additions
		chunk.Deletions = stat.deletions
		chunk.IsBinary = stat.isBinary
	}

	chunk.IsLockFile = isLockFile(chunk.FilePath)

	return chunk
}

// extractFilePath extracts the file path from a diff header line.
// Format: "diff --git a/path/to/file b/path/to/file"
func extractFilePath(line string) string {
	line = strings.TrimPrefix(line, "diff --git ")

	parts := strings.Split(line, " b/")
	if len(parts) >= 2 {
		return parts[len(parts)-1]
	}
	return line
}
