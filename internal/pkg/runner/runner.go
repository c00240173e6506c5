// Package runner executes resolved AI CLI invocations.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
	"github.com/gitmuse/gitmuse/internal/pkg/model"
)

// DefaultTimeout bounds a single AI CLI run. The tools have no deadline of
// their own, so without this a stuck backend hangs the hook forever.
const DefaultTimeout = 120 * time.Second

// lookPath is a variable to allow stubbing in tests.
var lookPath = exec.LookPath

// Runner defines the interface for executing an invocation with a prompt
// on stdin, returning the captured stdout.
type Runner interface {
	Run(ctx context.Context, inv *model.Invocation, prompt string) (string, error)
	IsInstalled(program string) bool
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	timeout time.Duration
}

// NewRunner creates an ExecRunner with the default timeout.
func NewRunner() *ExecRunner {
	return NewRunnerWithTimeout(0)
}

// NewRunnerWithTimeout creates an ExecRunner with a custom timeout.
// Zero or negative values fall back to DefaultTimeout.
func NewRunnerWithTimeout(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{timeout: timeout}
}

// IsInstalled reports whether the program is reachable via PATH.
func (r *ExecRunner) IsInstalled(program string) bool {
	_, err := lookPath(program)
	return err == nil
}

// Run pipes the prompt to the invocation's stdin and captures stdout.
//
// The argument list is passed to exec as-is; nothing is routed through a
// shell. A deadline expiry is reported as a timeout error, distinct from an
// ordinary non-zero exit.
func (r *ExecRunner) Run(ctx context.Context, inv *model.Invocation, prompt string) (string, error) {
	if _, err := lookPath(inv.Program); err != nil {
		return "", apperrors.NewMissingBinaryError(inv.Program)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	apperrors.LogInvocation(inv.Program, inv.Args, len(prompt))
	start := time.Now()

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	apperrors.LogRunResult(inv.Program, stdout.Len(), time.Since(start))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(inv.Program, r.timeout)
		}
		return "", apperrors.NewRunnerError(inv.Program, err, strings.TrimSpace(stderr.String()))
	}

	output := stdout.String()
	if strings.TrimSpace(output) == "" {
		return "", apperrors.NewRunnerError(inv.Program, nil, strings.TrimSpace(stderr.String())).
			WithContext("reason", "empty output")
	}

	return output, nil
}
