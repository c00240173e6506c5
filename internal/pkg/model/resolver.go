// Package model resolves model names to external AI CLI invocations.
package model

import (
	"strings"

	apperrors "github.com/gitmuse/gitmuse/internal/pkg/errors"
)

// ProviderKind identifies which external tool a model name routes to.
type ProviderKind int

const (
	KindCodex ProviderKind = iota
	KindClaude
	KindCopilot
	KindGeneric
)

// String returns the string representation of ProviderKind.
func (k ProviderKind) String() string {
	switch k {
	case KindCodex:
		return "codex"
	case KindClaude:
		return "claude"
	case KindCopilot:
		return "copilot"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Program names of the external CLIs.
const (
	CodexProgram   = "codex"
	ClaudeProgram  = "claude"
	CopilotProgram = "copilot"
	GenericProgram = "opencode"
)

// DefaultModel is used when no model name is given.
const DefaultModel = "sonnet"

// claudeSafetyFlags keep the drafting run read-only: the Claude CLI may
// otherwise edit files or run commands while "answering".
var claudeSafetyFlags = []string{"-p", "--disallowed-tools", "Bash,Edit,Write"}

// claudeAliases are bare Claude model names accepted without a prefix.
var claudeAliases = []string{"haiku", "sonnet", "opus"}

// Invocation is a resolved external command: program plus a structured
// argument list. The list is passed to exec directly and is never joined
// into a shell string, so model names cannot inject shell syntax.
type Invocation struct {
	Kind    ProviderKind
	Program string
	Args    []string
	// Model is the model name as passed to the external tool.
	Model string
}

// Resolve maps a model name to the external invocation that serves it.
//
// Routing rules, in order:
//   - gpt-* or o1-*            -> codex exec --model <name>
//   - claude-*, haiku, sonnet, opus -> claude with safety flags, --model <name>
//   - copilot/<m>              -> copilot -p --model <m> (prefix stripped)
//   - any other <provider>/<model>  -> opencode run --model <provider>/<model>
//   - anything else            -> unsupported model error
//
// Resolve is a pure function: it constructs the argument list and nothing
// else. Execution happens in the runner package.
func Resolve(name string) (*Invocation, error) {
	if name == "" {
		name = DefaultModel
	}

	switch {
	case strings.HasPrefix(name, "gpt-") || strings.HasPrefix(name, "o1-"):
		return &Invocation{
			Kind:    KindCodex,
			Program: CodexProgram,
			Args:    []string{"exec", "--model", name},
			Model:   name,
		}, nil

	case isClaudeModel(name):
		args := append([]string{}, claudeSafetyFlags...)
		args = append(args, "--model", name)
		return &Invocation{
			Kind:    KindClaude,
			Program: ClaudeProgram,
			Args:    args,
			Model:   name,
		}, nil

	case strings.HasPrefix(name, "copilot/"):
		stripped := strings.TrimPrefix(name, "copilot/")
		if stripped == "" {
			return nil, apperrors.NewUnsupportedModelError(name)
		}
		return &Invocation{
			Kind:    KindCopilot,
			Program: CopilotProgram,
			Args:    []string{"-p", "--model", stripped},
			Model:   stripped,
		}, nil

	case strings.Contains(name, "/"):
		// Permissive fallback: any <provider>/<model> pair goes to the
		// generic runner without an allow-list check.
		return &Invocation{
			Kind:    KindGeneric,
			Program: GenericProgram,
			Args:    []string{"run", "--model", name},
			Model:   name,
		}, nil

	default:
		return nil, apperrors.NewUnsupportedModelError(name)
	}
}

// isClaudeModel reports whether the name routes to the Claude CLI.
func isClaudeModel(name string) bool {
	if strings.HasPrefix(name, "claude-") {
		return true
	}
	for _, alias := range claudeAliases {
		if name == alias {
			return true
		}
	}
	return false
}

// SupportsAPIFallback reports whether the invocation's model family has a
// direct-API fallback when the CLI binary is missing.
func (inv *Invocation) SupportsAPIFallback() bool {
	return inv.Kind == KindCodex
}
