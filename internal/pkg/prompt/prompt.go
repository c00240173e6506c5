// Package prompt renders the instruction text piped to the AI backend.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// DefaultTemplate is the instruction text sent ahead of the context block.
// The marker block is the extraction contract: the backend must wrap the
// message between the header and footer lines so the output survives
// whatever chatter the tool adds around it.
const DefaultTemplate = `You are drafting a git commit message for the staged changes below.

Rules:
- Use Conventional Commits format: <type>(<scope>): <subject>
- Types: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert
- Subject: imperative mood, no period, max 72 characters
- Body: optional, explain what and why (not how)
- Match the tone of the recent commits shown below

Output the commit message, and only the commit message, between these two
marker lines exactly as written:

=== commit header ===
<your commit message here>
=== commit footer ===

{{.ContextBlock}}
`

// Data carries the values rendered into the prompt template.
type Data struct {
	ContextBlock string
}

// Template wraps a parsed prompt template.
type Template struct {
	text string
	tmpl *template.Template
}

// NewTemplate returns the default prompt template.
func NewTemplate() *Template {
	return &Template{text: DefaultTemplate}
}

// LoadTemplate reads a custom template from path. An empty path yields the
// default template.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return NewTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}
	return &Template{text: string(data)}, nil
}

// Render produces the full prompt text for the given data.
func (t *Template) Render(data *Data) (string, error) {
	if t.tmpl == nil {
		tmpl, err := template.New("prompt").Parse(t.text)
		if err != nil {
			return "", fmt.Errorf("failed to parse prompt template: %w", err)
		}
		t.tmpl = tmpl
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}
