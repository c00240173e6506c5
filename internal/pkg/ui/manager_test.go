package ui

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDisplayMessage_EmptyMessage(t *testing.T) {
	m := NewDefaultManager(false, "")
	if err := m.DisplayMessage(""); err == nil {
		t.Error("expected error for empty message")
	}
	if err := m.DisplayMessage("   \n\t"); err == nil {
		t.Error("expected error for whitespace-only message")
	}
}

func TestDisplayMessage_Valid(t *testing.T) {
	m := NewDefaultManager(false, "")
	if err := m.DisplayMessage("feat: add feature\n\nSome body text"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInitStyles_ColorDisabled(t *testing.T) {
	m := NewDefaultManager(false, "")

	// Without color every style must render text unchanged.
	rendered := m.styles.subject.Render("feat: plain")
	if rendered != "feat: plain" {
		t.Errorf("expected plain text, got %q", rendered)
	}
}

func TestGetEditor_Precedence(t *testing.T) {
	t.Setenv("EDITOR", "env-editor")
	t.Setenv("VISUAL", "visual-editor")

	m := NewDefaultManager(false, "configured-editor")
	if got := m.getEditor(); got != "configured-editor" {
		t.Errorf("configured editor should win, got %q", got)
	}

	m = NewDefaultManager(false, "")
	if got := m.getEditor(); got != "env-editor" {
		t.Errorf("EDITOR should win over VISUAL, got %q", got)
	}

	t.Setenv("EDITOR", "")
	if got := m.getEditor(); got != "visual-editor" {
		t.Errorf("VISUAL should be the last resort, got %q", got)
	}

	t.Setenv("VISUAL", "")
	if got := m.getEditor(); got != "" {
		t.Errorf("expected empty editor, got %q", got)
	}
}

func TestEditWithExternalEditor_RoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a unix shell")
	}

	// "true" exits immediately and leaves the temp file unchanged, so the
	// original content comes back.
	m := NewDefaultManager(false, "")
	edited, err := m.editWithExternalEditor("true", "feat: untouched message\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(edited) != "feat: untouched message" {
		t.Errorf("unexpected content: %q", edited)
	}
}

func TestEditWithExternalEditor_EditorFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a unix shell")
	}

	m := NewDefaultManager(false, "")
	if _, err := m.editWithExternalEditor("false", "content"); err == nil {
		t.Error("expected error when the editor exits non-zero")
	}
}

func TestConfirmModel_Keys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		confirmed bool
	}{
		{"y confirms", []string{"y"}, true},
		{"n declines", []string{"n"}, false},
		{"q declines", []string{"q"}, false},
		{"enter accepts default yes", []string{"enter"}, true},
		{"right then enter declines", []string{"right", "enter"}, false},
		{"right left enter confirms", []string{"right", "left", "enter"}, true},
		{"space accepts cursor", []string{"space"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newConfirmModel("Use this message?")
			for _, key := range tt.keys {
				var msg tea.KeyMsg
				switch key {
				case "enter":
					msg = tea.KeyMsg{Type: tea.KeyEnter}
				case "space":
					msg = tea.KeyMsg{Type: tea.KeySpace}
				case "left":
					msg = tea.KeyMsg{Type: tea.KeyLeft}
				case "right":
					msg = tea.KeyMsg{Type: tea.KeyRight}
				default:
					msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
				}
				m, _ = m.Update(msg)
			}

			result := m.(confirmModel)
			if !result.done {
				t.Fatal("model should be done after the key sequence")
			}
			if result.confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", result.confirmed, tt.confirmed)
			}
		})
	}
}

func TestConfirmModel_ViewHidesWhenDone(t *testing.T) {
	m := newConfirmModel("Proceed?")
	if !strings.Contains(m.View(), "Proceed?") {
		t.Error("view should show the prompt")
	}

	m.done = true
	if m.View() != "" {
		t.Error("view should be empty once done")
	}
}

func TestQuietManager(t *testing.T) {
	m := NewQuietManager()

	if err := m.DisplayMessage("anything"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	edited, err := m.EditMessage("feat: original")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if edited != "feat: original" {
		t.Errorf("quiet edit must echo the input, got %q", edited)
	}

	ok, err := m.PromptConfirm("Use this message?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("quiet confirm must auto-accept")
	}

	// Spinner and notifications must be safe no-ops.
	sp := m.ShowSpinner("working")
	sp.Start()
	sp.UpdateText("still working")
	sp.Stop()
	m.ShowSuccess("done")
	m.ShowError(errors.New("boom"))
	m.ShowError(nil)
}
