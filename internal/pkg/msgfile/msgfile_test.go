package msgfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHasContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"real message", "feat: add login\n", true},
		{"message after comments", "# Please enter the commit message\nfix: crash\n", true},
		{"comments only", "# Please enter the commit message\n# for your changes.\n", false},
		{"blank lines only", "\n\n   \n", false},
		{"empty file", "", false},
		{"indented comment", "   # still a comment\n", false},
		{"default git template", "\n# Please enter the commit message for your changes. Lines starting\n# with '#' will be ignored, and an empty message aborts the commit.\n#\n# On branch main\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := HasContent(path)
			if err != nil {
				t.Fatalf("HasContent() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasContent_MissingFile(t *testing.T) {
	got, err := HasContent(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got: %v", err)
	}
	if got {
		t.Error("missing file must read as absent")
	}
}

func TestStripComments(t *testing.T) {
	input := "feat: add thing\n\n# comment line\nbody text\n# another\n"
	want := "feat: add thing\n\nbody text"

	if got := StripComments(input); got != want {
		t.Errorf("StripComments() = %q, want %q", got, want)
	}
}

func TestWrite_EnsuresTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg")

	if err := Write(path, "feat: no trailing newline"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "feat: no trailing newline\n" {
		t.Errorf("written content = %q, want trailing newline", string(data))
	}

	// An already terminated message is not doubled.
	if err := Write(path, "fix: terminated\n"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "fix: terminated\n" {
		t.Errorf("written content = %q, want single trailing newline", string(data))
	}
}

func TestLint(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantWarnings int
	}{
		{"clean message", "feat: concise subject\n\nA proper body.", 0},
		{"subject only", "fix: short and sweet", 0},
		{"long subject", "feat: " + strings.Repeat("x", 80), 1},
		{"missing blank line", "feat: subject\nbody follows immediately", 1},
		{"empty message", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := Lint(tt.message)
			if len(warnings) != tt.wantWarnings {
				t.Errorf("Lint() = %v, want %d warnings", warnings, tt.wantWarnings)
			}
		})
	}
}
