package git

import (
	"testing"
)

func TestIsLockFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"package-lock.json", true},
		{"frontend/package-lock.json", true},
		{"yarn.lock", true},
		{"go.sum", true},
		{"Cargo.lock", true},
		{"vendor/Gemfile.lock", true},
		{"custom.lock", true},
		{"go.mod", false},
		{"main.go", false},
		{"locker.go", false},
		{"docs/lock.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isLockFile(tt.path); got != tt.want {
				t.Errorf("isLockFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseNumstat(t *testing.T) {
	output := []byte("10\t2\tmain.go\n0\t5\tinternal/app/service.go\n-\t-\tassets/logo.png\nbadline\n")

	stats := parseNumstat(output)

	if len(stats) != 3 {
		t.Fatalf("parsed %d entries, want 3", len(stats))
	}
	if s := stats["main.go"]; s.additions != 10 || s.deletions != 2 || s.isBinary {
		t.Errorf("main.go stat = %+v", s)
	}
	if s := stats["internal/app/service.go"]; s.additions != 0 || s.deletions != 5 {
		t.Errorf("service.go stat = %+v", s)
	}
	if s := stats["assets/logo.png"]; !s.isBinary {
		t.Errorf("logo.png stat = %+v, want binary", s)
	}
}

func TestSplitByFileDiff(t *testing.T) {
	diff := "diff --git a/one.go b/one.go\n+a\ndiff --git a/two.go b/two.go\n+b\n"

	parts := splitByFileDiff(diff)

	if len(parts) != 2 {
		t.Fatalf("split into %d parts, want 2", len(parts))
	}
	for _, part := range parts {
		if len(part) == 0 || part[:11] != "diff --git " {
			t.Errorf("part lost its header: %q", part)
		}
	}
}

func TestParseFileDiff(t *testing.T) {
	stats := map[string]fileStat{
		"cmd/app/main.go": {additions: 3, deletions: 1},
	}

	t.Run("modified file", func(t *testing.T) {
		diff := "diff --git a/cmd/app/main.go b/cmd/app/main.go\n" +
			"index 123..456 100644\n" +
			"--- a/cmd/app/main.go\n" +
			"+++ b/cmd/app/main.go\n" +
			"@@ -1,3 +1,5 @@\n" +
			"+new line\n"

		chunk := parseFileDiff(diff, stats)
		if chunk == nil {
			t.Fatal("got nil chunk")
		}
		if chunk.FilePath != "cmd/app/main.go" {
			t.Errorf("FilePath = %q", chunk.FilePath)
		}
		if chunk.ChangeType != ChangeTypeModified {
			t.Errorf("ChangeType = %v", chunk.ChangeType)
		}
		if chunk.Additions != 3 || chunk.Deletions != 1 {
			t.Errorf("stats = +%d -%d", chunk.Additions, chunk.Deletions)
		}
	})

	t.Run("new file", func(t *testing.T) {
		diff := "diff --git a/added.go b/added.go\nnew file mode 100644\n+content\n"
		chunk := parseFileDiff(diff, nil)
		if chunk.ChangeType != ChangeTypeAdded {
			t.Errorf("ChangeType = %v, want ChangeTypeAdded", chunk.ChangeType)
		}
	})

	t.Run("deleted file", func(t *testing.T) {
		diff := "diff --git a/gone.go b/gone.go\ndeleted file mode 100644\n-content\n"
		chunk := parseFileDiff(diff, nil)
		if chunk.ChangeType != ChangeTypeDeleted {
			t.Errorf("ChangeType = %v, want ChangeTypeDeleted", chunk.ChangeType)
		}
	})

	t.Run("renamed file", func(t *testing.T) {
		diff := "diff --git a/old.go b/new.go\nrename from old.go\nrename to new.go\n"
		chunk := parseFileDiff(diff, nil)
		if chunk.ChangeType != ChangeTypeRenamed {
			t.Errorf("ChangeType = %v, want ChangeTypeRenamed", chunk.ChangeType)
		}
		if chunk.FilePath != "new.go" {
			t.Errorf("FilePath = %q, want rename target", chunk.FilePath)
		}
	})

	t.Run("binary file", func(t *testing.T) {
		diff := "diff --git a/logo.png b/logo.png\nBinary files a/logo.png and b/logo.png differ\n"
		chunk := parseFileDiff(diff, nil)
		if !chunk.IsBinary {
			t.Error("expected IsBinary")
		}
	})

	t.Run("lock file flag", func(t *testing.T) {
		diff := "diff --git a/go.sum b/go.sum\n+hash\n"
		chunk := parseFileDiff(diff, nil)
		if !chunk.IsLockFile {
			t.Error("expected IsLockFile for go.sum")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if chunk := parseFileDiff("   \n", nil); chunk != nil {
			t.Errorf("expected nil for empty diff, got %+v", chunk)
		}
	})
}

func TestParseDiff(t *testing.T) {
	diff := []byte(
		"diff --git a/a.go b/a.go\n+x\n" +
			"diff --git a/b.go b/b.go\n+y\n")
	stats := map[string]fileStat{
		"a.go": {additions: 1},
		"b.go": {additions: 1},
	}

	chunks := parseDiff(diff, stats)

	if len(chunks) != 2 {
		t.Fatalf("parsed %d chunks, want 2", len(chunks))
	}
	if chunks[0].FilePath != "a.go" || chunks[1].FilePath != "b.go" {
		t.Errorf("paths = %q, %q", chunks[0].FilePath, chunks[1].FilePath)
	}
}

func TestExtractFilePath(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"diff --git a/main.go b/main.go", "main.go"},
		{"diff --git a/dir/file.go b/dir/file.go", "dir/file.go"},
		{"diff --git a/a b/c.go b/a b/c.go", "c.go"},
	}

	for _, tt := range tests {
		if got := extractFilePath(tt.line); got != tt.want {
			t.Errorf("extractFilePath(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestChangeType_String(t *testing.T) {
	cases := map[ChangeType]string{
		ChangeTypeAdded:    "added",
		ChangeTypeModified: "modified",
		ChangeTypeDeleted:  "deleted",
		ChangeTypeRenamed:  "renamed",
	}
	for ct, want := range cases {
		if got := ct.String(); got != want {
			t.Errorf("ChangeType(%d).String() = %q, want %q", ct, got, want)
		}
	}
}
