package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc1234", "2026-01-01")

	want := map[string]bool{
		"generate":     false,
		"hook":         false,
		"install-hook": false,
		"models":       false,
		"config":       false,
		"history":      false,
	}

	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc1234", "2026-01-01")

	persistent := []string{"verbose", "config", "model"}
	for _, name := range persistent {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}

	local := []string{"output", "yes", "no-history", "timeout"}
	for _, name := range local {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("draft flag %q not registered on the root command", name)
		}
	}
}

func TestNewRootCmd_FlagShorthands(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc1234", "2026-01-01")

	shorthands := map[string]string{
		"verbose": "v",
		"model":   "m",
		"output":  "o",
		"yes":     "y",
	}
	for name, short := range shorthands {
		flag := rootCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("flag %q not registered", name)
			continue
		}
		if flag.Shorthand != short {
			t.Errorf("flag %q shorthand = %q, want %q", name, flag.Shorthand, short)
		}
	}
}

func TestNewRootCmd_HookIsHidden(t *testing.T) {
	rootCmd := NewRootCmd("1.0.0", "abc1234", "2026-01-01")

	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "hook" && !sub.Hidden {
			t.Error("hook command should be hidden from help output")
		}
	}
}

func TestNewRootCmd_Version(t *testing.T) {
	rootCmd := NewRootCmd("1.2.3", "deadbee", "2026-02-02")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"GitMuse 1.2.3", "Commit: deadbee", "Built:  2026-02-02"} {
		if !strings.Contains(got, want) {
			t.Errorf("version output missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateCmd_Flags(t *testing.T) {
	genCmd := NewGenerateCmd()

	for _, name := range []string{"output", "yes", "no-history", "timeout"} {
		if genCmd.Flags().Lookup(name) == nil {
			t.Errorf("generate flag %q not registered", name)
		}
	}
}

func TestHookCmd_RequiresMessageFile(t *testing.T) {
	hookCmd := NewHookCmd()

	if err := hookCmd.Args(hookCmd, []string{}); err == nil {
		t.Error("hook should require the message file argument")
	}
	if err := hookCmd.Args(hookCmd, []string{".git/COMMIT_EDITMSG"}); err != nil {
		t.Errorf("one argument should be accepted: %v", err)
	}
	if err := hookCmd.Args(hookCmd, []string{"a", "b"}); err == nil {
		t.Error("hook should reject extra arguments")
	}
}

func TestHookScript_SkipsPrefilledSources(t *testing.T) {
	for _, source := range []string{"merge", "squash", "commit", "message"} {
		if !strings.Contains(hookScript, source) {
			t.Errorf("hook script should skip the %q source", source)
		}
	}
	if !strings.Contains(hookScript, "gitmuse hook") {
		t.Error("hook script should invoke gitmuse hook")
	}
	if !strings.HasPrefix(hookScript, "#!/bin/sh") {
		t.Error("hook script needs a shebang line")
	}
}
