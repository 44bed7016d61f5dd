package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// writeTestConfig writes a config that keeps every output under dir.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	data := filepath.Join(dir, "data")
	yaml := fmt.Sprintf(`
paths:
  raw: %[1]s/resource_data.csv
  analysis: %[1]s/resource_analysis.csv
  team_summary: %[1]s/team_summary.csv
charts:
  dir: %[1]s/charts
database:
  driver: sqlite
  path: %[1]s/foreman.db
`, data)
	path := filepath.Join(dir, "foreman.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execCmd(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "fm dev") {
		t.Errorf("expected output to contain 'fm dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out, err := execCmd(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "fm 1.0.0 (commit: abc123, built: 2026-01-01)") {
		t.Errorf("unexpected version output: %s", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, err := execCmd(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, sub := range []string{"run", "history", "show", "serve", "schedule", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	cmd := newRootCmd()
	want := map[string]bool{"run": false, "history": false, "show": false, "serve": false, "schedule": false, "version": false}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExecute_ReturnsExitCode(t *testing.T) {
	ok := &cobra.Command{Use: "ok", RunE: func(*cobra.Command, []string) error { return nil }}
	ok.SetArgs([]string{})
	if code := execute(ok); code != 0 {
		t.Errorf("execute(ok) = %d, want 0", code)
	}
	bad := &cobra.Command{Use: "bad", SilenceErrors: true, SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error { return fmt.Errorf("boom") }}
	bad.SetArgs([]string{})
	if code := execute(bad); code != 1 {
		t.Errorf("execute(bad) = %d, want 1", code)
	}
}
