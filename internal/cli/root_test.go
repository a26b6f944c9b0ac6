package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"verify", "validate", "version"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestExecute_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	line := `1.2.3.4 - - [06/Aug/2007:00:13:48 -0700] "GET /puzzle/p-aaab.jpg HTTP/1.0" 302 528` + "\n"
	if err := os.WriteFile(logPath, []byte(line), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGPUZZLE_HOST", "")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"urls", []string{logPath}, 0, ""},
		{"version", []string{"version"}, 0, ""},
		{"no log file", []string{}, 1, "Usage:"},
		{"unknown flag", []string{"--bogus", logPath}, 1, "unknown flag"},
		{"missing log file", []string{filepath.Join(dir, "missing.log")}, 2, "missing.log"},
		{"verify without index", []string{"verify", dir}, 2, "index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			root := NewRootCommand()
			root.SetOut(&stdout)
			root.SetErr(&stderr)

			code := execute(context.Background(), root, tt.args, &stderr)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}
