package main

import (
	"runtime"
	"strings"
	"testing"
)

// TestBuildInfoFallbacks tests that version details are never empty.
func TestBuildInfoFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		get  func() string
	}{
		{name: "version", get: getVersion},
		{name: "commit", get: getCommit},
		{name: "date", get: getDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.get(); got == "" {
				t.Errorf("expected non-empty %s", tt.name)
			}
		})
	}

	t.Run("commit is shortened", func(t *testing.T) {
		t.Parallel()
		if c := getCommit(); c != "unknown" && len(c) > shortCommitLen {
			t.Errorf("expected commit of at most %d characters, got %q", shortCommitLen, c)
		}
	})
}

// TestRunVersionCmd tests the version output.
func TestRunVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("full output names version, commit, date and platform", func(t *testing.T) {
		t.Parallel()
		out, err := runCommand(t, NewVersionCmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"reportgen version " + getVersion(),
			"commit:   " + getCommit(),
			"built:    " + getDate(),
			runtime.GOOS + "/" + runtime.GOARCH,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("short flag prints only the version", func(t *testing.T) {
		t.Parallel()
		out, err := runCommand(t, NewVersionCmd, "-s")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != getVersion()+"\n" {
			t.Errorf("expected %q, got %q", getVersion()+"\n", out)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()
		if _, err := runCommand(t, NewVersionCmd, "extra"); err == nil {
			t.Error("expected error for extra argument")
		}
	})
}
