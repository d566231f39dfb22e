package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/reportgen/internal/model"
)

// sampleResult returns a rendered CSV result for writer tests.
func sampleResult(t *testing.T, user model.User) *Result {
	t.Helper()

	result, err := NewGenerator().Generate(model.ReportTypeCSV, user, sampleItems())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// TestStreamWriter tests writing reports to an io.Writer.
func TestStreamWriter(t *testing.T) {
	t.Parallel()

	t.Run("single report ends with newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewStreamWriter(&buf)
		result := sampleResult(t, model.User{Name: "Alice", Role: model.RoleAdmin})

		n, err := w.Write(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != len(result.Text)+1 {
			t.Errorf("expected %d bytes, got %d", len(result.Text)+1, n)
		}
		if buf.String() != result.Text+"\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("separator between reports", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewStreamWriter(&buf, WithSeparator("---\n"))
		first := sampleResult(t, model.User{Name: "Alice", Role: model.RoleAdmin})
		second := sampleResult(t, model.User{Name: "Bob", Role: model.RoleUser})

		if _, err := w.Write(first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := w.Write(second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := first.Text + "\n---\n" + second.Text + "\n"
		if buf.String() != want {
			t.Errorf("unexpected output\nwant: %q\ngot:  %q", want, buf.String())
		}
	})
}

// failingWriter always fails.
type failingWriter struct{}

func (failingWriter) Write(*Result) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		w := NewMultiWriter(NewStreamWriter(&a), NewStreamWriter(&b))
		result := sampleResult(t, model.User{Name: "Alice", Role: model.RoleAdmin})

		n, err := w.Write(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2*(len(result.Text)+1) {
			t.Errorf("unexpected byte count %d", n)
		}
		if a.String() != b.String() {
			t.Error("expected identical output in both writers")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMultiWriter(failingWriter{}, NewStreamWriter(&buf))

		if _, err := w.Write(sampleResult(t, model.User{Name: "Alice", Role: model.RoleAdmin})); err == nil {
			t.Fatal("expected error")
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

// TestDirWriter tests writing one file per report.
func TestDirWriter(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewDirWriter(dir)
	result := sampleResult(t, model.User{Name: "Alice Smith", Role: model.RoleAdmin})

	if _, err := w.Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "report-Alice_Smith-admin.csv")
	if got := w.Paths(); len(got) != 1 || got[0] != path {
		t.Fatalf("unexpected paths %v", got)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if string(content) != result.Text+"\n" {
		t.Errorf("unexpected content %q", content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat report: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}
}

// TestFileName tests output file naming.
func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *Result
		want   string
	}{
		{
			name:   "html admin",
			result: &Result{Type: model.ReportTypeHTML, User: model.User{Name: "alice", Role: model.RoleAdmin}},
			want:   "report-alice-admin.html",
		},
		{
			name:   "markdown user with path characters",
			result: &Result{Type: model.ReportTypeMarkdown, User: model.User{Name: "../bob", Role: model.RoleUser}},
			want:   "report-___bob-user.md",
		},
		{
			name:   "empty user name",
			result: &Result{Type: model.ReportTypeCSV, User: model.User{Role: model.RoleUser}},
			want:   "report-anonymous-user.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileName(tt.result); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
