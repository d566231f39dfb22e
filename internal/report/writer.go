package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer sends finished reports to a destination.
type Writer interface {
	// Write outputs the report text.
	// Returns the number of bytes written and any error encountered.
	Write(result *Result) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(result *Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// StreamWriter writes report text to an io.Writer, one report after
// another, each terminated by a line break.
type StreamWriter struct {
	output io.Writer

	// separator is written between consecutive reports.
	separator string

	written bool
}

// StreamWriterOption configures a StreamWriter.
type StreamWriterOption func(*StreamWriter)

// WithSeparator sets the text written between consecutive reports.
func WithSeparator(sep string) StreamWriterOption {
	return func(w *StreamWriter) {
		w.separator = sep
	}
}

// NewStreamWriter creates a StreamWriter that outputs to the given writer.
func NewStreamWriter(output io.Writer, opts ...StreamWriterOption) *StreamWriter {
	w := &StreamWriter{
		output:    output,
		separator: "\n",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report text followed by a line break.
func (w *StreamWriter) Write(result *Result) (int, error) {
	var sb strings.Builder
	if w.written {
		sb.WriteString(w.separator)
	}
	sb.WriteString(result.Text)
	sb.WriteString("\n")
	w.written = true

	return io.WriteString(w.output, sb.String())
}

// DirWriter writes each report to its own file in a directory.
// Files are named report-<user>-<role>.<ext>.
type DirWriter struct {
	dir string

	// paths records the files written, in order.
	paths []string
}

// NewDirWriter creates a DirWriter for dir. The directory is created on
// first write.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{dir: dir}
}

// Write stores the report text in its file, replacing any previous content.
func (w *DirWriter) Write(result *Result) (int, error) {
	path := filepath.Join(w.dir, FileName(result))
	n, err := WriteFile(path, result.Text+"\n")
	if err != nil {
		return n, err
	}
	w.paths = append(w.paths, path)
	return n, nil
}

// Paths returns the files written so far.
func (w *DirWriter) Paths() []string {
	return w.paths
}

// FileName returns the file name used for result inside an output directory.
// Characters outside [A-Za-z0-9_-] in the user name are replaced by '_'.
func FileName(result *Result) string {
	user := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, result.User.Name)
	if user == "" {
		user = "anonymous"
	}
	return fmt.Sprintf("report-%s-%s.%s",
		user,
		strings.ToLower(result.User.Role.String()),
		result.Type.Extension(),
	)
}

// WriteFile writes text to path, creating parent directories as needed.
// Reports may contain sensitive data, so files are only readable by the owner.
func WriteFile(path, text string) (int, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Output path is user-provided
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	n, err := io.WriteString(f, text)
	if err != nil {
		return n, fmt.Errorf("failed to write report: %w", err)
	}
	return n, nil
}
