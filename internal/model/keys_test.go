package model

import (
	"errors"
	"testing"
)

// TestParseRole tests role normalization and rejection of unknown roles.
func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "upper case admin", input: "ADMIN", want: RoleAdmin},
		{name: "lower case admin", input: "admin", want: RoleAdmin},
		{name: "mixed case user with spaces", input: "  User ", want: RoleUser},
		{name: "guest is unknown", input: "GUEST", wantErr: true},
		{name: "empty is unknown", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRole(tt.input)
			if tt.wantErr {
				var keyErr *UnknownKeyError
				if !errors.As(err, &keyErr) {
					t.Fatalf("expected *UnknownKeyError, got %v", err)
				}
				if keyErr.Category != CategoryRole {
					t.Errorf("expected role category, got %v", keyErr.Category)
				}
				if keyErr.Key != tt.input {
					t.Errorf("expected key %q, got %q", tt.input, keyErr.Key)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestParseReportType tests report type normalization.
func TestParseReportType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    ReportType
		wantErr bool
	}{
		{name: "csv", input: "csv", want: ReportTypeCSV},
		{name: "html", input: "Html", want: ReportTypeHTML},
		{name: "markdown", input: "markdown", want: ReportTypeMarkdown},
		{name: "pdf is unknown", input: "PDF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseReportType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKey) {
					t.Fatalf("expected ErrUnknownKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestReportTypeExtension tests file extensions per report type.
func TestReportTypeExtension(t *testing.T) {
	t.Parallel()

	cases := map[ReportType]string{
		ReportTypeCSV:      "csv",
		ReportTypeHTML:     "html",
		ReportTypeMarkdown: "md",
		ReportType("PDF"):  "txt",
	}

	for rt, want := range cases {
		if got := rt.Extension(); got != want {
			t.Errorf("%s: expected %q, got %q", rt, want, got)
		}
	}
}

// TestUnknownKeyError tests the error message and category names.
func TestUnknownKeyError(t *testing.T) {
	t.Parallel()

	t.Run("format category message", func(t *testing.T) {
		t.Parallel()
		err := &UnknownKeyError{Category: CategoryFormat, Key: "PDF"}
		if got := err.Error(); got != `unknown report type: "PDF"` {
			t.Errorf("unexpected message: %s", got)
		}
	})

	t.Run("role category message", func(t *testing.T) {
		t.Parallel()
		err := &UnknownKeyError{Category: CategoryRole, Key: "GUEST"}
		if got := err.Error(); got != `unknown user role: "GUEST"` {
			t.Errorf("unexpected message: %s", got)
		}
	})

	t.Run("matches sentinel when wrapped", func(t *testing.T) {
		t.Parallel()
		var err error = &UnknownKeyError{Category: CategoryRole, Key: "GUEST"}
		wrapped := errors.Join(errors.New("context"), err)
		if !errors.Is(wrapped, ErrUnknownKey) {
			t.Error("expected wrapped error to match ErrUnknownKey")
		}
	})
}
