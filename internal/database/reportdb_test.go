package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/reportgen/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *ReportDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %s", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "missing")
		db, err := Open(dbDir, Options{CreateIfNotExists: false})
		if err == nil {
			_ = db.Close()
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		_ = db.Close()

		db, err = Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		_ = db.Close()
	})
}

// TestItems tests dataset storage.
func TestItems(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip keeps order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		items := []model.Item{
			{ID: "3", Name: "Third", Value: 30},
			{ID: "1", Name: "First", Value: 1500},
			{ID: "2", Name: "Second", Value: 12.5},
		}

		if err := db.ReplaceItems(ctx, "office", items); err != nil {
			t.Fatalf("failed to store items: %v", err)
		}

		got, err := db.ListItems(ctx, "office")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(got) != len(items) {
			t.Fatalf("expected %d items, got %d", len(items), len(got))
		}
		for i := range items {
			if got[i] != items[i] {
				t.Errorf("item %d: expected %+v, got %+v", i, items[i], got[i])
			}
		}
	})

	t.Run("replace drops previous content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if err := db.ReplaceItems(ctx, "office", []model.Item{{ID: "1", Name: "Old", Value: 1}}); err != nil {
			t.Fatalf("failed to store items: %v", err)
		}
		if err := db.ReplaceItems(ctx, "office", []model.Item{{ID: "2", Name: "New", Value: 2}}); err != nil {
			t.Fatalf("failed to store items: %v", err)
		}

		got, err := db.ListItems(ctx, "office")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(got) != 1 || got[0].ID != "2" {
			t.Errorf("expected only the new item, got %+v", got)
		}
	})

	t.Run("duplicate ids roll back", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if err := db.ReplaceItems(ctx, "office", []model.Item{{ID: "1", Name: "Keep", Value: 1}}); err != nil {
			t.Fatalf("failed to store items: %v", err)
		}

		dup := []model.Item{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}}
		if err := db.ReplaceItems(ctx, "office", dup); err == nil {
			t.Fatal("expected error for duplicate ids")
		}

		got, err := db.ListItems(ctx, "office")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("expected previous content to survive, got %+v", got)
		}
	})

	t.Run("priority survives storage", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		items := []model.Item{
			{ID: "a", Name: "Silver", Value: 200},
			{ID: "b", Name: "Gold", Value: 300, Priority: true},
		}
		if err := db.ReplaceItems(ctx, "vault", items); err != nil {
			t.Fatalf("failed to store items: %v", err)
		}

		got, err := db.ListItems(ctx, "vault")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 items, got %d", len(got))
		}
		if got[0].Priority {
			t.Errorf("expected item a without priority, got %+v", got[0])
		}
		if !got[1].Priority {
			t.Errorf("expected item b to keep priority, got %+v", got[1])
		}
	})

	t.Run("unknown dataset is not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, err := db.ListItems(ctx, "nothing")
		if !errors.Is(err, ErrDatasetNotFound) {
			t.Errorf("expected ErrDatasetNotFound, got %v", err)
		}
	})

	t.Run("empty dataset exists without items", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if err := db.ReplaceItems(ctx, "blank", nil); err != nil {
			t.Fatalf("failed to store empty dataset: %v", err)
		}

		got, err := db.ListItems(ctx, "blank")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no items, got %d", len(got))
		}

		names, err := db.ListDatasets(ctx)
		if err != nil {
			t.Fatalf("failed to list datasets: %v", err)
		}
		if len(names) != 1 || names[0] != "blank" {
			t.Errorf("expected blank dataset to be listed, got %v", names)
		}
	})

	t.Run("lists datasets", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		for _, name := range []string{"b", "a"} {
			if err := db.ReplaceItems(ctx, name, []model.Item{{ID: "1", Name: "X"}}); err != nil {
				t.Fatalf("failed to store items: %v", err)
			}
		}

		got, err := db.ListDatasets(ctx)
		if err != nil {
			t.Fatalf("failed to list datasets: %v", err)
		}
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("unexpected datasets %v", got)
		}
	})
}

// TestReports tests report history storage.
func TestReports(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		rec := &ReportRecord{
			ReportType: model.ReportTypeCSV,
			UserName:   "Alice",
			Role:       model.RoleAdmin,
			Dataset:    "office",
			Included:   2,
			Total:      1700,
			Body:       "ID,NOME,VALOR,USUARIO\n1,Pen,200,Alice\n2,Laptop,1500,Alice\n\nTotal,,\n1700,,",
		}

		if err := db.SaveReport(ctx, rec); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if rec.ID == 0 {
			t.Error("expected ID to be set")
		}
		if rec.Digest != Digest(rec.Body) || len(rec.Digest) != 64 {
			t.Errorf("unexpected digest %q", rec.Digest)
		}
		if rec.Size != len(rec.Body) {
			t.Errorf("expected size %d, got %d", len(rec.Body), rec.Size)
		}

		got, err := db.GetReport(ctx, rec.ID)
		if err != nil {
			t.Fatalf("failed to get report: %v", err)
		}
		if got.Body != rec.Body || got.UserName != "Alice" || got.Role != model.RoleAdmin ||
			got.ReportType != model.ReportTypeCSV || got.Total != 1700 || got.Dataset != "office" {
			t.Errorf("unexpected record %+v", got)
		}
		if got.CreatedAt.IsZero() {
			t.Error("expected creation time to be parsed")
		}
	})

	t.Run("missing report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if _, err := db.GetReport(ctx, 42); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("list is newest first and honors limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		for _, name := range []string{"first", "second", "third"} {
			rec := &ReportRecord{ReportType: model.ReportTypeHTML, UserName: name, Role: model.RoleUser, Body: name}
			if err := db.SaveReport(ctx, rec); err != nil {
				t.Fatalf("failed to save report: %v", err)
			}
		}

		all, err := db.ListReports(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}
		if len(all) != 3 || all[0].UserName != "third" || all[2].UserName != "first" {
			t.Errorf("unexpected order %+v", all)
		}
		if all[0].Body != "" {
			t.Error("expected list to omit bodies")
		}

		limited, err := db.ListReports(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list reports: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 reports, got %d", len(limited))
		}
	})
}

// TestDigest tests that the digest is stable and content dependent.
func TestDigest(t *testing.T) {
	t.Parallel()

	if Digest("a") != Digest("a") {
		t.Error("expected stable digest")
	}
	if Digest("a") == Digest("b") {
		t.Error("expected different digests for different text")
	}
	// SHA3-256 of the empty string.
	if got := Digest(""); got != "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a" {
		t.Errorf("unexpected empty digest %s", got)
	}
}

// TestParseTimestamp tests timestamp parsing fallbacks.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2024-01-02 03:04:05", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05+09:00"} {
		if parseTimestamp(s).IsZero() {
			t.Errorf("expected %q to parse", s)
		}
	}
	if !parseTimestamp("not a time").IsZero() {
		t.Error("expected zero time for invalid input")
	}
}
