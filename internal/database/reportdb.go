package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/reportgen/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "reportgen.db"

var (
	// ErrReportNotFound is returned when no report has the requested ID.
	ErrReportNotFound = errors.New("report not found")

	// ErrDatasetNotFound is returned when no dataset has the requested name.
	ErrDatasetNotFound = errors.New("dataset not found")
)

// ReportDB provides SQLite-based storage for datasets and report history.
type ReportDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ReportDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ReportDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ReportDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ReportDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the database file path.
func (rdb *ReportDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *ReportDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ReportDB) createTables() error {
	schema := `
	-- Named datasets, including empty ones
	CREATE TABLE IF NOT EXISTS datasets (
		name TEXT PRIMARY KEY,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Items of named datasets, one row per item in input order
	CREATE TABLE IF NOT EXISTS items (
		dataset TEXT NOT NULL,
		position INTEGER NOT NULL,
		item_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		priority INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (dataset, position),
		UNIQUE (dataset, item_id)
	);

	-- Generated reports
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_type TEXT NOT NULL,
		user_name TEXT NOT NULL,
		role TEXT NOT NULL,
		dataset TEXT,
		digest TEXT NOT NULL,
		size INTEGER NOT NULL,
		included INTEGER NOT NULL,
		excluded INTEGER NOT NULL,
		total REAL NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
	CREATE INDEX IF NOT EXISTS idx_reports_digest ON reports(digest);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// ReplaceItems stores items as the content of dataset, replacing any
// previous content. The operation is atomic.
func (rdb *ReportDB) ReplaceItems(ctx context.Context, dataset string, items []model.Item) (err error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE dataset = ?`, dataset); err != nil {
		return fmt.Errorf("failed to clear dataset: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
	INSERT INTO datasets (name) VALUES (?)
	ON CONFLICT(name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
	`, dataset); err != nil {
		return fmt.Errorf("failed to register dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO items (dataset, position, item_id, name, value, priority)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err = stmt.ExecContext(ctx, dataset, i, item.ID, item.Name, item.Value, item.Priority); err != nil {
			return fmt.Errorf("failed to insert item %q: %w", item.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

// ListItems returns the items of dataset in their stored order.
// An unknown dataset returns ErrDatasetNotFound; an empty one yields no items.
func (rdb *ReportDB) ListItems(ctx context.Context, dataset string) ([]model.Item, error) {
	var exists int
	err := rdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets WHERE name = ?`, dataset).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up dataset: %w", err)
	}
	if exists == 0 {
		return nil, ErrDatasetNotFound
	}

	query := `
	SELECT item_id, name, value, priority FROM items
	WHERE dataset = ?
	ORDER BY position
	`

	rows, err := rdb.db.QueryContext(ctx, query, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Value, &item.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListDatasets returns the names of all stored datasets.
func (rdb *ReportDB) ListDatasets(ctx context.Context) ([]string, error) {
	query := `
	SELECT name FROM datasets
	ORDER BY name
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, name)
	}

	return datasets, rows.Err()
}

// ReportRecord is a stored report.
type ReportRecord struct {
	ID         int64
	ReportType model.ReportType
	UserName   string
	Role       model.Role
	Dataset    string
	Digest     string
	Size       int
	Included   int
	Excluded   int
	Total      float64
	Body       string
	CreatedAt  time.Time
}

// Digest returns the hex encoded SHA3-256 digest of a report text.
func Digest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// SaveReport stores a report. Digest and Size are derived from Body and
// ID is set from the inserted row.
func (rdb *ReportDB) SaveReport(ctx context.Context, record *ReportRecord) error {
	record.Digest = Digest(record.Body)
	record.Size = len(record.Body)

	query := `
	INSERT INTO reports (report_type, user_name, role, dataset, digest, size, included, excluded, total, body)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := rdb.db.ExecContext(ctx, query,
		string(record.ReportType),
		record.UserName,
		string(record.Role),
		record.Dataset,
		record.Digest,
		record.Size,
		record.Included,
		record.Excluded,
		record.Total,
		record.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	record.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read report id: %w", err)
	}
	return nil
}

// ListReports returns report metadata, newest first, without bodies.
// A limit of zero or less returns every report.
func (rdb *ReportDB) ListReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	query := `
	SELECT id, report_type, user_name, role, COALESCE(dataset, ''), digest, size, included, excluded, total, created_at
	FROM reports
	ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var reportType, role, createdAt string
		if err := rows.Scan(
			&rec.ID, &reportType, &rec.UserName, &role, &rec.Dataset, &rec.Digest,
			&rec.Size, &rec.Included, &rec.Excluded, &rec.Total, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		rec.ReportType = model.ReportType(reportType)
		rec.Role = model.Role(role)
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetReport returns the report with the given ID, including its body.
// Returns ErrReportNotFound if there is none.
func (rdb *ReportDB) GetReport(ctx context.Context, id int64) (*ReportRecord, error) {
	query := `
	SELECT id, report_type, user_name, role, COALESCE(dataset, ''), digest, size, included, excluded, total, body, created_at
	FROM reports
	WHERE id = ?
	`

	var rec ReportRecord
	var reportType, role, createdAt string
	err := rdb.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &reportType, &rec.UserName, &role, &rec.Dataset, &rec.Digest,
		&rec.Size, &rec.Included, &rec.Excluded, &rec.Total, &rec.Body, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	rec.ReportType = model.ReportType(reportType)
	rec.Role = model.Role(role)
	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
