package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Format is an export file format.
type Format string

// Formats.
const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

const filePerms = 0o644

// Write persists report at path in format.
func Write(ctx context.Context, path string, format Format, report Report) error {
	if path == "" {
		return ErrNoOutput
	}

	switch format {
	case FormatJSON:
		return WriteJSON(path, report)
	case FormatSQLite:
		return WriteSQLite(ctx, path, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes report as indented JSON, replacing path atomically.
func WriteJSON(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	data = append(data, '\n')

	writeErr := atomic.WriteFile(path, bytes.NewReader(data))
	if writeErr != nil {
		return fmt.Errorf("writing report: %w", writeErr)
	}

	// atomic.WriteFile doesn't set permissions for new files
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("setting report permissions: %w", chmodErr)
	}

	return nil
}

const schema = `
CREATE TABLE summary (
	generated_at TEXT NOT NULL,
	domain TEXT NOT NULL,
	tasks INTEGER NOT NULL,
	occurrences INTEGER NOT NULL,
	completed INTEGER NOT NULL,
	earliest TEXT,
	latest TEXT,
	avg_per_day REAL NOT NULL,
	max_single_day INTEGER NOT NULL,
	max_repeat_count INTEGER NOT NULL
);
CREATE TABLE histograms (
	kind TEXT NOT NULL,
	label TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (kind, label)
);
CREATE TABLE timeline (
	day TEXT PRIMARY KEY,
	count INTEGER NOT NULL
);
CREATE TABLE items (
	name TEXT PRIMARY KEY,
	rank INTEGER NOT NULL,
	count INTEGER NOT NULL,
	earliest TEXT,
	latest TEXT
);
CREATE TABLE item_days (
	name TEXT NOT NULL REFERENCES items(name),
	day TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (name, day)
);
CREATE TABLE relations (
	name TEXT NOT NULL REFERENCES items(name),
	related TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (name, related)
);
CREATE TABLE item_groups (
	id INTEGER PRIMARY KEY,
	total INTEGER NOT NULL,
	earliest TEXT,
	latest TEXT
);
CREATE TABLE group_items (
	group_id INTEGER NOT NULL REFERENCES item_groups(id),
	name TEXT NOT NULL,
	PRIMARY KEY (group_id, name)
);`

// WriteSQLite writes report as a SQLite database. The database is built in
// a temporary file next to path and swapped in once complete.
func WriteSQLite(ctx context.Context, path string, report Report) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp database: %w", err)
	}

	tmpPath := tmp.Name()
	_ = tmp.Close()

	defer func() { _ = os.Remove(tmpPath) }()

	if err := buildDatabase(ctx, tmpPath, report); err != nil {
		return err
	}

	if err := os.Chmod(tmpPath, filePerms); err != nil {
		return fmt.Errorf("setting database permissions: %w", err)
	}

	if err := atomic.ReplaceFile(tmpPath, path); err != nil {
		return fmt.Errorf("replacing database: %w", err)
	}

	return nil
}

func buildDatabase(ctx context.Context, path string, report Report) error {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	if err := insertReport(ctx, tx, report); err != nil {
		_ = tx.Rollback()

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing database: %w", err)
	}

	return nil
}

func insertReport(ctx context.Context, tx *sql.Tx, r Report) error {
	exec := func(query string, args ...any) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("writing database: %w", err)
		}

		return nil
	}

	err := exec(`INSERT INTO summary VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"), r.Domain, r.Tasks, r.Occurrences, r.Completed,
		nullString(r.Earliest), nullString(r.Latest), r.AvgPerDay, r.MaxSingleDay, r.MaxRepeatCount)
	if err != nil {
		return err
	}

	for kind, h := range map[string]map[string]int{"state": r.States, "day": r.Days, "category": r.Categories} {
		for label, n := range h {
			if err := exec(`INSERT INTO histograms VALUES (?, ?, ?)`, kind, label, n); err != nil {
				return err
			}
		}
	}

	for _, day := range sortedDays(r.Timeline) {
		if err := exec(`INSERT INTO timeline VALUES (?, ?)`, day, r.Timeline[day]); err != nil {
			return err
		}
	}

	for i, item := range r.Items {
		err := exec(`INSERT INTO items VALUES (?, ?, ?, ?, ?)`,
			item.Name, i+1, item.Count, nullString(item.Earliest), nullString(item.Latest))
		if err != nil {
			return err
		}

		for _, day := range sortedDays(item.Timeline) {
			if err := exec(`INSERT INTO item_days VALUES (?, ?, ?)`, item.Name, day, item.Timeline[day]); err != nil {
				return err
			}
		}

		for _, rel := range item.Relations {
			if err := exec(`INSERT INTO relations VALUES (?, ?, ?)`, item.Name, rel.Name, rel.Count); err != nil {
				return err
			}
		}
	}

	for i, g := range r.Groups {
		id := i + 1

		err := exec(`INSERT INTO item_groups VALUES (?, ?, ?, ?)`, id, g.Total, nullString(g.Earliest), nullString(g.Latest))
		if err != nil {
			return err
		}

		for _, name := range g.Items {
			if err := exec(`INSERT INTO group_items VALUES (?, ?)`, id, name); err != nil {
				return err
			}
		}
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// sqliteDSN builds a file: DSN; modernc.org/sqlite creates the file with mode=rwc.
func sqliteDSN(path string) string {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}

	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()

	return u.String()
}
