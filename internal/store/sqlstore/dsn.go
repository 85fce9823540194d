package sqlstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Dialect names a supported SQL backend.
type Dialect string

// Supported dialects. The string values double as migration directory names.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// sqlitePragmas are applied to every pooled connection by modernc.org/sqlite.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Target is a parsed DATABASE_URI.
type Target struct {
	Dialect Dialect
	DSN     string

	// Path is the SQLite database file; empty for Postgres and in-memory databases.
	Path string
}

// ensureDir creates the directory holding a SQLite database file.
func (t Target) ensureDir() error {
	if t.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o750); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// DriverName returns the database/sql driver registered for the dialect.
func (t Target) DriverName() string {
	if t.Dialect == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// ParseURI accepts postgres://, postgresql://, sqlite://path, file:path or a
// bare filesystem path.
func ParseURI(uri string) (Target, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Target{}, fmt.Errorf("database uri is empty")
	}

	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return Target{Dialect: DialectPostgres, DSN: uri}, nil
	case strings.HasPrefix(uri, "sqlite://"):
		return sqliteTarget(strings.TrimPrefix(uri, "sqlite://"))
	case strings.HasPrefix(uri, "sqlite:"):
		return sqliteTarget(strings.TrimPrefix(uri, "sqlite:"))
	case strings.Contains(uri, "://"):
		return Target{}, fmt.Errorf("unsupported database uri scheme: %s", uri[:strings.Index(uri, "://")])
	default:
		return sqliteTarget(uri)
	}
}

func sqliteTarget(path string) (Target, error) {
	if path == "" || path == "file:" {
		return Target{}, fmt.Errorf("sqlite path is empty")
	}

	base, rawQuery, _ := strings.Cut(path, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Target{}, fmt.Errorf("parse sqlite options: %w", err)
	}
	if _, ok := query["_pragma"]; !ok {
		for _, p := range sqlitePragmas {
			query.Add("_pragma", p)
		}
	}

	file := strings.TrimPrefix(base, "file:")
	if file == ":memory:" || query.Get("mode") == "memory" {
		file = ""
	}
	if !strings.HasPrefix(base, "file:") {
		base = "file:" + base
	}
	return Target{Dialect: DialectSQLite, DSN: base + "?" + query.Encode(), Path: file}, nil
}
