package loader

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/store"
)

// SQLiteSource reads each dataset from a table in a SQLite file opened
// read-only.
type SQLiteSource struct {
	db   *sql.DB
	data config.DataConfig
}

// OpenSQLiteSource opens the database file at path. The file must exist.
func OpenSQLiteSource(path string, data config.DataConfig) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite database: %w", err)
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &SQLiteSource{db: db, data: data}, nil
}

// Name implements Source.
func (s *SQLiteSource) Name() string { return config.SourceSQLite }

// ReadTable implements Source.
func (s *SQLiteSource) ReadTable(ctx context.Context, d store.Dataset) (store.Table, error) {
	name := quoteSQLite(s.data.TableName(string(d), string(d)))
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+name)
	if err != nil {
		return store.Table{}, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return store.Table{}, fmt.Errorf("columns of %s: %w", name, err)
	}
	t := store.Table{Columns: cols}

	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return store.Table{}, fmt.Errorf("scan %s: %w", name, err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return store.Table{}, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

// Close implements Source.
func (s *SQLiteSource) Close() error { return s.db.Close() }

func quoteSQLite(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
