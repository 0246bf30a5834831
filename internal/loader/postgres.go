package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/infrastructure"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

// PostgresSource reads each dataset from a PostgreSQL table of the same
// name, or the name configured in data.tables. A dotted name selects a
// schema.
type PostgresSource struct {
	pool  *pgxpool.Pool
	data  config.DataConfig
	owned bool
}

// NewPostgresSource reads through an existing pool. Close leaves the pool open.
func NewPostgresSource(pool *pgxpool.Pool, data config.DataConfig) *PostgresSource {
	return &PostgresSource{pool: pool, data: data}
}

// OpenPostgresSource opens a pool from cfg. Close closes it.
func OpenPostgresSource(ctx context.Context, cfg config.DatabaseConfig, data config.DataConfig) (*PostgresSource, error) {
	pool, err := infrastructure.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	src := NewPostgresSource(pool, data)
	src.owned = true
	return src, nil
}

// Name implements Source.
func (s *PostgresSource) Name() string { return config.SourcePostgres }

func (s *PostgresSource) identifier(d store.Dataset) pgx.Identifier {
	name := s.data.TableName(string(d), string(d))
	return pgx.Identifier(strings.Split(name, "."))
}

// ReadTable implements Source. Every column is read and rendered as text.
func (s *PostgresSource) ReadTable(ctx context.Context, d store.Dataset) (store.Table, error) {
	ident := s.identifier(d)
	rows, err := s.pool.Query(ctx, "SELECT * FROM "+ident.Sanitize())
	if err != nil {
		return store.Table{}, fmt.Errorf("query %s: %w", ident.Sanitize(), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	t := store.Table{Columns: make([]string, len(fields))}
	for i, f := range fields {
		t.Columns[i] = f.Name
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return store.Table{}, fmt.Errorf("scan %s: %w", ident.Sanitize(), err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return store.Table{}, fmt.Errorf("read %s: %w", ident.Sanitize(), err)
	}
	return t, nil
}

// WriteTable replaces the contents of the dataset's table with t, creating
// the table with TEXT columns when it does not exist. Missing-value cells
// are stored as NULL. It returns the number of rows copied.
func (s *PostgresSource) WriteTable(ctx context.Context, d store.Dataset, t store.Table) (int64, error) {
	if len(t.Columns) == 0 {
		return 0, errors.New("table has no columns")
	}
	ident := s.identifier(d)

	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = pgx.Identifier{c}.Sanitize() + " TEXT"
	}

	rows := make([][]interface{}, 0, len(t.Rows))
	for _, r := range t.Rows {
		vals := make([]interface{}, len(t.Columns))
		for i := range t.Columns {
			if i < len(r) && store.Clean(r[i]) != "" {
				vals[i] = r[i]
			}
		}
		rows = append(rows, vals)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("create %s: %w", ident.Sanitize(), err)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+ident.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", ident.Sanitize(), err)
	}
	n, err := tx.CopyFrom(ctx, ident, t.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", ident.Sanitize(), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	logger.Info("Dataset written",
		zap.String("dataset", d.String()),
		zap.String("table", ident.Sanitize()),
		zap.Int64("rows", n),
	)
	return n, nil
}

// Close implements Source.
func (s *PostgresSource) Close() error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}
