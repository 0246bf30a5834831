// Package loader reads the five datasets from a table source and publishes
// them to the store as a new snapshot.
//
// Import Path: incidentlens.io/lens/internal/loader
package loader

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/store"
)

// Source reads raw datasets.
type Source interface {
	// Name identifies the source kind in logs.
	Name() string
	// ReadTable reads one dataset. A missing table or file is an error.
	ReadTable(ctx context.Context, d store.Dataset) (store.Table, error)
	Close() error
}

// NewSource opens the source selected by cfg.Data.Source.
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Data.Source {
	case config.SourceCSV:
		return NewCSVSource(cfg.Data.Dir, cfg.Data), nil
	case config.SourcePostgres:
		return OpenPostgresSource(ctx, cfg.Database, cfg.Data)
	case config.SourceSQLite:
		return OpenSQLiteSource(cfg.SQLite.Path, cfg.Data)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// cellString renders a database value as the text a CSV export would hold.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return ""
		}
		if _, again := dv.(driver.Valuer); again {
			return fmt.Sprint(dv)
		}
		return cellString(dv)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
