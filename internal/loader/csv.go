package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/store"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ctxCheckEvery is how many records are read between context checks.
const ctxCheckEvery = 1024

// CSVSource reads each dataset from <dir>/<name>.csv.
type CSVSource struct {
	dir  string
	data config.DataConfig
}

// NewCSVSource creates a CSVSource rooted at dir. File names come from
// data.Tables, falling back to the dataset name.
func NewCSVSource(dir string, data config.DataConfig) *CSVSource {
	return &CSVSource{dir: dir, data: data}
}

// Name implements Source.
func (s *CSVSource) Name() string { return config.SourceCSV }

// Path returns the file the dataset is read from.
func (s *CSVSource) Path(d store.Dataset) string {
	name := s.data.TableName(string(d), string(d))
	if filepath.Ext(name) == "" {
		name += ".csv"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// ReadTable implements Source. The first record is the header; a UTF-8
// byte order mark before it is dropped.
func (s *CSVSource) ReadTable(ctx context.Context, d store.Dataset) (store.Table, error) {
	path := s.Path(d)
	f, err := os.Open(path)
	if err != nil {
		return store.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := readCSV(ctx, f)
	if err != nil {
		return store.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Close implements Source.
func (s *CSVSource) Close() error { return nil }

func readCSV(ctx context.Context, r io.Reader) (store.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return store.Table{}, errors.New("no header row")
	}
	if err != nil {
		return store.Table{}, err
	}

	t := store.Table{Columns: header}
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return store.Table{}, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return store.Table{}, err
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
