package store

import (
	"math"
	"strconv"
	"strings"
)

// missingTokens are the cell values read as missing, in addition to "".
var missingTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"NULL": {}, "null": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#NA": {},
}

// Table is a raw dataset: a header and string rows. Rows may be shorter
// than the header; absent cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// cursor reads cells by column name.
type cursor struct {
	index map[string]int
	row   []string
}

func (t Table) cursor() *cursor {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		name := strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	return &cursor{index: index}
}

// str returns the cell in column col, or "" when the column is unknown or
// the value is a missing-value token.
func (c *cursor) str(col string) string {
	i, ok := c.index[col]
	if !ok || i >= len(c.row) {
		return ""
	}
	return Clean(c.row[i])
}

// integer returns the cell as an integer, or def when absent or not numeric.
// Float cells such as "3.0" are truncated.
func (c *cursor) integer(col string, def int) int {
	s := c.str(col)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

// decimal returns the cell as a float, or nil when absent or not numeric.
func (c *cursor) decimal(col string) *float64 {
	s := c.str(col)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Clean maps missing-value tokens to "" and returns other values unchanged.
func Clean(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	if _, ok := missingTokens[v]; ok {
		return ""
	}
	return v
}
