// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frame provides the in-memory table the tutorial loader reshapes:
// ordered named columns backed by dataframe-go series, plus an optional
// string row index that replaces a column once SetIndex is called.
package frame

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

var (
	// ErrColumnNotFound is returned when an operation names a column the
	// frame does not have.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns would share a name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrDuplicateKey is returned by SetIndex when a key repeats.
	ErrDuplicateKey = errors.New("duplicate index key")

	// ErrInvalidKey is returned by SetIndex when a key is missing or not a string.
	ErrInvalidKey = errors.New("invalid index key")

	// ErrLengthMismatch is returned when columns or rows disagree on length.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Frame is a table of named columns with an optional row index.
type Frame struct {
	df        *dataframe.DataFrame
	nrows     int
	indexName string
	index     []string
	pos       map[string]int
}

// Record is one row in column order, keyed by its index value.
// Key is empty when the frame has no index.
type Record struct {
	Key    string
	Values []any
}

// New builds a frame from existing series. All series must have the same
// length and distinct names.
func New(series ...dataframe.Series) (*Frame, error) {
	seen := make(map[string]bool, len(series))
	nrows := -1
	for _, s := range series {
		name := s.Name()
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = true
		if nrows >= 0 && s.NRows() != nrows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrLengthMismatch, name, s.NRows(), nrows)
		}
		nrows = s.NRows()
	}
	if nrows < 0 {
		return &Frame{df: &dataframe.DataFrame{}}, nil
	}
	return &Frame{df: dataframe.NewDataFrame(series...), nrows: nrows}, nil
}

// NRows returns the number of rows.
func (f *Frame) NRows() int { return f.nrows }

// Columns returns the regular column names in order. The index is not a column.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.df.Series))
	for i, s := range f.df.Series {
		names[i] = s.Name()
	}
	return names
}

// HasColumn reports whether name is a regular column.
func (f *Frame) HasColumn(name string) bool {
	return f.column(name) >= 0
}

// Kind reports the storage kind of a column: "float64", "int64", "string"
// or "mixed". It returns "" for unknown columns.
func (f *Frame) Kind(name string) string {
	i := f.column(name)
	if i < 0 {
		return ""
	}
	switch f.df.Series[i].(type) {
	case *dataframe.SeriesFloat64:
		return KindFloat
	case *dataframe.SeriesInt64:
		return KindInt
	case *dataframe.SeriesString:
		return KindString
	default:
		return KindMixed
	}
}

func (f *Frame) column(name string) int {
	for i, s := range f.df.Series {
		if s.Name() == name {
			return i
		}
	}
	return -1
}

// missing returns the subset of names that are not columns, sorted.
func (f *Frame) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if !f.HasColumn(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Drop removes the named columns. Every name must exist; if any is absent
// the frame is left unchanged and the error lists all missing names.
func (f *Frame) Drop(names ...string) error {
	if miss := f.missing(names); len(miss) > 0 {
		return fmt.Errorf("drop: %w: [%s]", ErrColumnNotFound, strings.Join(miss, ", "))
	}
	for _, n := range names {
		if err := f.df.RemoveSeries(n); err != nil {
			return fmt.Errorf("drop %q: %w", n, err)
		}
	}
	return nil
}

// DropIfPresent removes whichever of the named columns exist and returns
// the names it removed.
func (f *Frame) DropIfPresent(names ...string) ([]string, error) {
	var dropped []string
	for _, n := range names {
		if !f.HasColumn(n) {
			continue
		}
		if err := f.df.RemoveSeries(n); err != nil {
			return dropped, fmt.Errorf("drop %q: %w", n, err)
		}
		dropped = append(dropped, n)
	}
	return dropped, nil
}

// Rename renames columns according to mapping (old name to new name).
// Every old name must exist and no new name may collide with a column that
// is not itself being renamed. On error the frame is unchanged.
func (f *Frame) Rename(mapping map[string]string) error {
	olds := make([]string, 0, len(mapping))
	for old := range mapping {
		olds = append(olds, old)
	}
	if miss := f.missing(olds); len(miss) > 0 {
		return fmt.Errorf("rename: %w: [%s]", ErrColumnNotFound, strings.Join(miss, ", "))
	}

	final := make(map[string]bool, len(f.df.Series))
	for _, s := range f.df.Series {
		name := s.Name()
		if to, ok := mapping[name]; ok {
			name = to
		}
		if final[name] {
			return fmt.Errorf("rename: %w: %q", ErrDuplicateColumn, name)
		}
		final[name] = true
	}
	if f.indexName != "" && final[f.indexName] {
		return fmt.Errorf("rename: %w: %q is the index", ErrDuplicateColumn, f.indexName)
	}

	for _, s := range f.df.Series {
		if to, ok := mapping[s.Name()]; ok {
			s.Rename(to)
		}
	}
	return nil
}

// Round rounds every float64 column to the given number of decimals using
// round-half-to-even on the scaled value. Other column kinds are untouched.
func (f *Frame) Round(decimals int) {
	scale := math.Pow(10, float64(decimals))
	for _, s := range f.df.Series {
		fs, ok := s.(*dataframe.SeriesFloat64)
		if !ok {
			continue
		}
		for i, v := range fs.Values {
			fs.Values[i] = RoundHalfEven(v, scale)
		}
	}
}

// RoundHalfEven rounds v to the precision given by scale (10^decimals).
// NaN and infinities pass through.
func RoundHalfEven(v, scale float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.RoundToEven(v*scale) / scale
}

// SetIndex moves the named column into the row index. Every value must be
// a non-empty string and keys must be unique.
func (f *Frame) SetIndex(name string) error {
	i := f.column(name)
	if i < 0 {
		return fmt.Errorf("set index: %w: [%s]", ErrColumnNotFound, name)
	}
	s := f.df.Series[i]

	index := make([]string, f.nrows)
	pos := make(map[string]int, f.nrows)
	for row := 0; row < f.nrows; row++ {
		key, ok := s.Value(row).(string)
		if !ok || key == "" {
			return fmt.Errorf("set index: %w: row %d of %q", ErrInvalidKey, row, name)
		}
		if prev, dup := pos[key]; dup {
			return fmt.Errorf("set index: %w: %q at rows %d and %d", ErrDuplicateKey, key, prev, row)
		}
		pos[key] = row
		index[row] = key
	}

	if err := f.df.RemoveSeries(name); err != nil {
		return fmt.Errorf("set index: %w", err)
	}
	f.indexName = name
	f.index = index
	f.pos = pos
	return nil
}

// IndexName returns the name of the indexed column, or "" if none.
func (f *Frame) IndexName() string { return f.indexName }

// Index returns a copy of the row keys, or nil if the frame has no index.
func (f *Frame) Index() []string {
	if f.index == nil {
		return nil
	}
	out := make([]string, len(f.index))
	copy(out, f.index)
	return out
}

// Value returns the cell at row for column col. Missing values are nil.
func (f *Frame) Value(row int, col string) any {
	i := f.column(col)
	if i < 0 || row < 0 || row >= f.nrows {
		return nil
	}
	return f.df.Series[i].Value(row)
}

// Row returns the row with the given key as a column-to-value map.
func (f *Frame) Row(key string) (map[string]any, bool) {
	row, ok := f.pos[key]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(f.df.Series))
	for _, s := range f.df.Series {
		out[s.Name()] = s.Value(row)
	}
	return out, true
}

// Float returns the float64 cell at key and col. ok is false when the key
// or column is unknown, the column is not float64, or the cell is missing.
func (f *Frame) Float(key, col string) (float64, bool) {
	row, ok := f.pos[key]
	if !ok {
		return 0, false
	}
	i := f.column(col)
	if i < 0 {
		return 0, false
	}
	fs, ok := f.df.Series[i].(*dataframe.SeriesFloat64)
	if !ok || math.IsNaN(fs.Values[row]) {
		return 0, false
	}
	return fs.Values[row], true
}

// Records returns every row in order.
func (f *Frame) Records() []Record {
	out := make([]Record, f.nrows)
	for row := 0; row < f.nrows; row++ {
		r := Record{Values: make([]any, len(f.df.Series))}
		if f.index != nil {
			r.Key = f.index[row]
		}
		for j, s := range f.df.Series {
			r.Values[j] = s.Value(row)
		}
		out[row] = r
	}
	return out
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		df:        f.df.Copy(),
		nrows:     f.nrows,
		indexName: f.indexName,
		index:     f.Index(),
	}
	if f.pos != nil {
		c.pos = make(map[string]int, len(f.pos))
		for k, v := range f.pos {
			c.pos[k] = v
		}
	}
	return c
}
