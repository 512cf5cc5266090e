// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a loaded table to stdout formats (text table,
// JSON, YAML, CSV) or into a SQLite database.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

// cellWidth truncates long cells (tensors, structures) in the text table.
const cellWidth = 40

// Write renders f to w in the given format. An empty format is a text table.
func Write(w io.Writer, f *frame.Frame, format types.ExportFormat) error {
	switch format {
	case "", types.FormatTable:
		return WriteTable(w, f)
	case types.FormatJSON:
		return WriteJSON(w, f)
	case types.FormatYAML:
		return WriteYAML(w, f)
	case types.FormatCSV:
		return WriteCSV(w, f)
	default:
		return fmt.Errorf("unknown export format %q (want table, json, yaml or csv)", format)
	}
}

// header returns the output column names: the index first, if any.
func header(f *frame.Frame) []string {
	cols := f.Columns()
	if f.IndexName() == "" {
		return cols
	}
	return append([]string{f.IndexName()}, cols...)
}

// rowValues returns a record's cells aligned with header.
func rowValues(f *frame.Frame, r frame.Record) []any {
	if f.IndexName() == "" {
		return r.Values
	}
	return append([]any{r.Key}, r.Values...)
}

// formatCell renders a value for text and CSV output. Missing values are empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// WriteTable writes an aligned text table followed by a row count.
func WriteTable(w io.Writer, f *frame.Frame) error {
	if f.NRows() == 0 {
		_, err := fmt.Fprintln(w, "No rows.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header(f), "\t"))
	for _, r := range f.Records() {
		vals := rowValues(f, r)
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = truncate(formatCell(v), cellWidth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d rows\n", f.NRows())
	return err
}

// WriteJSON writes an array of objects, one per row, with keys in column
// order and the index first.
func WriteJSON(w io.Writer, f *frame.Frame) error {
	cols := header(f)
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, r := range f.Records() {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		for j, v := range rowValues(f, r) {
			if j > 0 {
				buf.WriteString(", ")
			}
			k, _ := json.Marshal(cols[j])
			val, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", cols[j], err)
			}
			buf.Write(k)
			buf.WriteString(": ")
			buf.Write(val)
		}
		buf.WriteString("}")
	}
	if f.NRows() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteYAML writes a sequence of mappings, one per row, with keys in
// column order and the index first.
func WriteYAML(w io.Writer, f *frame.Frame) error {
	cols := header(f)
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range f.Records() {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, v := range rowValues(f, r) {
			var key, val yaml.Node
			if err := key.Encode(cols[j]); err != nil {
				return fmt.Errorf("encoding key %s: %w", cols[j], err)
			}
			if err := val.Encode(v); err != nil {
				return fmt.Errorf("encoding %s: %w", cols[j], err)
			}
			m.Content = append(m.Content, &key, &val)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteCSV writes a header row and one line per row. Nested values are
// JSON-encoded into a single cell.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(f)); err != nil {
		return err
	}
	for _, r := range f.Records() {
		vals := rowValues(f, r)
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = formatCell(v)
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
