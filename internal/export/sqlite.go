// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

// DefaultTable is the SQLite table written when none is configured.
const DefaultTable = "elastic_tutorial"

// WriteSQLite writes f into table in the SQLite database at path, creating
// the file if needed. An existing table of the same name is replaced. The
// index column, if any, is the primary key.
func WriteSQLite(ctx context.Context, path, table string, f *frame.Frame) error {
	if table == "" {
		table = DefaultTable
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(table)); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createStatement(table, f)); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	cols := header(f)
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range f.Records() {
		vals := rowValues(f, r)
		args := make([]any, len(vals))
		for i, v := range vals {
			arg, err := sqlValue(v)
			if err != nil {
				return fmt.Errorf("row %s column %s: %w", r.Key, cols[i], err)
			}
			args[i] = arg
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %s: %w", r.Key, err)
		}
	}

	return tx.Commit()
}

func createStatement(table string, f *frame.Frame) string {
	var defs []string
	if f.IndexName() != "" {
		defs = append(defs, quoteIdent(f.IndexName())+" TEXT PRIMARY KEY")
	}
	for _, c := range f.Columns() {
		defs = append(defs, quoteIdent(c)+" "+sqlType(f.Kind(c)))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", quoteIdent(table), strings.Join(defs, ",\n\t"))
}

func sqlType(kind string) string {
	switch kind {
	case frame.KindFloat:
		return "REAL"
	case frame.KindInt:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// sqlValue converts a cell to a driver value. Nested values become JSON text.
func sqlValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, float64, int64:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
