// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

// --- test helpers ---

func tutorialFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.FromRecords(
		[]string{"material_id", "formula", "space_group", "shear_modulus", "bulk_modulus", "tags"},
		[][]any{
			{"mp-1", "Nb4CoSi", int64(124), 50.1, 100.0, []any{"a", "b"}},
			{"mp-2", "Al(CoSi)2", int64(164), 96.3, nil, nil},
		},
	)
	require.NoError(t, err)
	require.NoError(t, f.SetIndex("material_id"))
	return f
}

// --- tests ---

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tutorialFrame(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "material_id"))
	assert.Contains(t, lines[0], "bulk_modulus")
	assert.Contains(t, lines[1], "mp-1")
	assert.Contains(t, lines[1], "50.1")
	assert.Contains(t, lines[1], "100")
	assert.Equal(t, "2 rows", lines[len(lines)-1])
}

func TestWriteTable_Empty(t *testing.T) {
	f, err := frame.FromRecords([]string{"a"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, f))
	assert.Equal(t, "No rows.\n", buf.String())
}

func TestWriteTable_TruncatesByRune(t *testing.T) {
	formula := strings.Repeat("Å", cellWidth+5)
	f, err := frame.FromRecords([]string{"material_id", "formula"}, [][]any{{"mp-1", formula}})
	require.NoError(t, err)
	require.NoError(t, f.SetIndex("material_id"))

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, f))
	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), strings.Repeat("Å", cellWidth-3)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("Å", cellWidth-2))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 11), 10))
	assert.Equal(t, strings.Repeat("é", 10), truncate(strings.Repeat("é", 10), 10))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tutorialFrame(t)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "mp-1", got[0]["material_id"])
	assert.Equal(t, 100.0, got[0]["bulk_modulus"])
	assert.Equal(t, []any{"a", "b"}, got[0]["tags"])
	assert.Nil(t, got[1]["bulk_modulus"])

	// Keys keep column order with the index first.
	first := buf.String()[:strings.Index(buf.String(), "}")]
	assert.Less(t, strings.Index(first, `"material_id"`), strings.Index(first, `"formula"`))
	assert.Less(t, strings.Index(first, `"shear_modulus"`), strings.Index(first, `"bulk_modulus"`))
}

func TestWriteJSON_Empty(t *testing.T) {
	f, err := frame.FromRecords([]string{"a"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, f))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, tutorialFrame(t)))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "mp-2", got[1]["material_id"])
	assert.Equal(t, 96.3, got[1]["shear_modulus"])
	assert.Equal(t, 164, got[1]["space_group"])
	assert.True(t, strings.HasPrefix(buf.String(), "- material_id: mp-1\n"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tutorialFrame(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"material_id", "formula", "space_group", "shear_modulus", "bulk_modulus", "tags"}, rows[0])
	assert.Equal(t, []string{"mp-1", "Nb4CoSi", "124", "50.1", "100", `["a","b"]`}, rows[1])
	assert.Equal(t, []string{"mp-2", "Al(CoSi)2", "164", "96.3", "", ""}, rows[2])
}

func TestWrite_DispatchesByFormat(t *testing.T) {
	f := tutorialFrame(t)
	for _, format := range []types.ExportFormat{"", types.FormatTable, types.FormatJSON, types.FormatYAML, types.FormatCSV} {
		var buf bytes.Buffer
		assert.NoError(t, Write(&buf, f, format), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	assert.Error(t, Write(&bytes.Buffer{}, f, "parquet"))
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "tutorial.db")
	f := tutorialFrame(t)

	require.NoError(t, WriteSQLite(context.Background(), path, "", f))
	// A second export replaces the table rather than failing on the primary key.
	require.NoError(t, WriteSQLite(context.Background(), path, "", f))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM elastic_tutorial`).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		formula string
		sg      int64
		shear   float64
		bulk    sql.NullFloat64
		tags    sql.NullString
	)
	require.NoError(t, db.QueryRow(
		`SELECT formula, space_group, shear_modulus, bulk_modulus, tags FROM elastic_tutorial WHERE material_id = ?`, "mp-1",
	).Scan(&formula, &sg, &shear, &bulk, &tags))
	assert.Equal(t, "Nb4CoSi", formula)
	assert.Equal(t, int64(124), sg)
	assert.Equal(t, 50.1, shear)
	assert.Equal(t, 100.0, bulk.Float64)
	assert.Equal(t, `["a","b"]`, tags.String)

	require.NoError(t, db.QueryRow(
		`SELECT bulk_modulus FROM elastic_tutorial WHERE material_id = ?`, "mp-2",
	).Scan(&bulk))
	assert.False(t, bulk.Valid)
}

func TestWriteSQLite_CustomTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorial.db")
	require.NoError(t, WriteSQLite(context.Background(), path, `moduli "2015"`, tutorialFrame(t)))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM "moduli ""2015"""`).Scan(&count))
	assert.Equal(t, 2, count)
}
