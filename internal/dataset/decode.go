// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

// jsonAPI keeps numbers as json.Number so integral and fractional columns
// can be told apart when the frame infers column kinds.
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

// splitPayload is the pandas "split" orientation: column names plus
// row-major data. The index is positional and ignored.
type splitPayload struct {
	Columns []string `json:"columns"`
	Index   []any    `json:"index"`
	Data    [][]any  `json:"data"`
}

// Decode parses a raw dataset payload into a frame. The payload may be
// gzip-compressed and may use either the pandas "split" orientation
// (an object with columns and data) or the "records" orientation (an
// array of objects).
func Decode(data []byte) (*frame.Frame, error) {
	raw, err := maybeGunzip(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	var f *frame.Frame
	switch trimmed[0] {
	case '{':
		f, err = decodeSplit(trimmed)
	case '[':
		f, err = decodeRecords(trimmed)
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", ErrDecode, trimmed[0])
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return f, nil
}

func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("reading gzip stream: %w", err)
	}
	return out, nil
}

func decodeSplit(raw []byte) (*frame.Frame, error) {
	var p splitPayload
	if err := jsonAPI.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing split payload: %w", err)
	}
	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("split payload has no columns")
	}
	return frame.FromRecords(p.Columns, p.Data)
}

func decodeRecords(raw []byte) (*frame.Frame, error) {
	var (
		columns []string
		colPos  = map[string]int{}
		rows    []map[string]any
	)

	iter := jsoniter.ParseBytes(jsonAPI, raw)
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		row := map[string]any{}
		it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			if _, ok := colPos[field]; !ok {
				colPos[field] = len(columns)
				columns = append(columns, field)
			}
			row[field] = it.Read()
			return true
		})
		rows = append(rows, row)
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("parsing records payload: %w", iter.Error)
	}

	data := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(columns))
		for name, v := range row {
			vals[colPos[name]] = v
		}
		data[i] = vals
	}
	return frame.FromRecords(columns, data)
}

// verifyChecksum compares the SHA-256 of data against want (hex, any case).
// An empty want skips the check.
func verifyChecksum(data []byte, want string) error {
	if want == "" {
		return nil
	}
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if !strings.EqualFold(got, strings.TrimSpace(want)) {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, got, want)
	}
	return nil
}
