// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frame

import (
	"encoding/json"
	"fmt"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Column storage kinds reported by Kind.
const (
	KindFloat  = "float64"
	KindInt    = "int64"
	KindString = "string"
	KindMixed  = "mixed"
)

// FromRecords builds a frame from row-major data. Each row must have one
// value per column. The storage kind of each column is inferred from its
// non-nil values: integral numbers become int64, any fractional number
// makes the whole column float64, all-string columns stay strings, and
// anything else (nested lists, objects, booleans, mixtures) is kept as-is.
// A column with no values at all is float64, every cell missing.
func FromRecords(columns []string, rows [][]any) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrLengthMismatch, i, len(row), len(columns))
		}
	}

	series := make([]dataframe.Series, len(columns))
	for j, name := range columns {
		vals := make([]any, len(rows))
		for i, row := range rows {
			vals[i] = row[j]
		}
		s, err := buildSeries(name, vals)
		if err != nil {
			return nil, err
		}
		series[j] = s
	}
	return New(series...)
}

func buildSeries(name string, vals []any) (dataframe.Series, error) {
	kind := inferKind(vals)
	switch kind {
	case KindFloat:
		out := make([]any, len(vals))
		for i, v := range vals {
			if v == nil {
				continue
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			out[i] = f
		}
		return dataframe.NewSeriesFloat64(name, nil, out...), nil
	case KindInt:
		out := make([]any, len(vals))
		for i, v := range vals {
			if v == nil {
				continue
			}
			n, err := toInt(v)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			out[i] = n
		}
		return dataframe.NewSeriesInt64(name, nil, out...), nil
	case KindString:
		return dataframe.NewSeriesString(name, nil, vals...), nil
	default:
		// Passed as one slice: a leading []any cell would otherwise be
		// taken as the whole column.
		return dataframe.NewSeriesMixed(name, nil, vals), nil
	}
}

func inferKind(vals []any) string {
	var sawInt, sawFloat, sawString, sawOther bool
	for _, v := range vals {
		switch x := v.(type) {
		case nil:
		case json.Number:
			if isIntegral(x) {
				sawInt = true
			} else {
				sawFloat = true
			}
		case float32, float64:
			sawFloat = true
		case int, int32, int64:
			sawInt = true
		case string:
			sawString = true
		default:
			sawOther = true
		}
	}

	numeric := sawInt || sawFloat
	switch {
	case sawOther || (numeric && sawString):
		return KindMixed
	case sawString:
		return KindString
	case sawFloat:
		return KindFloat
	case sawInt:
		return KindInt
	default:
		return KindFloat
	}
}

func isIntegral(n json.Number) bool {
	if strings.ContainsAny(string(n), ".eE") {
		return false
	}
	_, err := n.Int64()
	return err == nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Int64()
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	}
	return 0, fmt.Errorf("not an integer: %T", v)
}
