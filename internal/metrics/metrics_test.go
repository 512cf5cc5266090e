// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Success(t *testing.T) {
	r := NewRecorder()
	now := time.Unix(1700000000, 0)

	r.ObserveSuccess("url", 1181, 4, 1500*time.Millisecond, now)

	assert.Equal(t, 1181.0, testutil.ToFloat64(r.rows))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.columns))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.lastSuccess))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.failures.WithLabelValues("url")))
}

func TestRecorder_Failure(t *testing.T) {
	r := NewRecorder()
	r.ObserveFailure("s3", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("s3")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastSuccess))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveSuccess("file", 3, 4, time.Millisecond, time.Unix(1, 0))

	path := filepath.Join(t.TempDir(), "elastic_tutorial.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "elastic_tutorial_rows 3")
	assert.Contains(t, string(data), `elastic_tutorial_load_failed{source="file"} 0`)
}
