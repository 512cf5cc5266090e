// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

func TestSimpleAnalyzer_IsNoOp(t *testing.T) {
	seed, err := frame.FromRecords([]string{"material_id", "bulk_modulus"}, [][]any{{"mp-1", 100.0}})
	require.NoError(t, err)
	require.NoError(t, seed.SetIndex("material_id"))
	before := seed.Records()

	tests := []struct {
		name     string
		newData  *frame.Frame
		seedData *frame.Frame
	}{
		{name: "nil frames", newData: nil, seedData: nil},
		{name: "seed only", newData: nil, seedData: seed},
		{name: "same frame for both", newData: seed, seedData: seed},
	}

	var a Analyzer = NewSimpleAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Analyze(tt.newData, tt.seedData)
			assert.NoError(t, err)
			assert.Nil(t, res)
		})
	}

	assert.Equal(t, before, seed.Records(), "seed data untouched")
}
