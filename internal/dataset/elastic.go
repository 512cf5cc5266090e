// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

// MetadataColumns are the calculation-metadata columns the published
// dataset carries and the elastic tensor convenience loader removes.
var MetadataColumns = []string{"cif", "kpoint_density", "poscar"}

// ElasticTensor fetches the elastic tensor dataset from src and removes
// the metadata columns that are present. The result keeps the full
// property schema (material_id, formula, nsites, space_group, volume,
// structure, elastic_anisotropy, the Voigt/Reuss/VRH moduli,
// poisson_ratio and the three tensor columns).
func ElasticTensor(ctx context.Context, src Source) (*frame.Frame, error) {
	f, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := f.DropIfPresent(MetadataColumns...); err != nil {
		return nil, err
	}
	return f, nil
}
