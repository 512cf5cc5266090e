// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tutorial loads the elastic tensor tutorial table: the raw dataset
// with a fixed set of columns dropped, the VRH moduli renamed to
// bulk_modulus and shear_modulus, float values rounded to one decimal, and
// rows keyed by material_id.
package tutorial

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/elastic-tutorial/internal/dataset"
	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

// DropColumns are removed unconditionally. space_group is kept.
var DropColumns = []string{
	"nsites",
	"elastic_anisotropy",
	"structure",
	"volume",
	"G_Voigt",
	"G_Reuss",
	"K_Voigt",
	"K_Reuss",
	"compliance_tensor",
	"elastic_tensor",
	"elastic_tensor_original",
	"poisson_ratio",
}

// RenameColumns maps the VRH averages to their tutorial names.
var RenameColumns = map[string]string{
	"K_VRH": "bulk_modulus",
	"G_VRH": "shear_modulus",
}

const (
	// Precision is the number of decimals float columns are rounded to.
	Precision = 1

	// IndexColumn becomes the row key.
	IndexColumn = "material_id"
)

// Option configures a load.
type Option func(*loader)

type loader struct {
	log *zap.Logger
}

// WithLogger logs each pipeline step at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(l *loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Load fetches the published dataset over HTTP and returns the tutorial table.
func Load(ctx context.Context, opts ...Option) (*frame.Frame, error) {
	src := &dataset.HTTPSource{
		Client: &http.Client{Timeout: 5 * time.Minute},
		URL:    dataset.DefaultURL,
	}
	return LoadFrom(ctx, src, opts...)
}

// LoadFrom runs the tutorial transformation against src. The steps run in
// a fixed order (fetch, drop, rename, round, index) and the first failure
// is returned with a nil table. A schema that lacks any dropped or renamed
// column, or the material_id column, fails with frame.ErrColumnNotFound.
// Every call fetches and builds a new table.
func LoadFrom(ctx context.Context, src dataset.Source, opts ...Option) (*frame.Frame, error) {
	l := &loader{log: zap.NewNop()}
	for _, o := range opts {
		o(l)
	}
	log := l.log.With(zap.String("source", src.Name()))

	start := time.Now()
	f, err := dataset.ElasticTensor(ctx, src)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched dataset",
		zap.Int("rows", f.NRows()),
		zap.Int("columns", len(f.Columns())),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := f.Drop(DropColumns...); err != nil {
		return nil, fmt.Errorf("tutorial data: %w", err)
	}
	log.Debug("dropped columns", zap.Strings("columns", DropColumns))

	if err := f.Rename(RenameColumns); err != nil {
		return nil, fmt.Errorf("tutorial data: %w", err)
	}

	f.Round(Precision)

	if err := f.SetIndex(IndexColumn); err != nil {
		return nil, fmt.Errorf("tutorial data: %w", err)
	}
	log.Debug("tutorial table ready",
		zap.Int("rows", f.NRows()),
		zap.Strings("columns", f.Columns()),
	)
	return f, nil
}
