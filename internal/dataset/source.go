// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset fetches the raw elastic tensor dataset and decodes it
// into a frame. Sources hide where the bytes come from (HTTP, a local
// file, or an S3 mirror) so the tutorial transformation can run against
// synthetic fixtures without network access.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/internal/secrets"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

var (
	// ErrFetch wraps any failure to retrieve the raw payload.
	ErrFetch = errors.New("dataset fetch failed")

	// ErrDecode wraps a payload that could not be parsed into a table.
	ErrDecode = errors.New("dataset decode failed")

	// ErrChecksumMismatch is returned when the payload digest differs from
	// the configured SHA-256.
	ErrChecksumMismatch = errors.New("dataset checksum mismatch")
)

// Source produces the raw dataset as a fresh frame on every call.
type Source interface {
	// Name identifies the source in logs (e.g. "url", "file", "s3").
	Name() string

	// Fetch retrieves and decodes the dataset.
	Fetch(ctx context.Context) (*frame.Frame, error)
}

// FromConfig builds the Source selected by cfg.Source. An empty source
// kind selects the HTTP source.
func FromConfig(ctx context.Context, cfg types.DatasetConfig, creds secrets.Secrets) (Source, error) {
	switch cfg.Source {
	case "", types.SourceURL:
		return &HTTPSource{
			Client:    &http.Client{Timeout: cfg.Timeout},
			URL:       cfg.URL,
			UserAgent: cfg.UserAgent,
			SHA256:    cfg.SHA256,
		}, nil
	case types.SourceFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return &FileSource{Path: cfg.Path, SHA256: cfg.SHA256}, nil
	case types.SourceS3:
		client, err := NewS3Client(ctx, cfg.S3, creds)
		if err != nil {
			return nil, err
		}
		return &S3Source{
			Client: client,
			Bucket: cfg.S3.Bucket,
			Key:    cfg.S3.Key,
			SHA256: cfg.SHA256,
		}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q (want url, file or s3)", cfg.Source)
	}
}

// decodeVerified checks the digest of data and decodes it.
func decodeVerified(data []byte, sha string) (*frame.Frame, error) {
	if err := verifyChecksum(data, sha); err != nil {
		return nil, err
	}
	return Decode(data)
}
