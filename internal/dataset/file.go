// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
)

// FileSource reads the dataset from a local .json or .json.gz file.
type FileSource struct {
	Path   string
	SHA256 string
}

// Name returns the source identifier.
func (s *FileSource) Name() string { return "file" }

// Fetch reads and decodes the file. A missing or unreadable file is ErrFetch.
func (s *FileSource) Fetch(ctx context.Context) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return decodeVerified(data, s.SHA256)
}
