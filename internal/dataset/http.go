// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/internal/httputil"
)

// DefaultURL is the published download location of the 2015 elastic
// tensor dataset (gzip-compressed JSON, pandas split orientation).
// Override it through configuration if the provider moves the file.
const DefaultURL = "https://ndownloader.figshare.com/files/13220603"

// DefaultUserAgent is sent when no User-Agent is configured.
const DefaultUserAgent = "elastic-tutorial/0.1"

// HTTPSource downloads the dataset over HTTP.
type HTTPSource struct {
	Client    *http.Client
	URL       string
	UserAgent string
	SHA256    string
}

// Name returns the source identifier.
func (s *HTTPSource) Name() string { return "url" }

// Fetch downloads and decodes the dataset. A transport error or non-200
// response is reported as ErrFetch.
func (s *HTTPSource) Fetch(ctx context.Context) (*frame.Frame, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	ua := s.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	data, err := httputil.Get(ctx, client, url, ua)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return decodeVerified(data, s.SHA256)
}
