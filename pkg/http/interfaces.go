//go:generate mockgen -destination=mocks/http.go . Client
package http

import "context"

// Client is the HTTP surface the catalogs and the URL resolver depend on.
type Client interface {
	// Fetch downloads a catalog document. Non-200 answers are errors wrapping
	// errutils.ErrCatalogUnreachable.
	Fetch(ctx context.Context, url, accept string) ([]byte, error)

	// CheckURL reports whether url answers a HEAD request with 200.
	CheckURL(ctx context.Context, url string) bool
}

var _ Client = (*HTTPClient)(nil)
