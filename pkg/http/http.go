package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
)

const (
	// DefaultUserAgent is sent with every catalog request.
	DefaultUserAgent = "get-chrome-driver/1.0"

	// maxCatalogSize bounds catalog bodies. The JSON catalog with downloads is
	// a few megabytes.
	maxCatalogSize = 64 << 20
)

// HTTPClient performs catalog GETs and URL HEAD probes.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a client with the given timeout. An empty userAgent
// selects DefaultUserAgent.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// WithTransport replaces the underlying transport, mostly for tests.
func (hc *HTTPClient) WithTransport(rt http.RoundTripper) *HTTPClient {
	hc.client.Transport = rt
	return hc
}

// Fetch GETs url and returns its body. Transport failures and non-200
// answers are both reported as errutils.ErrCatalogUnreachable.
func (hc *HTTPClient) Fetch(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", hc.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	logger.Debug("fetching catalog", logger.Fields{"url": url})
	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errutils.Kind(errutils.ErrCatalogUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errutils.ErrCatalogStatus(url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, errutils.Kind(errutils.ErrCatalogUnreachable, fmt.Errorf("read %s: %w", url, err))
	}
	return data, nil
}

// Head issues a HEAD request and returns the status code.
func (hc *HTTPClient) Head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return 0, errutils.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", hc.userAgent)

	resp, err := hc.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("url not accessible: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// CheckURL reports whether a HEAD on url answers 200. Unreachable URLs count
// as invalid.
func (hc *HTTPClient) CheckURL(ctx context.Context, url string) bool {
	status, err := hc.Head(ctx, url)
	if err != nil {
		logger.Debug("url probe failed", logger.Fields{"url": url, "error": err.Error()})
		return false
	}
	logger.Debug("url probed", logger.Fields{"url": url, "status": status})
	return status == http.StatusOK
}
