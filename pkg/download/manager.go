// Package download fetches driver archives over HTTP with a bounded retry
// policy and streams them to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/afero"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/fsutil"
	"github.com/glorpus-work/getdriver/pkg/model"
)

const (
	// DefaultUserAgent identifies download requests.
	DefaultUserAgent = "get-chrome-driver/1.0"

	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 100 * time.Millisecond
	DefaultRetryWaitMax = 5 * time.Second

	// chunkSize is the copy buffer size; archives are never held in memory.
	chunkSize = 1 << 20
)

// DefaultOptions returns three retries with exponential backoff from 100ms.
func DefaultOptions() Options {
	return Options{
		RetryMax:     DefaultRetryMax,
		RetryWaitMin: DefaultRetryWaitMin,
		RetryWaitMax: DefaultRetryWaitMax,
	}
}

// ManagerImpl is the retryablehttp backed Manager.
type ManagerImpl struct {
	client    *retryablehttp.Client
	fs        afero.Fs
	userAgent string
}

// NewManager creates a download manager writing to fs (the OS filesystem
// when nil).
func NewManager(opts Options, fs afero.Fs) *ManagerImpl {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = DefaultRetryWaitMin
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = opts.RetryWaitMin
	}

	client := retryablehttp.NewClient()
	// The body of a large archive may take as long as it needs; only
	// connecting and waiting for the response headers are bounded.
	client.HTTPClient.Timeout = 0
	if transport, ok := client.HTTPClient.Transport.(*http.Transport); ok && opts.Timeout > 0 {
		transport.DialContext = (&net.Dialer{Timeout: opts.Timeout, KeepAlive: 30 * time.Second}).DialContext
		transport.TLSHandshakeTimeout = opts.Timeout
		transport.ResponseHeaderTimeout = opts.Timeout
	}
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.Backoff = retryablehttp.DefaultBackoff
	client.CheckRetry = checkRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = retryLogger{}

	return &ManagerImpl{client: client, fs: fs, userAgent: opts.UserAgent}
}

// checkRetry retries transport errors and 429/500/502/503/504 answers to
// GET requests. Everything else is final.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp.Request != nil && resp.Request.Method != http.MethodGet {
		return false, nil
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// Download implements Manager.
func (m *ManagerImpl) Download(ctx context.Context, target model.DownloadTarget) (string, string, error) {
	if target.URL == nil {
		return "", "", fmt.Errorf("nil URL: %w", errutils.ErrDownloadFailed)
	}
	name := target.FileName()
	if name == "" {
		return "", "", fmt.Errorf("no file name in %s: %w", target.URL, errutils.ErrDownloadFailed)
	}

	resp, err := m.doRequest(ctx, target.URL.String())
	if err != nil {
		return "", "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := fsutil.EnsureDir(m.fs, target.Dir); err != nil {
		return "", "", err
	}

	finalPath := filepath.Join(target.Dir, name)
	if err := m.writeAtomically(resp.Body, target.Dir, finalPath); err != nil {
		return "", "", err
	}
	logger.Debug("download complete", logger.Fields{"url": target.URL.String(), "path": finalPath})
	return finalPath, name, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)

	logger.Debug("downloading", logger.Fields{"url": url})
	resp, err := m.client.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: %s: %w", errutils.ErrDownloadFailed, url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status %d", errutils.ErrDownloadFailed, url, resp.StatusCode)
	}
	return resp, nil
}

// writeAtomically streams body into a temporary file in dir and renames it
// to finalPath once the copy is complete.
func (m *ManagerImpl) writeAtomically(body io.Reader, dir, finalPath string) (err error) {
	tmp, err := afero.TempFile(m.fs, dir, "."+filepath.Base(finalPath)+"-*.part")
	if err != nil {
		return errutils.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = m.fs.Remove(tmpPath)
		}
	}()

	// Hide ReaderFrom/WriterTo so the copy really goes through the buffer.
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(struct{ io.Writer }{tmp}, struct{ io.Reader }{body}, buf); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: could not write %s: %w", errutils.ErrDownloadFailed, finalPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errutils.Wrap(err, "could not close file")
	}
	if err := m.fs.Rename(tmpPath, finalPath); err != nil {
		return errutils.Wrap(err, "could not finalize file")
	}
	if err := m.fs.Chmod(finalPath, fsutil.FileModeDefault); err != nil {
		return errutils.Wrap(err, "could not set permissions")
	}
	return nil
}

// retryLogger routes retryablehttp's leveled logging to the debug log.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...interface{}) { logger.Debug(msg, kvFields(kv)) }
func (retryLogger) Info(msg string, kv ...interface{})  { logger.Debug(msg, kvFields(kv)) }
func (retryLogger) Debug(msg string, kv ...interface{}) { logger.Debug(msg, kvFields(kv)) }
func (retryLogger) Warn(msg string, kv ...interface{})  { logger.Debug(msg, kvFields(kv)) }

func kvFields(kv []interface{}) logger.Fields {
	fields := make(logger.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}

var _ Manager = (*ManagerImpl)(nil)
