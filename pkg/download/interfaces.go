//go:generate mockgen -destination=mocks/download.go . Manager

package download

import (
	"context"
	"time"

	"github.com/glorpus-work/getdriver/pkg/model"
)

// Manager downloads driver archives.
type Manager interface {
	// Download fetches target into target.Dir and returns the path and name
	// of the written file. A failed download leaves nothing at that path.
	Download(ctx context.Context, target model.DownloadTarget) (filePath, fileName string, err error)
}

// Options control the retry policy and request identity of a Manager.
type Options struct {
	Timeout      time.Duration // connect and response header limit per attempt; zero means none
	UserAgent    string        // empty selects DefaultUserAgent
	RetryMax     int           // retries after the first attempt
	RetryWaitMin time.Duration // first backoff step
	RetryWaitMax time.Duration // backoff ceiling
}
