// Package catalog reads the upstream driver catalogs.
//
// Three upstream formats exist: the Chrome for Testing JSON API, the legacy
// chromedriver.chromium.org release page and the legacy storage bucket
// listing. Each is a Source implementation; the Client combines them without
// knowing which format is authoritative.
package catalog

import (
	"context"
	"errors"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/pkg/version"
)

// Upstream endpoints.
const (
	DefaultLastKnownGoodURL          = "https://googlechromelabs.github.io/chrome-for-testing/last-known-good-versions.json"
	DefaultKnownGoodWithDownloadsURL = "https://googlechromelabs.github.io/chrome-for-testing/known-good-versions-with-downloads.json"
	DefaultStorageURL                = "https://chromedriver.storage.googleapis.com"
	DefaultChromiumURL               = "https://chromedriver.chromium.org"
)

// Endpoints groups the catalog URLs so tests and config can redirect them.
type Endpoints struct {
	LastKnownGood          string
	KnownGoodWithDownloads string
	Storage                string
	Chromium               string
}

// DefaultEndpoints returns the public upstream endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		LastKnownGood:          DefaultLastKnownGoodURL,
		KnownGoodWithDownloads: DefaultKnownGoodWithDownloadsURL,
		Storage:                DefaultStorageURL,
		Chromium:               DefaultChromiumURL,
	}
}

// Source resolves the latest version of a release channel.
type Source interface {
	Latest(ctx context.Context, phase model.Phase) (string, error)
}

// ListSource lists every version a catalog knows about.
type ListSource interface {
	Versions(ctx context.Context) ([]string, error)
}

// EntrySource lists catalog versions together with their downloads.
type EntrySource interface {
	Entries(ctx context.Context) ([]model.CatalogEntry, error)
}

// Client answers version questions from a set of sources.
type Client struct {
	latest Source
	bucket ListSource
	known  ListSource
}

// NewClient returns a client that resolves channels with latest and lists
// versions from the storage bucket and the known-versions catalog.
func NewClient(latest Source, bucket, known ListSource) *Client {
	return &Client{latest: latest, bucket: bucket, known: known}
}

// Latest returns the latest version of phase.
func (c *Client) Latest(ctx context.Context, phase model.Phase) (string, error) {
	v, err := c.latest.Latest(ctx, phase)
	if err != nil {
		return "", err
	}
	if err := version.Validate(v); err != nil {
		return "", err
	}
	logger.Debug("resolved channel", logger.Fields{"phase": phase.String(), "version": v})
	return v, nil
}

// AllVersions merges the bucket listing with the known-versions catalog,
// drops duplicates and orders the result by first segment. An unreachable
// known-versions catalog contributes nothing; an unreachable bucket is an
// error.
func (c *Client) AllVersions(ctx context.Context) ([]string, error) {
	var merged []string

	if c.bucket != nil {
		fromBucket, err := c.bucket.Versions(ctx)
		if err != nil {
			return nil, errutils.Wrap(err, "failed to list storage versions")
		}
		merged = append(merged, version.Dedupe(fromBucket)...)
	}

	if c.known != nil {
		fromKnown, err := c.known.Versions(ctx)
		switch {
		case errors.Is(err, errutils.ErrCatalogUnreachable):
			logger.Warn("known versions catalog unavailable", logger.Fields{"error": err.Error()})
		case err != nil:
			return nil, errutils.Wrap(err, "failed to list known versions")
		default:
			merged = append(merged, version.Dedupe(fromKnown)...)
		}
	}

	all := version.Dedupe(merged)
	version.SortByMajor(all)
	return all, nil
}
