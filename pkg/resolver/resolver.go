// Package resolver turns a driver version and platform into a validated
// download URL.
//
// Candidates are tried in a fixed order and the first one answering a HEAD
// with 200 wins:
//
//  1. the 64-bit download published by the JSON catalog for the version
//  2. the 32-bit download published there (not on macOS)
//  3. the legacy storage archive for the 64-bit platform
//  4. the legacy storage archive for the 32-bit platform
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/catalog"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/pkg/platform"
	"github.com/glorpus-work/getdriver/pkg/version"
)

// Tier names a step of the fallback order.
type Tier int

const (
	TierCatalog64 Tier = iota
	TierCatalog32
	TierLegacy64
	TierLegacy32
)

func (t Tier) String() string {
	switch t {
	case TierCatalog64:
		return "catalog-64"
	case TierCatalog32:
		return "catalog-32"
	case TierLegacy64:
		return "legacy-64"
	case TierLegacy32:
		return "legacy-32"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Candidate is a URL to validate together with the tier that produced it.
type Candidate struct {
	Tier Tier
	URL  string
}

// Resolver finds download URLs. It holds no mutable state.
type Resolver struct {
	entries    catalog.EntrySource
	client     http.Client
	storageURL string
	host       platform.Host
}

// New creates a resolver reading published downloads from entries, probing
// candidates through client and building legacy URLs below storageURL.
func New(entries catalog.EntrySource, client http.Client, storageURL string, host platform.Host) *Resolver {
	return &Resolver{
		entries:    entries,
		client:     client,
		storageURL: strings.TrimRight(storageURL, "/"),
		host:       host,
	}
}

// URLFor returns the first reachable download URL of v for p.
func (r *Resolver) URLFor(ctx context.Context, v string, p platform.Platform) (string, error) {
	if err := version.Validate(v); err != nil {
		return "", err
	}

	candidates, err := r.Candidates(ctx, v, p)
	if err != nil {
		return "", err
	}

	for _, c := range candidates {
		if r.client.CheckURL(ctx, c.URL) {
			logger.Debug("download url resolved", logger.Fields{"version": v, "platform": p.String(), "tier": c.Tier.String(), "url": c.URL})
			return c.URL, nil
		}
		logger.Debug("candidate rejected", logger.Fields{"tier": c.Tier.String(), "url": c.URL})
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	return "", errutils.ErrVersionURLWithVersion(v)
}

// Candidates lists, in fallback order, the URLs URLFor would probe for v
// and p. It fetches the JSON catalog but makes no HEAD request.
func (r *Resolver) Candidates(ctx context.Context, v string, p platform.Platform) ([]Candidate, error) {
	entries, err := r.entries.Entries(ctx)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read published downloads")
	}

	var (
		out   []Candidate
		entry model.CatalogEntry
		found bool
	)
	for _, e := range entries {
		if e.Version == v {
			entry, found = e, true
			break
		}
	}

	use64 := r.host.Is64Bit() && !p.Is32Bit()

	if found {
		if use64 {
			if u, ok := entry.URLFor(p.Label64(r.host)); ok {
				out = append(out, Candidate{Tier: TierCatalog64, URL: u})
			}
		}
		if u, ok := entry.URLFor(p.Label32()); ok {
			out = append(out, Candidate{Tier: TierCatalog32, URL: u})
		}
	}

	if use64 {
		if label := p.LegacyLabel64(); label != "" {
			out = append(out, Candidate{Tier: TierLegacy64, URL: r.legacyURL(v, label)})
		}
	}
	if label := p.LegacyLabel32(); label != "" {
		out = append(out, Candidate{Tier: TierLegacy32, URL: r.legacyURL(v, label)})
	}
	return out, nil
}

func (r *Resolver) legacyURL(v, label string) string {
	return fmt.Sprintf("%s/%s/%s_%s.zip", r.storageURL, v, platform.DriverName, label)
}
