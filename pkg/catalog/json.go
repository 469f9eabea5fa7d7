package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/pkg/version"
)

const acceptJSON = "application/json"

type lastKnownGood struct {
	Channels map[string]struct {
		Version string `json:"version"`
	} `json:"channels"`
}

type knownGoodWithDownloads struct {
	Versions []struct {
		Version   string `json:"version"`
		Downloads struct {
			Chromedriver []struct {
				Platform string `json:"platform"`
				URL      string `json:"url"`
			} `json:"chromedriver"`
		} `json:"downloads"`
	} `json:"versions"`
}

// JSONSource reads the Chrome for Testing JSON API.
type JSONSource struct {
	client           http.Client
	lastKnownGoodURL string
	withDownloadsURL string
}

// NewJSONSource creates a source over the two JSON endpoints of e.
func NewJSONSource(client http.Client, e Endpoints) *JSONSource {
	return &JSONSource{
		client:           client,
		lastKnownGoodURL: e.LastKnownGood,
		withDownloadsURL: e.KnownGoodWithDownloads,
	}
}

// Latest reads channels.<Phase>.version from the last-known-good document.
func (s *JSONSource) Latest(ctx context.Context, phase model.Phase) (string, error) {
	data, err := s.client.Fetch(ctx, s.lastKnownGoodURL, acceptJSON)
	if err != nil {
		return "", err
	}

	var doc lastKnownGood
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", errutils.Kind(errutils.ErrUnknownVersion, fmt.Errorf("decode %s: %w", s.lastKnownGoodURL, err))
	}

	channel, ok := doc.Channels[phase.Channel()]
	if !ok || channel.Version == "" {
		return "", fmt.Errorf("%w: no %s channel in %s", errutils.ErrUnknownVersion, phase, s.lastKnownGoodURL)
	}
	return channel.Version, nil
}

// Entries returns every version of the known-good document with its
// driver downloads.
func (s *JSONSource) Entries(ctx context.Context) ([]model.CatalogEntry, error) {
	data, err := s.client.Fetch(ctx, s.withDownloadsURL, acceptJSON)
	if err != nil {
		return nil, err
	}

	var doc knownGoodWithDownloads
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errutils.Kind(errutils.ErrUnknownVersion, fmt.Errorf("decode %s: %w", s.withDownloadsURL, err))
	}

	entries := make([]model.CatalogEntry, 0, len(doc.Versions))
	for _, v := range doc.Versions {
		entry := model.CatalogEntry{Version: v.Version, Downloads: map[string]string{}}
		for _, d := range v.Downloads.Chromedriver {
			entry.Downloads[d.Platform] = d.URL
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Versions lists the versions of the known-good document in catalog order.
func (s *JSONSource) Versions(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		versions = append(versions, e.Version)
	}
	return version.Dedupe(versions), nil
}

var (
	_ Source      = (*JSONSource)(nil)
	_ ListSource  = (*JSONSource)(nil)
	_ EntrySource = (*JSONSource)(nil)
)
