package catalog

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/model"
)

const (
	labelLatestStable = "Latest stable release"
	labelLatestBeta   = "Latest beta release"

	// DefaultReleaseSelector matches the release list items. The page layout
	// changed several times, so every list item is scanned.
	DefaultReleaseSelector = "li"

	pathParam = "path="
)

// LegacyHTMLSource scrapes the chromedriver.chromium.org release page.
type LegacyHTMLSource struct {
	client   http.Client
	url      string
	selector string
}

// NewLegacyHTMLSource creates a scraper over e.Chromium. An empty selector
// selects DefaultReleaseSelector.
func NewLegacyHTMLSource(client http.Client, e Endpoints, selector string) *LegacyHTMLSource {
	if selector == "" {
		selector = DefaultReleaseSelector
	}
	return &LegacyHTMLSource{client: client, url: e.Chromium, selector: selector}
}

// Latest finds the list item labelled "Latest <phase> release" and returns
// the version carried by the path= parameter of its link.
func (s *LegacyHTMLSource) Latest(ctx context.Context, phase model.Phase) (string, error) {
	label, err := phaseLabel(phase)
	if err != nil {
		return "", err
	}

	data, err := s.client.Fetch(ctx, s.url, "text/html")
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", errutils.Kind(errutils.ErrUnknownVersion, fmt.Errorf("parse %s: %w", s.url, err))
	}

	var (
		href    string
		found   bool
		hasLink bool
	)
	prefix := strings.ToLower(label)
	doc.Find(s.selector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := strings.ReplaceAll(li.Text(), "\u00a0", " ")
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), prefix) {
			return true
		}
		found = true
		href, hasLink = li.Find("a").First().Attr("href")
		return false
	})

	switch {
	case !found:
		return "", fmt.Errorf("%w: %q not found on %s", errutils.ErrUnknownVersion, label, s.url)
	case !hasLink:
		return "", fmt.Errorf("%w: %q has no link on %s", errutils.ErrUnknownVersion, label, s.url)
	}
	return versionFromHref(href), nil
}

func phaseLabel(phase model.Phase) (string, error) {
	switch phase {
	case model.PhaseStable:
		return labelLatestStable, nil
	case model.PhaseBeta:
		return labelLatestBeta, nil
	}
	return "", fmt.Errorf("%w: unsupported phase %s", errutils.ErrUnknownVersion, phase)
}

// versionFromHref returns what follows the last path= with the trailing
// slash removed, e.g. ".../index.html?path=114.0.5735.90/" -> "114.0.5735.90".
func versionFromHref(href string) string {
	if i := strings.LastIndex(href, pathParam); i >= 0 {
		href = href[i+len(pathParam):]
	}
	if href == "" {
		return ""
	}
	return href[:len(href)-1]
}

var _ Source = (*LegacyHTMLSource)(nil)
