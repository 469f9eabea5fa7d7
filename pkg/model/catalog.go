package model

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Phase selects a release channel of the catalogs.
type Phase int

const (
	PhaseStable Phase = iota
	PhaseBeta
)

// String returns the lower-case channel name.
func (p Phase) String() string {
	switch p {
	case PhaseStable:
		return "stable"
	case PhaseBeta:
		return "beta"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Channel returns the channel key used by the JSON catalog.
func (p Phase) Channel() string {
	switch p {
	case PhaseStable:
		return "Stable"
	case PhaseBeta:
		return "Beta"
	}
	return ""
}

// ParsePhase converts "stable" or "beta" (any case) to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable":
		return PhaseStable, nil
	case "beta":
		return PhaseBeta, nil
	}
	return PhaseStable, fmt.Errorf("unknown phase %q", s)
}

// CatalogEntry is one version of the JSON catalog with its published driver
// downloads keyed by platform label.
type CatalogEntry struct {
	Version   string
	Downloads map[string]string
}

// URLFor returns the download URL published for label.
func (e CatalogEntry) URLFor(label string) (string, bool) {
	if label == "" {
		return "", false
	}
	u, ok := e.Downloads[label]
	return u, ok && u != ""
}

// DownloadTarget is the unit of work of the downloader.
type DownloadTarget struct {
	URL      *url.URL
	Dir      string
	Filename string
}

// NewDownloadTarget parses rawURL into a target writing into dir.
func NewDownloadTarget(rawURL, dir string) (DownloadTarget, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DownloadTarget{}, fmt.Errorf("parse download url: %w", err)
	}
	return DownloadTarget{URL: u, Dir: dir}, nil
}

// FileName returns the explicit file name or the last segment of the URL
// path.
func (t DownloadTarget) FileName() string {
	if t.Filename != "" {
		return t.Filename
	}
	if t.URL == nil {
		return ""
	}
	name := path.Base(t.URL.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}
