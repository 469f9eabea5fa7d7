package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/version"
)

// maxBucketPages bounds how many truncated listing pages are followed.
const maxBucketPages = 20

// bucketListing is a storage bucket ListBucketResult. Tags carry no
// namespace so they match regardless of the document's xmlns.
type bucketListing struct {
	IsTruncated bool   `xml:"IsTruncated"`
	NextMarker  string `xml:"NextMarker"`
	Contents    []struct {
		Key string `xml:"Key"`
	} `xml:"Contents"`
}

// BucketSource lists versions from the legacy storage bucket. Every object
// key starts with the version it belongs to, e.g. "2.46/chromedriver_win32.zip".
type BucketSource struct {
	client http.Client
	url    string
}

// NewBucketSource creates a source over e.Storage.
func NewBucketSource(client http.Client, e Endpoints) *BucketSource {
	return &BucketSource{client: client, url: e.Storage}
}

// Versions returns the distinct key prefixes in listing order.
func (s *BucketSource) Versions(ctx context.Context) ([]string, error) {
	var (
		versions []string
		marker   string
	)
	for page := 0; page < maxBucketPages; page++ {
		listing, err := s.fetchPage(ctx, marker)
		if err != nil {
			return nil, err
		}
		for _, c := range listing.Contents {
			if v := leadingVersion(c.Key); v != "" {
				versions = append(versions, v)
			}
		}
		if !listing.IsTruncated || listing.NextMarker == "" || listing.NextMarker == marker {
			break
		}
		marker = listing.NextMarker
	}
	return version.Dedupe(versions), nil
}

func (s *BucketSource) fetchPage(ctx context.Context, marker string) (*bucketListing, error) {
	pageURL := s.url
	if marker != "" {
		u, err := url.Parse(s.url)
		if err != nil {
			return nil, errutils.Wrap(err, "invalid storage url")
		}
		q := u.Query()
		q.Set("marker", marker)
		u.RawQuery = q.Encode()
		pageURL = u.String()
	}

	data, err := s.client.Fetch(ctx, pageURL, "application/xml")
	if err != nil {
		return nil, err
	}

	var listing bucketListing
	if err := xml.Unmarshal(data, &listing); err != nil {
		return nil, errutils.Kind(errutils.ErrUnknownVersion, fmt.Errorf("decode %s: %w", pageURL, err))
	}
	return &listing, nil
}

// leadingVersion returns the leading run of digits and dots of key, or ""
// when that run is not a valid version.
func leadingVersion(key string) string {
	end := 0
	for end < len(key) {
		c := key[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	if !version.IsValid(key[:end]) {
		return ""
	}
	return key[:end]
}

var _ ListSource = (*BucketSource)(nil)
