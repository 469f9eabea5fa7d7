// Package testutil provides a fake driver upstream for tests: the Chrome
// for Testing JSON API, the legacy storage bucket and the legacy release
// page, all served by one httptest server.
package testutil

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/glorpus-work/getdriver/pkg/catalog"
)

// Paths served by Upstream.
const (
	PathLastKnownGood = "/cft/last-known-good-versions.json"
	PathKnownGood     = "/cft/known-good-versions-with-downloads.json"
	PathStorage       = "/storage"
	PathChromium      = "/chromium"
)

// Request records a request received by the fake upstream.
type Request struct {
	Method string
	Path   string
}

type cftDownload struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type cftVersion struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Downloads struct {
		Chromedriver []cftDownload `json:"chromedriver,omitempty"`
	} `json:"downloads"`
}

// Upstream is an in-process fake of every catalog and download endpoint.
type Upstream struct {
	Server *httptest.Server

	mu          sync.Mutex
	stable      string
	beta        string
	versions    []*cftVersion
	bucketKeys  []string
	files       map[string][]byte
	failures    map[string][]int
	down        map[string]bool
	releasePage string
	requests    []Request
}

// NewUpstream starts a fake upstream that is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{
		files:    map[string][]byte{},
		failures: map[string][]int{},
		down:     map[string]bool{},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// URL returns the absolute URL of path.
func (u *Upstream) URL(path string) string {
	return u.Server.URL + path
}

// Endpoints points a catalog configuration at the fake.
func (u *Upstream) Endpoints() catalog.Endpoints {
	return catalog.Endpoints{
		LastKnownGood:          u.URL(PathLastKnownGood),
		KnownGoodWithDownloads: u.URL(PathKnownGood),
		Storage:                u.URL(PathStorage),
		Chromium:               u.URL(PathChromium),
	}
}

// SetChannels sets the versions of the Stable and Beta channels. An empty
// value leaves the channel out of the document.
func (u *Upstream) SetChannels(stable, beta string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stable, u.beta = stable, beta
}

// AddVersion lists version in the known-good catalog without downloads.
func (u *Upstream) AddVersion(version string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entry(version)
}

// AddListedURL publishes url for label without serving it.
func (u *Upstream) AddListedURL(version, label, url string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	e := u.entry(version)
	e.Downloads.Chromedriver = append(e.Downloads.Chromedriver, cftDownload{Platform: label, URL: url})
}

// AddCfTDriver publishes and serves a Chrome for Testing archive and returns
// its URL.
func (u *Upstream) AddCfTDriver(version, label string, archive []byte) string {
	path := fmt.Sprintf("/cft/%s/%s/chromedriver-%s.zip", version, label, label)
	url := u.URL(path)
	u.AddListedURL(version, label, url)
	u.ServeFile(path, archive)
	return url
}

// AddLegacyDriver serves a legacy storage archive, lists its key in the
// bucket and returns its URL.
func (u *Upstream) AddLegacyDriver(version, label string, archive []byte) string {
	key := fmt.Sprintf("%s/chromedriver_%s.zip", version, label)
	u.AddBucketKey(key)
	u.ServeFile(PathStorage+"/"+key, archive)
	return u.URL(PathStorage + "/" + key)
}

// AddBucketKey lists key in the storage bucket.
func (u *Upstream) AddBucketKey(key string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bucketKeys = append(u.bucketKeys, key)
}

// ServeFile serves data at path for GET and HEAD.
func (u *Upstream) ServeFile(path string, data []byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[path] = data
}

// SetReleasePage sets the HTML returned by the legacy release page.
func (u *Upstream) SetReleasePage(html string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.releasePage = html
}

// FailNext makes the next GETs of path answer with statuses, in order.
func (u *Upstream) FailNext(path string, statuses ...int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[path] = append(u.failures[path], statuses...)
}

// SetDown makes every request to path answer 503.
func (u *Upstream) SetDown(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.down[path] = true
}

// Requests returns the requests received so far.
func (u *Upstream) Requests() []Request {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Request(nil), u.requests...)
}

// Count returns how many requests with method hit path.
func (u *Upstream) Count(method, path string) int {
	n := 0
	for _, r := range u.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// CountPrefix returns how many requests hit a path starting with prefix.
func (u *Upstream) CountPrefix(prefix string) int {
	n := 0
	for _, r := range u.Requests() {
		if strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

func (u *Upstream) entry(version string) *cftVersion {
	for _, v := range u.versions {
		if v.Version == version {
			return v
		}
	}
	v := &cftVersion{Version: version, Revision: "1"}
	u.versions = append(u.versions, v)
	return v
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.requests = append(u.requests, Request{Method: r.Method, Path: r.URL.Path})
	if u.down[r.URL.Path] {
		u.mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if r.Method == http.MethodGet {
		if pending := u.failures[r.URL.Path]; len(pending) > 0 {
			u.failures[r.URL.Path] = pending[1:]
			u.mu.Unlock()
			w.WriteHeader(pending[0])
			return
		}
	}
	u.mu.Unlock()

	switch r.URL.Path {
	case PathLastKnownGood:
		u.writeJSON(w, u.lastKnownGood())
	case PathKnownGood:
		u.writeJSON(w, u.knownGood())
	case PathStorage, PathStorage + "/":
		w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
		_, _ = w.Write(u.bucketListing())
	case PathChromium:
		u.mu.Lock()
		page := u.releasePage
		u.mu.Unlock()
		if page == "" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	default:
		u.serveFile(w, r)
	}
}

func (u *Upstream) serveFile(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	data, ok := u.files[r.URL.Path]
	u.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
}

func (u *Upstream) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (u *Upstream) lastKnownGood() map[string]interface{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	channels := map[string]interface{}{}
	if u.stable != "" {
		channels["Stable"] = map[string]string{"channel": "Stable", "version": u.stable, "revision": "1"}
	}
	if u.beta != "" {
		channels["Beta"] = map[string]string{"channel": "Beta", "version": u.beta, "revision": "1"}
	}
	return map[string]interface{}{"timestamp": "2024-01-01T00:00:00.000Z", "channels": channels}
}

func (u *Upstream) knownGood() map[string]interface{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	versions := make([]cftVersion, 0, len(u.versions))
	for _, v := range u.versions {
		versions = append(versions, *v)
	}
	return map[string]interface{}{"timestamp": "2024-01-01T00:00:00.000Z", "versions": versions}
}

func (u *Upstream) bucketListing() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	var buf bytes.Buffer
	buf.WriteString(`<?xml version='1.0' encoding='UTF-8'?>`)
	buf.WriteString(`<ListBucketResult xmlns="http://doc.s3.amazonaws.com/2006-03-01">`)
	buf.WriteString(`<Name>chromedriver</Name><Prefix></Prefix><Marker></Marker><IsTruncated>false</IsTruncated>`)
	for _, key := range u.bucketKeys {
		buf.WriteString(`<Contents><Key>`)
		_ = xml.EscapeText(&buf, []byte(key))
		buf.WriteString(`</Key><Generation>1</Generation><Size>1</Size></Contents>`)
	}
	buf.WriteString(`</ListBucketResult>`)
	return buf.Bytes()
}

// ReleasePage renders a release page in the layout of
// chromedriver.chromium.org with the given stable and beta versions.
func ReleasePage(stable, beta string) string {
	return `<html><body><div class="sites-layout-tile"><ul>
<li>All versions available in <a href="https://chromedriver.storage.googleapis.com/index.html">Downloads</a></li>
<li>Latest stable release:&nbsp;<a href="https://chromedriver.storage.googleapis.com/index.html?path=` + stable + `/">ChromeDriver ` + stable + `</a></li>
<li>Latest beta release:&nbsp;<a href="https://chromedriver.storage.googleapis.com/index.html?path=` + beta + `/">ChromeDriver ` + beta + `</a></li>
</ul></div></body></html>`
}
