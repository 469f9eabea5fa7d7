package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/getdriver/pkg/catalog"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	httpclient "github.com/glorpus-work/getdriver/pkg/http"
	"github.com/glorpus-work/getdriver/pkg/model"
	"github.com/glorpus-work/getdriver/test/testutil"
)

func newClient() *httpclient.HTTPClient {
	return httpclient.NewHTTPClient(5*time.Second, "")
}

func TestJSONSource_Latest(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetChannels("115.0.5790.102", "116.0.5845.96")
	src := catalog.NewJSONSource(newClient(), up.Endpoints())

	stable, err := src.Latest(context.Background(), model.PhaseStable)
	require.NoError(t, err)
	assert.Equal(t, "115.0.5790.102", stable)

	beta, err := src.Latest(context.Background(), model.PhaseBeta)
	require.NoError(t, err)
	assert.Equal(t, "116.0.5845.96", beta)
}

func TestJSONSource_LatestMissingChannel(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetChannels("115.0.5790.102", "")
	src := catalog.NewJSONSource(newClient(), up.Endpoints())

	_, err := src.Latest(context.Background(), model.PhaseBeta)
	assert.ErrorIs(t, err, errutils.ErrUnknownVersion)
}

func TestJSONSource_LatestUnreachable(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetDown(testutil.PathLastKnownGood)
	src := catalog.NewJSONSource(newClient(), up.Endpoints())

	_, err := src.Latest(context.Background(), model.PhaseStable)
	assert.ErrorIs(t, err, errutils.ErrCatalogUnreachable)
	assert.False(t, errors.Is(err, errutils.ErrUnknownVersion))
}

func TestJSONSource_Entries(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.AddVersion("113.0.5672.0")
	up.AddListedURL("115.0.5763.0", "linux64", "https://example.test/linux64.zip")
	up.AddListedURL("115.0.5763.0", "win32", "https://example.test/win32.zip")

	entries, err := catalog.NewJSONSource(newClient(), up.Endpoints()).Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "113.0.5672.0", entries[0].Version)
	assert.Empty(t, entries[0].Downloads)

	got, ok := entries[1].URLFor("linux64")
	assert.True(t, ok)
	assert.Equal(t, "https://example.test/linux64.zip", got)
	_, ok = entries[1].URLFor("mac-arm64")
	assert.False(t, ok)
}

func TestLegacyHTMLSource_Latest(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetReleasePage(testutil.ReleasePage("114.0.5735.90", "115.0.5790.24"))
	src := catalog.NewLegacyHTMLSource(newClient(), up.Endpoints(), "")

	stable, err := src.Latest(context.Background(), model.PhaseStable)
	require.NoError(t, err)
	assert.Equal(t, "114.0.5735.90", stable)

	beta, err := src.Latest(context.Background(), model.PhaseBeta)
	require.NoError(t, err)
	assert.Equal(t, "115.0.5790.24", beta)
}

func TestLegacyHTMLSource_MissingLabel(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetReleasePage(`<html><body><ul><li>Nothing to see</li></ul></body></html>`)
	src := catalog.NewLegacyHTMLSource(newClient(), up.Endpoints(), "")

	_, err := src.Latest(context.Background(), model.PhaseStable)
	assert.ErrorIs(t, err, errutils.ErrUnknownVersion)
}

func TestBucketSource_Versions(t *testing.T) {
	up := testutil.NewUpstream(t)
	for _, key := range []string{
		"2.0/chromedriver_linux32.zip",
		"2.0/chromedriver_linux64.zip",
		"LATEST_RELEASE",
		"114.0.5735.90/chromedriver_linux64.zip",
		"2.46/notes.txt",
		".well-known/x",
		"1..2/x",
	} {
		up.AddBucketKey(key)
	}

	got, err := catalog.NewBucketSource(newClient(), up.Endpoints()).Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2.0", "114.0.5735.90", "2.46"}, got)
}

func TestBucketSource_FollowsMarker(t *testing.T) {
	pages := map[string]string{
		"": `<?xml version="1.0"?><ListBucketResult xmlns="http://doc.s3.amazonaws.com/2006-03-01">
<IsTruncated>true</IsTruncated><NextMarker>2.10/x.zip</NextMarker>
<Contents><Key>2.9/x.zip</Key></Contents><Contents><Key>2.10/x.zip</Key></Contents></ListBucketResult>`,
		"2.10/x.zip": `<?xml version="1.0"?><ListBucketResult xmlns="http://doc.s3.amazonaws.com/2006-03-01">
<IsTruncated>false</IsTruncated><Contents><Key>2.11/x.zip</Key></Contents></ListBucketResult>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pages[r.URL.Query().Get("marker")]))
	}))
	defer srv.Close()

	got, err := catalog.NewBucketSource(newClient(), catalog.Endpoints{Storage: srv.URL}).Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2.9", "2.10", "2.11"}, got)
}

func TestClient_AllVersions(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.AddBucketKey("2.46/chromedriver_linux64.zip")
	up.AddBucketKey("114.0.5735.90/chromedriver_linux64.zip")
	up.AddBucketKey("2.46/chromedriver_win32.zip")
	up.AddVersion("113.0.5672.0")
	up.AddVersion("114.0.5735.90")

	hc := newClient()
	json := catalog.NewJSONSource(hc, up.Endpoints())
	c := catalog.NewClient(json, catalog.NewBucketSource(hc, up.Endpoints()), json)

	got, err := c.AllVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2.46", "113.0.5672.0", "114.0.5735.90"}, got)
}

func TestClient_AllVersionsKnownCatalogDown(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.AddBucketKey("2.46/chromedriver_linux64.zip")
	up.SetDown(testutil.PathKnownGood)

	hc := newClient()
	json := catalog.NewJSONSource(hc, up.Endpoints())
	c := catalog.NewClient(json, catalog.NewBucketSource(hc, up.Endpoints()), json)

	got, err := c.AllVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2.46"}, got)
}

func TestClient_AllVersionsBucketDown(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetDown(testutil.PathStorage)

	hc := newClient()
	json := catalog.NewJSONSource(hc, up.Endpoints())
	c := catalog.NewClient(json, catalog.NewBucketSource(hc, up.Endpoints()), json)

	_, err := c.AllVersions(context.Background())
	assert.ErrorIs(t, err, errutils.ErrCatalogUnreachable)
}

func TestClient_LatestRejectsMalformed(t *testing.T) {
	up := testutil.NewUpstream(t)
	up.SetChannels("not-a-version", "116.0.5845.96")
	c := catalog.NewClient(catalog.NewJSONSource(newClient(), up.Endpoints()), nil, nil)

	_, err := c.Latest(context.Background(), model.PhaseStable)
	assert.ErrorIs(t, err, errutils.ErrUnknownVersion)

	beta, err := c.Latest(context.Background(), model.PhaseBeta)
	require.NoError(t, err)
	assert.Equal(t, "116.0.5845.96", beta)
}
