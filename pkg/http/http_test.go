package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/getdriver/pkg/errutils"
)

func TestHTTPClient_Fetch(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		switch r.URL.Path {
		case "/ok.json":
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	hc := NewHTTPClient(5*time.Second, "")

	body, err := hc.Fetch(context.Background(), srv.URL+"/ok.json", "application/json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "application/json", gotAccept)

	_, err = hc.Fetch(context.Background(), srv.URL+"/down.json", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errutils.ErrCatalogUnreachable)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPClient_FetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(time.Second, "test-agent").Fetch(context.Background(), url, "")
	assert.ErrorIs(t, err, errutils.ErrCatalogUnreachable)
}

func TestHTTPClient_CheckURL(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.URL.Path == "/present.zip" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	hc := NewHTTPClient(5*time.Second, "agent")
	assert.True(t, hc.CheckURL(context.Background(), srv.URL+"/present.zip"))
	assert.False(t, hc.CheckURL(context.Background(), srv.URL+"/missing.zip"))
	assert.False(t, hc.CheckURL(context.Background(), "http://127.0.0.1:0/unreachable.zip"))
	assert.Equal(t, []string{http.MethodHead, http.MethodHead}, methods)

	status, err := hc.Head(context.Background(), srv.URL+"/missing.zip")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
