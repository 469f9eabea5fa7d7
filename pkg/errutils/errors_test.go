package errutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{name: "nil error", err: nil, msg: "context", expected: ""},
		{name: "standard error", err: errors.New("boom"), msg: "fetch catalog", expected: "fetch catalog: boom"},
		{name: "empty message", err: errors.New("boom"), msg: "", expected: ": boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.EqualError(t, got, tt.expected)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "x %d", 1))

	err := Wrapf(ErrDownloadFailed, "get %s", "http://example.test/a.zip")
	assert.EqualError(t, err, "get http://example.test/a.zip: download failed")
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestKind(t *testing.T) {
	cause := errors.New("disk full")
	err := Kind(ErrDownload, cause)
	assert.ErrorIs(t, err, ErrDownload)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrVersion, Kind(ErrVersion, nil))
}

func TestDetailHelpers(t *testing.T) {
	err := ErrUnknownPlatformWithDetails("solaris", []string{"win64", "linux64"})
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Contains(t, err.Error(), `"solaris"`)
	assert.Contains(t, err.Error(), "win64, linux64")

	assert.ErrorIs(t, ErrUnknownVersionWithDetails("1.a", "segment is not numeric"), ErrUnknownVersion)
	assert.ErrorIs(t, ErrVersionURLWithVersion("1.2.3"), ErrVersionURL)

	statusErr := ErrCatalogStatus("https://example.test/versions.json", 503)
	assert.ErrorIs(t, statusErr, ErrCatalogUnreachable)
	assert.NotErrorIs(t, statusErr, ErrUnknownVersion)
	assert.Contains(t, statusErr.Error(), "503")
}
