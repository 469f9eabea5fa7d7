package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase(t *testing.T) {
	assert.Equal(t, "stable", PhaseStable.String())
	assert.Equal(t, "Beta", PhaseBeta.Channel())

	p, err := ParsePhase(" BETA ")
	require.NoError(t, err)
	assert.Equal(t, PhaseBeta, p)

	_, err = ParsePhase("canary")
	assert.Error(t, err)
}

func TestCatalogEntry_URLFor(t *testing.T) {
	e := CatalogEntry{
		Version: "116.0.5845.96",
		Downloads: map[string]string{
			"linux64": "https://example.test/116.0.5845.96/linux64/chromedriver-linux64.zip",
			"win32":   "",
		},
	}

	u, ok := e.URLFor("linux64")
	assert.True(t, ok)
	assert.Contains(t, u, "chromedriver-linux64.zip")

	_, ok = e.URLFor("win32")
	assert.False(t, ok, "empty url is treated as unpublished")
	_, ok = e.URLFor("mac-arm64")
	assert.False(t, ok)
	_, ok = e.URLFor("")
	assert.False(t, ok)
}

func TestDownloadTarget_FileName(t *testing.T) {
	target, err := NewDownloadTarget("https://example.test/116.0.5845.96/chromedriver_linux64.zip?x=1", "out")
	require.NoError(t, err)
	assert.Equal(t, "chromedriver_linux64.zip", target.FileName())

	target.Filename = "driver.zip"
	assert.Equal(t, "driver.zip", target.FileName())

	root, err := NewDownloadTarget("https://example.test/", "out")
	require.NoError(t, err)
	assert.Equal(t, "", root.FileName())

	_, err = NewDownloadTarget("://bad", "out")
	assert.Error(t, err)
}
