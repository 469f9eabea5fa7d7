package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"https://chromedriver.storage.googleapis.com/index.html?path=114.0.5735.90/", "114.0.5735.90"},
		{"index.html?path=2.46/", "2.46"},
		{"?path=a/?path=83.0.4103.39/", "83.0.4103.39"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, versionFromHref(tt.href), tt.href)
	}
}

func TestLeadingVersion(t *testing.T) {
	assert.Equal(t, "2.46", leadingVersion("2.46/chromedriver_win32.zip"))
	assert.Equal(t, "114.0.5735.90", leadingVersion("114.0.5735.90/chromedriver_mac64.zip"))
	assert.Equal(t, "", leadingVersion("LATEST_RELEASE"))
	assert.Equal(t, "", leadingVersion("index.html"))
	assert.Equal(t, "", leadingVersion(".well-known/x"))
	assert.Equal(t, "", leadingVersion("1..2/x"))
	assert.Equal(t, "", leadingVersion("3./chromedriver_linux64.zip"))
}
