package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("retry_max", "7"))
	require.NoError(t, cfg.SetValue("http_timeout", "1m"))
	require.NoError(t, cfg.SetValue("storage_url", "https://mirror.test"))
	require.NoError(t, cfg.SetValue("platform", "win32"))

	assert.Equal(t, 7, cfg.Settings.RetryMax)
	assert.Equal(t, time.Minute, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "https://mirror.test", cfg.Endpoints.Storage)

	got, err := cfg.GetValue("http_timeout")
	require.NoError(t, err)
	assert.Equal(t, "1m0s", got)

	got, err = cfg.GetValue("platform")
	require.NoError(t, err)
	assert.Equal(t, "win32", got)

	assert.Error(t, cfg.SetValue("retry_max", "many"))
	assert.Error(t, cfg.SetValue("http_timeout", "soon"))
	assert.Error(t, cfg.SetValue("nope", "x"))
	_, err = cfg.GetValue("nope")
	assert.Error(t, err)
}

func TestToMapAndKeys(t *testing.T) {
	cfg := DefaultConfig()
	m := cfg.ToMap()

	assert.Equal(t, "warn", m["log_level"])
	assert.Equal(t, "3", m["retry_max"])
	assert.Equal(t, "100ms", m["retry_wait_min"])
	assert.Equal(t, cfg.Endpoints.Chromium, m["chromium_url"])

	keys := cfg.Keys()
	assert.Len(t, keys, len(m))
	assert.IsIncreasing(t, keys)
}
