// Package config provides the optional YAML configuration of getdriver. It
// covers network behavior, logging, the default platform, the catalog mode
// and the upstream endpoints. Without a config file every value has a
// built-in default and the tool keeps no persisted state.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/getdriver/pkg/catalog"
	"github.com/glorpus-work/getdriver/pkg/download"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/fsutil"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

// Config represents the application configuration.
type Config struct {
	Settings  Settings  `yaml:"settings"`
	Endpoints Endpoints `yaml:"endpoints"`
}

// Settings represents general application settings.
type Settings struct {
	// Network settings
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	UserAgent    string        `yaml:"user_agent"`
	RetryMax     int           `yaml:"retry_max"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`

	// Resolution settings
	Platform string `yaml:"platform,omitempty"` // empty means detect
	Catalog  string `yaml:"catalog"`            // json, legacy-html

	// Output settings
	LogLevel  string `yaml:"log_level"`  // error, warn, info, debug
	LogFormat string `yaml:"log_format"` // text, json
}

// Endpoints overrides the upstream catalog URLs.
type Endpoints struct {
	LastKnownGood          string `yaml:"last_known_good_url"`
	KnownGoodWithDownloads string `yaml:"known_good_with_downloads_url"`
	Storage                string `yaml:"storage_url"`
	Chromium               string `yaml:"chromium_url"`
}

// Catalog modes.
const (
	CatalogJSON       = "json"
	CatalogLegacyHTML = "legacy-html"
)

// Default configuration values.
const (
	// DefaultHTTPTimeout bounds every single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// EnvConfigPath names a config file to load when --config is absent.
	EnvConfigPath = "GETDRIVER_CONFIG"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	dl := download.DefaultOptions()
	e := catalog.DefaultEndpoints()
	return &Config{
		Settings: Settings{
			HTTPTimeout:  DefaultHTTPTimeout,
			UserAgent:    download.DefaultUserAgent,
			RetryMax:     dl.RetryMax,
			RetryWaitMin: dl.RetryWaitMin,
			Catalog:      CatalogJSON,
			LogLevel:     DefaultLogLevel,
			LogFormat:    DefaultLogFormat,
		},
		Endpoints: Endpoints{
			LastKnownGood:          e.LastKnownGood,
			KnownGoodWithDownloads: e.KnownGoodWithDownloads,
			Storage:                e.Storage,
			Chromium:               e.Chromium,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	// Start from the defaults so a partial file keeps the rest.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to path through a temporary file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirModeDefault); err != nil {
		return errutils.Wrap(errutils.ErrConfigDirectory, err.Error())
	}

	tempPath := path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errutils.Wrap(errutils.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errutils.Wrap(errutils.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()
	return []byte(b.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return errutils.Kind(errutils.ErrConfigValidation, err)
	}
	if err := validateEndpoints(c.Endpoints); err != nil {
		return errutils.Kind(errutils.ErrConfigValidation, err)
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errutils.ErrHTTPTimeoutNegative
	}
	if s.RetryMax < 0 {
		return errutils.ErrRetryMaxNegative
	}
	if s.RetryWaitMin < 0 {
		return fmt.Errorf("retry_wait_min cannot be negative")
	}
	if s.Platform != "" {
		if _, err := platform.Parse(s.Platform); err != nil {
			return err
		}
	}
	switch s.Catalog {
	case CatalogJSON, CatalogLegacyHTML:
	default:
		return fmt.Errorf("%w: %q, must be %s or %s", errutils.ErrInvalidCatalog, s.Catalog, CatalogJSON, CatalogLegacyHTML)
	}
	switch strings.ToLower(s.LogLevel) {
	case "error", "warn", "info", "debug":
	default:
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q, must be text or json", errutils.ErrInvalidLogFormat, s.LogFormat)
	}
	return nil
}

func validateEndpoints(e Endpoints) error {
	for key, raw := range map[string]string{
		"last_known_good_url":           e.LastKnownGood,
		"known_good_with_downloads_url": e.KnownGoodWithDownloads,
		"storage_url":                   e.Storage,
		"chromium_url":                  e.Chromium,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) url, got %q", key, raw)
		}
	}
	return nil
}

// applyDefaults fills in values a config file emptied explicitly.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.RetryWaitMin == 0 {
		c.Settings.RetryWaitMin = defaults.Settings.RetryWaitMin
	}
	if c.Settings.Catalog == "" {
		c.Settings.Catalog = defaults.Settings.Catalog
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaults.Settings.LogFormat
	}
	if c.Endpoints.LastKnownGood == "" {
		c.Endpoints.LastKnownGood = defaults.Endpoints.LastKnownGood
	}
	if c.Endpoints.KnownGoodWithDownloads == "" {
		c.Endpoints.KnownGoodWithDownloads = defaults.Endpoints.KnownGoodWithDownloads
	}
	if c.Endpoints.Storage == "" {
		c.Endpoints.Storage = defaults.Endpoints.Storage
	}
	if c.Endpoints.Chromium == "" {
		c.Endpoints.Chromium = defaults.Endpoints.Chromium
	}
}

// CatalogEndpoints returns the endpoints in the form the catalog expects.
func (c *Config) CatalogEndpoints() catalog.Endpoints {
	return catalog.Endpoints{
		LastKnownGood:          c.Endpoints.LastKnownGood,
		KnownGoodWithDownloads: c.Endpoints.KnownGoodWithDownloads,
		Storage:                strings.TrimRight(c.Endpoints.Storage, "/"),
		Chromium:               c.Endpoints.Chromium,
	}
}

// DownloadOptions returns the downloader settings.
func (c *Config) DownloadOptions() download.Options {
	return download.Options{
		Timeout:      c.Settings.HTTPTimeout,
		UserAgent:    c.Settings.UserAgent,
		RetryMax:     c.Settings.RetryMax,
		RetryWaitMin: c.Settings.RetryWaitMin,
		RetryWaitMax: download.DefaultRetryWaitMax,
	}
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "getdriver", "config.yaml"), nil
}
