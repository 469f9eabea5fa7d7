// Package errutils defines the error taxonomy shared by the resolver, the
// downloader and the CLI. Every failure surfaced by the core wraps one of the
// sentinels below, so callers classify errors with errors.Is and never by
// matching message text.
package errutils

import (
	"fmt"
	"strings"
)

// Resolution errors. These are the kinds the presentation layer maps to
// user-facing messages.
var (
	// ErrUnknownPlatform is returned when the requested or detected platform
	// is not one of the supported driver platforms.
	ErrUnknownPlatform = fmt.Errorf("unknown platform")

	// ErrUnknownVersion is returned when a version string is malformed or a
	// catalog does not carry the expected field or markup.
	ErrUnknownVersion = fmt.Errorf("unknown version")

	// ErrVersionURL is returned when no download URL could be validated after
	// all fallback tiers were tried.
	ErrVersionURL = fmt.Errorf("could not find download url")

	// ErrDownload wraps every filesystem or network failure of a download.
	ErrDownload = fmt.Errorf("download error")

	// ErrVersion is returned when no catalog version is build-compatible with
	// the installed browser.
	ErrVersion = fmt.Errorf("no driver version for the installed browser")

	// ErrCatalogUnreachable is returned when a catalog endpoint answers with a
	// non-success status or cannot be reached at all.
	ErrCatalogUnreachable = fmt.Errorf("catalog unreachable")
)

// Lower-level errors wrapped by the kinds above.
var (
	ErrDownloadFailed      = fmt.Errorf("download failed")
	ErrVersionUndetectable = fmt.Errorf("installed version undetectable")
	ErrArchiveEntry        = fmt.Errorf("invalid archive entry")
	ErrDriverNotFound      = fmt.Errorf("driver binary not found in archive")
	ErrEmptyPaths          = fmt.Errorf("source and destination paths cannot be empty")

	// Config errors.
	ErrConfigParse         = fmt.Errorf("failed to parse config")
	ErrConfigValidation    = fmt.Errorf("invalid configuration")
	ErrConfigEncode        = fmt.Errorf("failed to encode config")
	ErrConfigDirectory     = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate    = fmt.Errorf("failed to create config file")
	ErrConfigFileRename    = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists    = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrEmptyConfigPath     = fmt.Errorf("config file path cannot be empty")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrInvalidLogFormat    = fmt.Errorf("invalid log format")
	ErrInvalidCatalog      = fmt.Errorf("invalid catalog mode")
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")
	ErrRetryMaxNegative    = fmt.Errorf("retry_max cannot be negative")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
//
// Example:
//
//	if err := fetch(); err != nil {
//	    return errutils.Wrap(err, "failed to fetch catalog")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind wraps cause under the sentinel kind so both match errors.Is.
// A nil cause yields kind itself.
func Kind(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// ErrUnknownPlatformWithDetails names the rejected value and the valid ones.
func ErrUnknownPlatformWithDetails(value string, valid []string) error {
	return fmt.Errorf("%w: %q, choose a platform from: %s", ErrUnknownPlatform, value, strings.Join(valid, ", "))
}

// ErrUnknownVersionWithDetails names the rejected version.
func ErrUnknownVersionWithDetails(version, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrUnknownVersion, version, reason)
}

// ErrVersionURLWithVersion names the version no URL was found for.
func ErrVersionURLWithVersion(version string) error {
	return fmt.Errorf("%w for version %s", ErrVersionURL, version)
}

// ErrCatalogStatus reports a non-success catalog response.
func ErrCatalogStatus(url string, status int) error {
	return fmt.Errorf("%w: %s returned status %d", ErrCatalogUnreachable, url, status)
}

// ErrInvalidLogLevelWithDetails lists the accepted log levels.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}
