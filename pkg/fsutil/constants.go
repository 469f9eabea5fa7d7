// Package fsutil holds the filesystem helpers shared by the downloader and
// the post-processor. Everything goes through an afero.Fs so tests can run
// against an in-memory filesystem.
package fsutil

// File and directory permission constants.
const (
	FileModeDefault = 0o644 // -rw-r--r--
	FileModeSecure  = 0o640 // -rw-r-----
	FileModeExec    = 0o755 // -rwxr-xr-x: driver binaries

	DirModeDefault = 0o755 // drwxr-xr-x
	DirModeSecure  = 0o750 // drwxr-x---
)
