// Package installer turns a downloaded driver archive into a usable binary
// and optionally exposes it on PATH.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/archive"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/fsutil"
	"github.com/glorpus-work/getdriver/pkg/platform"
)

// PathVar is the search path environment variable.
const PathVar = "PATH"

// Env reads and writes process environment variables.
type Env interface {
	Getenv(key string) string
	Setenv(key, value string) error
}

// OSEnv is the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string        { return os.Getenv(key) }
func (OSEnv) Setenv(key, value string) error { return os.Setenv(key, value) }

// Installer extracts archives and normalizes their layout.
type Installer struct {
	fs       afero.Fs
	archives *archive.Manager
	host     platform.Host
	env      Env
}

// New creates an installer working on fs (the OS filesystem when nil).
// host decides the nested directory of mac archives.
func New(fs afero.Fs, host platform.Host) *Installer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Installer{
		fs:       fs,
		archives: archive.NewManager(fs),
		host:     host,
		env:      OSEnv{},
	}
}

// WithEnv replaces the process environment, for tests.
func (i *Installer) WithEnv(env Env) *Installer {
	i.env = env
	return i
}

// ExtractAndNormalize extracts archivePath into destDir, deletes the
// archive and leaves the driver binary at destDir/<driver>. Archives that
// nest the binary in a platform directory are flattened. A binary already
// at destDir/<driver> wins: a nested binary is then discarded with its
// directory, so reusing an output dir keeps the older driver. On POSIX
// platforms the binary is made executable.
func (i *Installer) ExtractAndNormalize(ctx context.Context, archivePath, destDir string, p platform.Platform) error {
	if err := i.archives.ExtractAll(ctx, archivePath, destDir); err != nil {
		return err
	}
	if err := i.fs.Remove(archivePath); err != nil {
		return errutils.Wrapf(err, "failed to remove archive %s", archivePath)
	}

	binary := filepath.Join(destDir, p.DriverFilename())
	nested := p.NestedDirs(i.host)

	if !fsutil.IsFile(i.fs, binary) {
		moved := false
		for _, dir := range nested {
			candidate := filepath.Join(destDir, dir, p.DriverFilename())
			if !fsutil.IsFile(i.fs, candidate) {
				continue
			}
			if err := fsutil.Move(i.fs, candidate, binary); err != nil {
				return errutils.Wrap(err, "failed to move driver out of its archive directory")
			}
			logger.Debug("flattened nested driver", logger.Fields{"from": candidate, "to": binary})
			moved = true
			break
		}
		if !moved {
			return fmt.Errorf("%w: %s in %s", errutils.ErrDriverNotFound, p.DriverFilename(), archivePath)
		}
	}

	for _, dir := range nested {
		if discarded := filepath.Join(destDir, dir, p.DriverFilename()); fsutil.IsFile(i.fs, discarded) {
			logger.Debug("discarding nested driver, destination already holds one", logger.Fields{"discarded": discarded, "kept": binary})
		}
		if err := i.fs.RemoveAll(filepath.Join(destDir, dir)); err != nil {
			return errutils.Wrapf(err, "failed to remove %s", dir)
		}
	}

	if p.IsPOSIX() {
		if err := i.fs.Chmod(binary, fsutil.FileModeExec); err != nil {
			return errutils.Wrap(err, "failed to make driver executable")
		}
	}
	return nil
}

// AddToPath appends the absolute form of dir to PATH unless it is already
// listed, and returns that path with forward slashes. The change lasts for
// the rest of the process and is never undone.
func (i *Installer) AddToPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errutils.Wrapf(err, "failed to resolve %s", dir)
	}

	current := i.env.Getenv(PathVar)
	if !containsPath(current, abs) {
		next := abs
		if current != "" {
			next = current + string(os.PathListSeparator) + abs
		}
		if err := i.env.Setenv(PathVar, next); err != nil {
			return "", errutils.Wrap(err, "failed to update PATH")
		}
		logger.Debug("added to PATH", logger.Fields{"dir": abs})
	}
	return fsutil.AbsSlash(abs)
}

func containsPath(list, dir string) bool {
	for _, entry := range strings.Split(list, string(os.PathListSeparator)) {
		if entry == dir {
			return true
		}
	}
	return false
}
