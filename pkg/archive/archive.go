// Package archive extracts driver archives and builds archives from
// directories.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/spf13/afero"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/fsutil"
)

// Manager handles archive extraction and creation on a filesystem.
type Manager struct {
	fs afero.Fs
}

// NewManager creates a Manager. A nil fs selects the OS filesystem.
func NewManager(fs afero.Fs) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Manager{fs: fs}
}

// ExtractAll extracts every entry of archivePath into destDir. The format is
// identified from the file name and contents. Entries that would land
// outside destDir are rejected.
func (am *Manager) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	f, err := am.fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = f.Close() }()

	format, _, err := archives.Identify(ctx, filepath.Base(archivePath), f)
	if err != nil {
		return fmt.Errorf("failed to identify archive %s: %w", archivePath, err)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return fmt.Errorf("format %s of %s cannot be extracted", format.Extension(), archivePath)
	}

	// Identify consumed part of the stream; zip needs the whole file anyway.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind archive %s: %w", archivePath, err)
	}

	if err := fsutil.EnsureDir(am.fs, destDir); err != nil {
		return err
	}

	count := 0
	err = extractor.Extract(ctx, f, func(ctx context.Context, info archives.FileInfo) error {
		count++
		return am.extractEntry(destDir, info)
	})
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", archivePath, err)
	}
	logger.Debug("archive extracted", logger.Fields{"archive": archivePath, "dest": destDir, "entries": count})
	return nil
}

// extractEntry writes a single archive entry below destDir.
func (am *Manager) extractEntry(destDir string, info archives.FileInfo) error {
	name := strings.TrimPrefix(info.NameInArchive, "/")
	if name == "" || name == "." {
		return nil
	}

	targetPath, err := fsutil.WithinRoot(destDir, name)
	if err != nil {
		return err
	}

	switch {
	case info.IsDir():
		return am.fs.MkdirAll(targetPath, fsutil.DirModeDefault)
	case info.LinkTarget != "":
		return am.writeSymlink(info.LinkTarget, targetPath)
	default:
		return am.writeRegularFile(info, targetPath)
	}
}

// writeSymlink creates a symlink when the filesystem supports it.
func (am *Manager) writeSymlink(linkTarget, targetPath string) error {
	linker, ok := am.fs.(afero.Linker)
	if !ok {
		logger.Debug("skipping symlink on filesystem without link support", logger.Fields{"path": targetPath})
		return nil
	}
	if err := fsutil.EnsureDir(am.fs, filepath.Dir(targetPath)); err != nil {
		return err
	}
	_ = am.fs.Remove(targetPath)
	return linker.SymlinkIfPossible(linkTarget, targetPath)
}

// writeRegularFile copies an entry to targetPath keeping its permission bits.
func (am *Manager) writeRegularFile(info archives.FileInfo, targetPath string) error {
	src, err := info.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", info.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.EnsureDir(am.fs, filepath.Dir(targetPath)); err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dst, err := fsutil.CreateFilePerm(am.fs, targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to copy file %s: %w", info.NameInArchive, err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	if err := am.fs.Chmod(targetPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	return nil
}

// Create archives the contents of sourceDir (read from disk) into
// archivePath. The format follows the extension: .zip, or .tar.gz otherwise.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	out, err := am.fs.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() { _ = out.Close() }()

	if err := formatFor(archivePath).Archive(ctx, out, files); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return nil
}

func formatFor(archivePath string) archives.Archiver {
	if strings.HasSuffix(strings.ToLower(archivePath), ".zip") {
		return archives.Zip{}
	}
	return archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
}
