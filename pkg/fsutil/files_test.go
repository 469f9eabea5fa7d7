package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/getdriver/pkg/errutils"
)

func TestMove_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/chromedriver-linux64/chromedriver", []byte("ELF"), FileModeExec))

	require.NoError(t, Move(fs, "/out/chromedriver-linux64/chromedriver", "/out/chromedriver"))

	data, err := afero.ReadFile(fs, "/out/chromedriver")
	require.NoError(t, err)
	assert.Equal(t, "ELF", string(data))
	assert.False(t, Exists(fs, "/out/chromedriver-linux64/chromedriver"))
}

func TestMove_CreatesDestinationDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a/file", []byte("x"), FileModeDefault))

	require.NoError(t, Move(fs, "/a/file", "/b/c/file"))
	assert.True(t, IsFile(fs, "/b/c/file"))
}

func TestMove_OnDisk_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	fs := afero.NewOsFs()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("bin"), FileModeExec))

	require.NoError(t, Move(fs, src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModeExec), info.Mode().Perm())
}

func TestMove_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	assert.ErrorIs(t, Move(fs, "", "dst"), errutils.ErrEmptyPaths)
	assert.ErrorIs(t, Move(fs, "src", ""), errutils.ErrEmptyPaths)

	err := Move(fs, "/missing", "/dst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat source")

	require.NoError(t, fs.MkdirAll("/dir", DirModeDefault))
	assert.Error(t, Move(fs, "/dir", "/dst"))
}

func TestIsCrossFilesystemError(t *testing.T) {
	assert.False(t, isCrossFilesystemError(nil))
	assert.False(t, isCrossFilesystemError(errors.New("permission denied")))
	assert.True(t, isCrossFilesystemError(&os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EXDEV}))
	assert.True(t, isCrossFilesystemError(errors.New("invalid cross-device link")))
}

func TestCopy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src", []byte("payload"), FileModeDefault))
	require.NoError(t, afero.WriteFile(fs, "/dst", []byte("a much longer previous payload"), FileModeDefault))

	require.NoError(t, Copy(fs, "/src", "/dst"))

	data, err := afero.ReadFile(fs, "/dst")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	assert.Error(t, Copy(fs, "/nope", "/dst"))
}

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, EnsureDir(fs, "/a/b/c"))
	require.NoError(t, EnsureDir(fs, "/a/b/c"), "existing directory is fine")
	assert.True(t, Exists(fs, "/a/b/c"))
	assert.False(t, IsFile(fs, "/a/b/c"))
}

func TestWithinRoot(t *testing.T) {
	root := filepath.Join("dest", "bin")

	got, err := WithinRoot(root, "chromedriver-linux64/chromedriver")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "chromedriver-linux64", "chromedriver"), got)

	for _, bad := range []string{"../evil", "a/../../evil", ".."} {
		_, err := WithinRoot(root, bad)
		assert.ErrorIs(t, err, errutils.ErrArchiveEntry, bad)
	}
}

func TestAbsSlash(t *testing.T) {
	got, err := AbsSlash(filepath.Join("chromedriver", "116.0.5845.96", "bin"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(filepath.FromSlash(got)))
	assert.NotContains(t, got, `\`)
	assert.Contains(t, got, "chromedriver/116.0.5845.96/bin")
}
