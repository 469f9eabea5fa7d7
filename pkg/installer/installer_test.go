package installer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/getdriver/internal/logger"
	"github.com/glorpus-work/getdriver/pkg/errutils"
	"github.com/glorpus-work/getdriver/pkg/fsutil"
	"github.com/glorpus-work/getdriver/pkg/platform"
	"github.com/glorpus-work/getdriver/test/testutil"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

func (m mapEnv) Setenv(key, value string) error {
	m[key] = value
	return nil
}

func host(goos, goarch string) platform.Host {
	return platform.Host{
		GOOS:        func() string { return goos },
		GOARCH:      func() string { return goarch },
		PointerBits: func() int { return 64 },
	}
}

func TestExtractAndNormalize(t *testing.T) {
	tests := []struct {
		name    string
		p       platform.Platform
		host    platform.Host
		archive func(t *testing.T) []byte
		binary  string
		nested  string
	}{
		{
			name:    "linux nested",
			p:       platform.Linux64,
			host:    host("linux", "amd64"),
			archive: func(t *testing.T) []byte { return testutil.NestedDriverZip(t, "linux64", "chromedriver", "linux-driver") },
			binary:  "chromedriver",
			nested:  "chromedriver-linux64",
		},
		{
			name:    "windows nested 32-bit",
			p:       platform.Win64,
			host:    host("windows", "amd64"),
			archive: func(t *testing.T) []byte { return testutil.NestedDriverZip(t, "win32", "chromedriver.exe", "win-driver") },
			binary:  "chromedriver.exe",
			nested:  "chromedriver-win32",
		},
		{
			name:    "mac arm nested",
			p:       platform.Mac64,
			host:    host("darwin", "arm64"),
			archive: func(t *testing.T) []byte { return testutil.NestedDriverZip(t, "mac-arm64", "chromedriver", "mac-driver") },
			binary:  "chromedriver",
			nested:  "chromedriver-mac-arm64",
		},
		{
			name:    "legacy flat",
			p:       platform.Linux64,
			host:    host("linux", "amd64"),
			archive: func(t *testing.T) []byte { return testutil.FlatDriverZip(t, "chromedriver", "legacy-driver") },
			binary:  "chromedriver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			dest := "/work/chromedriver/116.0.5845.96/bin"
			archivePath := filepath.Join(dest, "driver.zip")
			require.NoError(t, fs.MkdirAll(dest, fsutil.DirModeDefault))
			require.NoError(t, afero.WriteFile(fs, archivePath, tt.archive(t), fsutil.FileModeDefault))

			inst := New(fs, tt.host)
			require.NoError(t, inst.ExtractAndNormalize(context.Background(), archivePath, dest, tt.p))

			binary := filepath.Join(dest, tt.binary)
			assert.True(t, fsutil.IsFile(fs, binary))
			assert.False(t, fsutil.Exists(fs, archivePath), "archive removed")
			if tt.nested != "" {
				assert.False(t, fsutil.Exists(fs, filepath.Join(dest, tt.nested)), "nested dir removed")
			}

			if tt.p.IsPOSIX() {
				info, err := fs.Stat(binary)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(fsutil.FileModeExec), info.Mode().Perm())
			}
		})
	}
}

func TestExtractAndNormalize_ExistingBinaryWins(t *testing.T) {
	var logs bytes.Buffer
	logger.SetTestOutput(&logs)
	logger.InitLogger("debug", logger.FormatText)
	t.Cleanup(func() {
		logger.UnsetTestOutput()
		logger.InitLogger("warn", logger.FormatText)
	})

	fs := afero.NewMemMapFs()
	dest := "/out"
	archivePath := filepath.Join(dest, "chromedriver-linux64.zip")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dest, "chromedriver"), []byte("old-driver"), fsutil.FileModeExec))
	require.NoError(t, afero.WriteFile(fs, archivePath, testutil.NestedDriverZip(t, "linux64", "chromedriver", "new-driver"), fsutil.FileModeDefault))

	require.NoError(t, New(fs, host("linux", "amd64")).ExtractAndNormalize(context.Background(), archivePath, dest, platform.Linux64))

	data, err := afero.ReadFile(fs, filepath.Join(dest, "chromedriver"))
	require.NoError(t, err)
	assert.Equal(t, "old-driver", string(data))
	assert.False(t, fsutil.Exists(fs, filepath.Join(dest, "chromedriver-linux64")))
	assert.Contains(t, logs.String(), "discarding nested driver")
}

func TestExtractAndNormalize_MissingDriver(t *testing.T) {
	fs := afero.NewMemMapFs()
	archivePath := "/out/driver.zip"
	require.NoError(t, afero.WriteFile(fs, archivePath, testutil.ZipBytes(t, map[string]string{"README": "no driver"}), fsutil.FileModeDefault))

	err := New(fs, host("linux", "amd64")).ExtractAndNormalize(context.Background(), archivePath, "/out", platform.Linux64)
	assert.ErrorIs(t, err, errutils.ErrDriverNotFound)
}

func TestExtractAndNormalize_OnDisk(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	archivePath := filepath.Join(dest, "chromedriver-linux64.zip")
	require.NoError(t, os.WriteFile(archivePath, testutil.NestedDriverZip(t, "linux64", "chromedriver", "ELF"), 0o644))

	require.NoError(t, New(nil, host("linux", "amd64")).ExtractAndNormalize(context.Background(), archivePath, dest, platform.Linux64))

	data, err := os.ReadFile(filepath.Join(dest, "chromedriver"))
	require.NoError(t, err)
	assert.Equal(t, "ELF", string(data))
}

func TestAddToPath(t *testing.T) {
	env := mapEnv{PathVar: "/usr/bin"}
	inst := New(afero.NewMemMapFs(), host("linux", "amd64")).WithEnv(env)

	dir := filepath.Join("chromedriver", "116.0.5845.96", "bin")
	got, err := inst.AddToPath(dir)
	require.NoError(t, err)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), got)
	assert.Equal(t, "/usr/bin"+string(os.PathListSeparator)+abs, env[PathVar])

	_, err = inst.AddToPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin"+string(os.PathListSeparator)+abs, env[PathVar], "already listed")
}

func TestAddToPath_EmptyPath(t *testing.T) {
	env := mapEnv{}
	got, err := New(nil, host("linux", "amd64")).WithEnv(env).AddToPath("bin")
	require.NoError(t, err)

	abs, _ := filepath.Abs("bin")
	assert.Equal(t, abs, env[PathVar])
	assert.Equal(t, filepath.ToSlash(abs), got)
}
