package archive

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string, mode os.FileMode) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), mode))
	}
}

func TestManager_CreateAndExtract(t *testing.T) {
	formats := []string{"driver.zip", "driver.tar.gz"}
	files := map[string]string{
		"chromedriver-linux64/chromedriver":                     "ELF-binary",
		"chromedriver-linux64/LICENSE.chromedriver":             "license",
		"chromedriver-linux64/THIRD_PARTY_NOTICES.chromedriver": "notices",
	}

	for _, name := range formats {
		t.Run(name, func(t *testing.T) {
			tempDir := t.TempDir()
			src := filepath.Join(tempDir, "src")
			writeTree(t, src, files, 0o644)

			osMgr := NewManager(afero.NewOsFs())
			archivePath := filepath.Join(tempDir, name)
			require.NoError(t, osMgr.Create(context.Background(), src, archivePath))

			destDir := filepath.Join(tempDir, "out")
			require.NoError(t, osMgr.ExtractAll(context.Background(), archivePath, destDir))

			for rel, want := range files {
				got, err := os.ReadFile(filepath.Join(destDir, filepath.FromSlash(rel)))
				require.NoError(t, err, rel)
				assert.Equal(t, want, string(got))
			}
		})
	}
}

func TestManager_ExtractIntoMemFs(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "src")
	writeTree(t, src, map[string]string{"chromedriver": "flat-binary"}, 0o755)

	archivePath := filepath.Join(tempDir, "chromedriver_linux64.zip")
	require.NoError(t, NewManager(nil).Create(context.Background(), src, archivePath))
	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)

	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/dl/chromedriver_linux64.zip", data, 0o644))

	require.NoError(t, NewManager(mem).ExtractAll(context.Background(), "/dl/chromedriver_linux64.zip", "/dl"))

	got, err := afero.ReadFile(mem, "/dl/chromedriver")
	require.NoError(t, err)
	assert.Equal(t, "flat-binary", string(got))

	if runtime.GOOS != "windows" {
		info, err := mem.Stat("/dl/chromedriver")
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestManager_ExtractErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	mgr := NewManager(mem)

	err := mgr.ExtractAll(context.Background(), "/missing.zip", "/out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open archive file")

	require.NoError(t, afero.WriteFile(mem, "/garbage.zip", []byte("this is not an archive"), 0o644))
	assert.Error(t, mgr.ExtractAll(context.Background(), "/garbage.zip", "/out"))
}
