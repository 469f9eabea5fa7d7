package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/getdriver/pkg/archive"
)

// ZipBytes builds a zip archive holding files (slash-separated name to
// content) and returns its bytes. Files are written executable so POSIX
// modes survive the round trip.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	for name, content := range files {
		full := filepath.Join(src, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o755))
	}

	out := filepath.Join(dir, "out.zip")
	require.NoError(t, archive.NewManager(nil).Create(context.Background(), src, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return data
}

// NestedDriverZip returns an archive laid out like the Chrome for Testing
// downloads: chromedriver-<label>/<binary> plus a license file.
func NestedDriverZip(t *testing.T, label, binary, content string) []byte {
	t.Helper()
	dir := "chromedriver-" + label
	return ZipBytes(t, map[string]string{
		dir + "/" + binary:            content,
		dir + "/LICENSE.chromedriver": "license",
	})
}

// FlatDriverZip returns an archive laid out like the legacy storage
// downloads: the binary at the archive root.
func FlatDriverZip(t *testing.T, binary, content string) []byte {
	t.Helper()
	return ZipBytes(t, map[string]string{binary: content})
}
