package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates a new file with the given contents", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.toml")

		err := WriteFileAtomic(path, []byte("schema = 1\n"), 0o600)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "schema = 1\n", string(data))
	})

	t.Run("replaces existing contents wholesale", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.toml")
		require.NoError(t, os.WriteFile(path, []byte("old contents that are much longer"), 0o600))

		err := WriteFileAtomic(path, []byte("new"), 0o600)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "new", string(data))
	})

	t.Run("applies the requested permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not meaningful on Windows")
		}
		path := filepath.Join(t.TempDir(), "out.toml")

		err := WriteFileAtomic(path, []byte("x"), 0o600)
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "out.toml")

		err := WriteFileAtomic(path, []byte("x"), 0o600)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "out.toml", entries[0].Name())
	})

	t.Run("fails when the directory does not exist", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing", "out.toml")

		err := WriteFileAtomic(path, []byte("x"), 0o600)
		require.Error(t, err)
		require.NoFileExists(t, path)
	})

	t.Run("keeps the old contents when the write cannot start", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file name length limits differ on Windows")
		}
		dir := t.TempDir()
		// The target name fits within the file name limit, but the derived
		// temp file name does not, so the write fails before the rename.
		path := filepath.Join(dir, strings.Repeat("s", 250))
		prior := []byte("schema = 1\nactive = \"work\"\n")
		require.NoError(t, os.WriteFile(path, prior, 0o600))

		err := WriteFileAtomic(path, []byte("half-written replacement"), 0o600)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to create temp file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, prior, data)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("cleans up the temp file when the replace fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		// A directory at the target path makes the final rename fail after
		// the temp file was fully written.
		path := filepath.Join(dir, "out.toml")
		require.NoError(t, os.Mkdir(path, 0o755))

		err := WriteFileAtomic(path, []byte("x"), 0o600)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to replace")

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.True(t, info.IsDir())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})
}
