package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "downloads", "exports")

	got, err := EnsureDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(target)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "downloads")

	first, err := EnsureDir(target)
	require.NoError(t, err)
	second, err := EnsureDir(target)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsWhenFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "downloads")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o660))

	_, err := EnsureDir(target)
	require.Error(t, err)
}

func TestUniquePath(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "clients_export.csv")

	require.Equal(t, path, UniquePath(path), "free path is returned unchanged")

	require.NoError(t, os.WriteFile(path, []byte("a"), 0o660))
	next := UniquePath(path)
	require.Equal(t, filepath.Join(tmp, "clients_export_1.csv"), next)

	require.NoError(t, os.WriteFile(next, []byte("b"), 0o660))
	require.Equal(t, filepath.Join(tmp, "clients_export_2.csv"), UniquePath(path))
}
