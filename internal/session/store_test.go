package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewFileStore(path)

	token, err := s.Load()
	require.NoError(t, err, "missing file is not an error")
	assert.Empty(t, token)

	require.NoError(t, s.Save("tok-abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	require.NoError(t, s.Save("tok-replaced"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-replaced", token)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing an empty store is fine")

	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_LoadTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  tok-abc\n"), 0o600))

	token, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.Save("tok-1"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
