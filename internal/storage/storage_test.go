// filepath: internal/storage/storage_test.go
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGeneratesUniqueNames(t *testing.T) {
	a, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	first, size, err := a.Save(strings.NewReader("one"), "song.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	assert.True(t, strings.HasSuffix(first, ".mp3"))

	second, _, err := a.Save(strings.NewReader("two"), "song.mp3")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "same original name must not collide")

	data, err := os.ReadFile(filepath.Join(a.Root, first))
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestSaveLowercasesExtension(t *testing.T) {
	a, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	name, _, err := a.Save(strings.NewReader("x"), "LOUD.MP3")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".mp3"))
}

func TestDeleteMissingFileIsNotAnError(t *testing.T) {
	a, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, a.Delete("never-existed.mp3"))
}

func TestDeleteRemovesFile(t *testing.T) {
	a, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	name, _, err := a.Save(strings.NewReader("bye"), "bye.mp3")
	require.NoError(t, err)
	require.NoError(t, a.Delete(name))

	_, err = os.Stat(filepath.Join(a.Root, name))
	assert.True(t, os.IsNotExist(err))
}

func TestResolveBlocksTraversal(t *testing.T) {
	a, err := NewAssetStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{
		"../escape.mp3",
		"../../etc/passwd",
		"..",
	} {
		_, err := a.Resolve(name)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestNewAssetStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewAssetStore(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
