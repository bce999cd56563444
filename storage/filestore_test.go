package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStoreSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	store, err := NewLocalFileStore(root)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, AvatarDir))
	assert.DirExists(t, filepath.Join(root, HospitalDir))

	rel, err := store.Save(ctx, AvatarDir, "alice.png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/alice.png", rel)

	data, err := store.Open(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	// Saving again replaces the content
	_, err = store.Save(ctx, AvatarDir, "alice.png", []byte("second"))
	require.NoError(t, err)
	data, err = store.Open(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	entries, err := os.ReadDir(filepath.Join(root, AvatarDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLocalFileStoreMissingFile(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "hospitals/none.png")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalFileStoreRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "/etc/passwd", "../secret", "avatars/../../secret", "..", "a\\b"} {
		_, err := store.Open(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}

	_, err = store.Save(ctx, "..", "x.png", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalFileStoreHonoursCancellation(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, AvatarDir, "a.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
