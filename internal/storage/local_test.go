package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStorage(t *testing.T) *LocalStorage {
	store, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	assert.NoError(t, err)
	return store
}

func TestLocalStorage_ExistsAndSize(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	found, err := store.Exists(ctx, "feedback/t1/shot.png")
	assert.NoError(t, err)
	assert.False(t, found)

	content := "screenshot bytes"
	assert.NoError(t, store.Save(ctx, "feedback/t1/shot.png", strings.NewReader(content), "image/png"))

	found, err = store.Exists(ctx, "feedback/t1/shot.png")
	assert.NoError(t, err)
	assert.True(t, found)

	size, err := store.GetSize(ctx, "feedback/t1/shot.png")
	assert.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
}

func TestLocalStorage_GetSizeMissingFile(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetSize(context.Background(), "feedback/t1/missing.png")
	assert.Error(t, err)
}
