package forecast

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/storage"
)

func TestObjectArtifactStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	store := NewObjectArtifactStore(local)
	ctx := context.Background()

	fitted := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := Artifact{ProductID: 7, Order: DefaultOrder, Phi: 0.4, Theta: -0.2, Sigma2: 1.5, NObs: 30, FittedAt: fitted}
	require.NoError(t, store.Save(ctx, a))

	_, err = os.Stat(filepath.Join(dir, "product_7.json"))
	require.NoError(t, err)

	got, err := store.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, a.Phi, got.Phi)
	assert.Equal(t, a.Theta, got.Theta)
	assert.Equal(t, a.NObs, got.NObs)
	assert.True(t, fitted.Equal(got.FittedAt))

	// retraining overwrites the single artifact for the product
	a.Phi = 0.1
	require.NoError(t, store.Save(ctx, a))
	got, err = store.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0.1, got.Phi)

	objects, err := local.ListObjects(ctx, "product_")
	require.NoError(t, err)
	assert.Len(t, objects, 1)
}

func TestObjectArtifactStoreMissing(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = NewObjectArtifactStore(local).Load(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestObjectArtifactStoreList(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	store := NewObjectArtifactStore(local)
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, id := range []int64{12, 3, 7} {
		require.NoError(t, store.Save(ctx, Artifact{ProductID: id, Order: DefaultOrder, NObs: int(id)}))
	}
	require.NoError(t, local.PutObject(ctx, "product_notes.txt", []byte("ignored")))

	artifacts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, int64(3), artifacts[0].ProductID)
	assert.Equal(t, int64(7), artifacts[1].ProductID)
	assert.Equal(t, int64(12), artifacts[2].ProductID)
	assert.Equal(t, 12, artifacts[2].NObs)
}
