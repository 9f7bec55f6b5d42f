package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlurryShady/gear-store-frontend/internal/domain"
	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
)

func setupTestRedis(t *testing.T) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSnapshotRepository(client, 72*time.Hour), mr
}

func sampleCart() domain.Cart {
	return domain.Cart{Items: []domain.LineItem{
		{
			Product:  domain.Product{ID: 1, Name: "Viper Mouse", Price: 49.99, Slug: "viper-mouse"},
			Quantity: 2,
		},
		{
			Product:  domain.Product{ID: 2, Name: "Tactile Keyboard", Price: 119.5, Slug: "tactile-keyboard"},
			Quantity: 1,
		},
	}}
}

func TestSnapshotRepository_SaveAndGet(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleCart()))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(1), got.Items[0].Product.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 49.99, got.Items[0].Product.Price.Amount())
	assert.Equal(t, "tactile-keyboard", got.Items[1].Product.Slug)
}

func TestSnapshotRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	got, err := repo.Get(context.Background(), "missing")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSnapshotRepository_Get_InvalidJSON(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(keyPrefix+"sess-1", "{not json"))

	got, err := repo.Get(context.Background(), "sess-1")
	assert.Nil(t, got)
	assert.Error(t, err)
}

func TestSnapshotRepository_Save_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)
	require.NoError(t, repo.Save(context.Background(), "sess-1", sampleCart()))

	assert.Greater(t, mr.TTL(keyPrefix+"sess-1"), time.Duration(0))
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	data, err := json.Marshal(sampleCart())
	require.NoError(t, err)
	require.NoError(t, mr.Set(keyPrefix+"sess-1", string(data)))

	require.NoError(t, repo.Delete(ctx, "sess-1"))
	assert.False(t, mr.Exists(keyPrefix+"sess-1"))

	// Deleting a missing snapshot is not an error.
	assert.NoError(t, repo.Delete(ctx, "sess-1"))
}
