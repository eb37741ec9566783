package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehaus/storefront/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	saved := domain.UserProfile{
		Name:        "Asha Verma",
		FullAddress: "12 MG Road, Pune",
		Pincode:     "411001",
		Mobile:      "9876543210",
		Email:       "asha@example.com",
	}
	require.NoError(t, store.Set(ctx, "profile:user-1", saved))

	var loaded domain.UserProfile
	found, err := store.Get(ctx, "profile:user-1", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestStore_Get_Absent(t *testing.T) {
	store, _ := setupTestStore(t)

	var dest domain.FavoriteSet
	found, err := store.Get(context.Background(), "favorites:nobody", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Get_CorruptIsAbsent(t *testing.T) {
	store, mr := setupTestStore(t)
	require.NoError(t, mr.Set("cart:user-1", "{not valid json"))

	var dest domain.Cart
	found, err := store.Get(context.Background(), "cart:user-1", &dest)
	require.NoError(t, err, "corrupt data must not surface as an error")
	assert.False(t, found)
}

func TestStore_Set_Overwrites(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "favorites:user-1", domain.FavoriteSet{IDs: []string{"p1"}}))
	require.NoError(t, store.Set(ctx, "favorites:user-1", domain.FavoriteSet{IDs: []string{"p2", "p3"}}))

	var set domain.FavoriteSet
	found, err := store.Get(ctx, "favorites:user-1", &set)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"p2", "p3"}, set.IDs)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "profile:user-1", domain.UserProfile{Name: "Asha"}))
	require.NoError(t, store.Delete(ctx, "profile:user-1"))

	var dest domain.UserProfile
	found, err := store.Get(ctx, "profile:user-1", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "profile:user-1"))
}

func TestStore_Get_BackendError(t *testing.T) {
	store, mr := setupTestStore(t)
	mr.Close()

	var dest domain.Cart
	_, err := store.Get(context.Background(), "cart:user-1", &dest)
	assert.Error(t, err)
}
