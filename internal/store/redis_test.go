package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstore/cart-engine/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	snapshots := NewRedisStore(client, "session123")

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return snapshots, mr, cleanup
}

func TestLoad_Success(t *testing.T) {
	snapshots, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := domain.Cart{
		{ID: 1, Name: "Trail Runner Sneaker", Price: 179.90, Amount: 2},
		{ID: 2, Name: "Canvas Low-Top", Price: 139.90, Amount: 3},
	}
	payload, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set(slotKey("session123"), string(payload)))

	result, err := snapshots.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, 2, result[0].Amount)
	assert.Equal(t, int64(2), result[1].ID)
}

func TestLoad_NoSnapshot(t *testing.T) {
	snapshots, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := snapshots.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Nil(t, result)
}

func TestLoad_MalformedSnapshot(t *testing.T) {
	snapshots, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(slotKey("session123"), `[{"id": 1, "amount":`))

	_, err := snapshots.Load(context.Background())
	assert.ErrorIs(t, err, ErrBadSnapshot)
}

func TestSave_Success(t *testing.T) {
	snapshots, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cart := domain.Cart{
		{ID: 10, Name: "Suede Classic", Price: 189.90, ImageURL: "https://cdn.example.com/images/suede-classic.jpg", Amount: 5},
	}

	err := snapshots.Save(context.Background(), cart)
	require.NoError(t, err)

	stored, err := mr.Get(slotKey("session123"))
	require.NoError(t, err)

	var storedCart domain.Cart
	require.NoError(t, json.Unmarshal([]byte(stored), &storedCart))
	require.Len(t, storedCart, 1)
	assert.Equal(t, int64(10), storedCart[0].ID)
	assert.Equal(t, 5, storedCart[0].Amount)
	assert.Equal(t, "https://cdn.example.com/images/suede-classic.jpg", storedCart[0].ImageURL)
}

func TestSave_NoTTL(t *testing.T) {
	snapshots, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := snapshots.Save(context.Background(), domain.Cart{{ID: 1, Amount: 1}})
	require.NoError(t, err)

	// The slot is durable, not a cache entry
	assert.Equal(t, time.Duration(0), mr.TTL(slotKey("session123")))
}

func TestSave_OverwritesWholesale(t *testing.T) {
	snapshots, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, snapshots.Save(ctx, domain.Cart{{ID: 1, Amount: 1}, {ID: 2, Amount: 2}}))
	require.NoError(t, snapshots.Save(ctx, domain.Cart{{ID: 2, Amount: 7}}))

	result, err := snapshots.Load(ctx)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, 7, result[0].Amount)
}

func TestRoundTrip_PreservesOrder(t *testing.T) {
	snapshots, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	cart := domain.Cart{
		{ID: 5, Amount: 1},
		{ID: 3, Amount: 4},
		{ID: 9, Amount: 2},
	}
	require.NoError(t, snapshots.Save(ctx, cart))

	result, err := snapshots.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart, result)
}

func TestSlotKey_Format(t *testing.T) {
	assert.Equal(t, "cart:abc", slotKey("abc"))
}
