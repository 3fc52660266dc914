package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/webstore/cart-engine/internal/domain"
)

func NewRedisStore(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    slotKey(sessionID),
	}
}

// RedisStore keeps the cart snapshot as a JSON value under a single key. The
// key carries no TTL: this is the durable slot, not a cache.
type RedisStore struct {
	client *redis.Client
	key    string
}

func (r *RedisStore) Load(ctx context.Context) (domain.Cart, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err2 := json.Unmarshal(data, &cart); err2 != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err2)
	}

	return cart, nil
}

func (r *RedisStore) Save(ctx context.Context, cart domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func slotKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
