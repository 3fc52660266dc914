package store

import (
	"context"
	"errors"

	"github.com/webstore/cart-engine/internal/domain"
)

// Common errors returned by snapshot stores
var (
	ErrNoSnapshot  = errors.New("no cart snapshot")
	ErrBadSnapshot = errors.New("malformed cart snapshot")
)

// SnapshotStore is the durable slot holding the serialized cart, scoped to a
// single session. Load is called once at engine startup; Save overwrites the
// slot wholesale after every accepted mutation.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
