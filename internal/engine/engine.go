// Package engine owns the in-memory cart and keeps the snapshot store
// synchronized with every accepted mutation.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/webstore/cart-engine/internal/domain"
	"github.com/webstore/cart-engine/internal/inventory"
	"github.com/webstore/cart-engine/internal/notify"
	"github.com/webstore/cart-engine/internal/store"
)

// Outcomes the operations branch on internally
var (
	ErrOutOfStock = errors.New("requested quantity out of stock")
	ErrNotInCart  = errors.New("product not in cart")
)

// Engine exposes the three cart mutations and a snapshot accessor. Mutations
// never return errors: failures are reported through the notification sink
// and leave the cart unchanged.
//
// The engine is not safe for concurrent use. Callers must serialize
// operations against a single instance; overlapping invocations can lose
// updates because both read the pre-commit snapshot.
type Engine struct {
	stock   inventory.StockReader
	catalog inventory.ProductReader
	store   store.SnapshotStore
	sink    notify.Notifier
	log     *logrus.Logger

	cart domain.Cart
}

// New builds an engine whose initial cart is loaded from the snapshot store.
// A missing snapshot means an empty cart; a malformed one is discarded with a
// warning. No stock revalidation happens at load time, so a restored cart may
// hold entries that later mutations will reject.
func New(
	ctx context.Context,
	stock inventory.StockReader,
	catalog inventory.ProductReader,
	snapshots store.SnapshotStore,
	sink notify.Notifier,
	log *logrus.Logger,
) (*Engine, error) {
	cart, err := snapshots.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		cart = domain.Cart{}
	case errors.Is(err, store.ErrBadSnapshot):
		log.WithError(err).Warn("discarding malformed cart snapshot")
		cart = domain.Cart{}
	case err != nil:
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	return &Engine{
		stock:   stock,
		catalog: catalog,
		store:   snapshots,
		sink:    sink,
		log:     log,
		cart:    cart,
	}, nil
}

// Cart returns a copy of the current cart snapshot.
func (e *Engine) Cart() domain.Cart {
	return e.cart.Clone()
}

// AddProduct increments the held quantity of productID by one, inserting the
// product at quantity 1 if it is not in the cart yet. The increment is
// rejected when stock is exhausted or the held amount already reaches
// availability.
func (e *Engine) AddProduct(ctx context.Context, productID int64) {
	err := e.addProduct(ctx, productID)
	if err == nil {
		return
	}
	if errors.Is(err, ErrOutOfStock) {
		e.sink.Notify(ctx, notify.OutOfStock)
		return
	}
	e.log.WithError(err).WithField("product_id", productID).Warn("add product failed")
	e.sink.Notify(ctx, notify.AddFailed)
}

func (e *Engine) addProduct(ctx context.Context, productID int64) error {
	stock, err := e.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("stock lookup: %w", err)
	}

	next := e.cart.Clone()
	i := next.IndexOf(productID)

	// The check runs against the amount before the increment: the accepted
	// range is existing.Amount < stock.Amount.
	if stock.Amount <= 0 || (i >= 0 && next[i].Amount >= stock.Amount) {
		return ErrOutOfStock
	}

	if i >= 0 {
		next[i].Amount++
	} else {
		product, err := e.catalog.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("product lookup: %w", err)
		}
		product.Amount = 1
		next = append(next, product)
	}

	return e.commit(ctx, next)
}

// RemoveProduct removes the entry for productID entirely, regardless of its
// amount. Removing a product that is not in the cart is an error and is
// reported.
func (e *Engine) RemoveProduct(ctx context.Context, productID int64) {
	err := e.removeProduct(ctx, productID)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrNotInCart) {
		e.log.WithError(err).WithField("product_id", productID).Warn("remove product failed")
	}
	e.sink.Notify(ctx, notify.RemoveFailed)
}

func (e *Engine) removeProduct(ctx context.Context, productID int64) error {
	i := e.cart.IndexOf(productID)
	if i < 0 {
		return ErrNotInCart
	}

	next := e.cart.Clone()
	next = append(next[:i], next[i+1:]...)
	return e.commit(ctx, next)
}

// UpdateProductAmount sets the held quantity of productID to exactly amount.
// A non-positive amount is a silent no-op. Only products already in the cart
// can have their amount changed; an unknown product is silently ignored.
//
// TODO: decide whether updating a product that is not in the cart should be
// reported instead of ignored; today nothing reaches the sink on that path.
func (e *Engine) UpdateProductAmount(ctx context.Context, productID int64, amount int) {
	if amount <= 0 {
		return
	}

	err := e.updateProductAmount(ctx, productID, amount)
	if err == nil {
		return
	}
	if errors.Is(err, ErrOutOfStock) {
		e.sink.Notify(ctx, notify.OutOfStock)
		return
	}
	if errors.Is(err, ErrNotInCart) {
		return
	}
	e.log.WithError(err).WithField("product_id", productID).Warn("amount change failed")
	e.sink.Notify(ctx, notify.AmountChangeFailed)
}

func (e *Engine) updateProductAmount(ctx context.Context, productID int64, amount int) error {
	stock, err := e.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("stock lookup: %w", err)
	}
	if amount > stock.Amount {
		return ErrOutOfStock
	}

	i := e.cart.IndexOf(productID)
	if i < 0 {
		return ErrNotInCart
	}

	next := e.cart.Clone()
	next[i].Amount = amount
	return e.commit(ctx, next)
}

// commit writes the snapshot first and swaps the in-memory cart only after
// the write succeeds, so memory and store never diverge.
func (e *Engine) commit(ctx context.Context, next domain.Cart) error {
	if err := e.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	e.cart = next
	return nil
}
