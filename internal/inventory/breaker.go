package inventory

import (
	"context"

	"github.com/sony/gobreaker/v2"

	"github.com/webstore/cart-engine/internal/domain"
	"github.com/webstore/cart-engine/pkg/breaker"
)

// GuardedClient wraps a Client with per-lookup circuit breakers so a failing
// collaborator fails fast while it recovers. An open breaker surfaces as an
// ordinary lookup error.
type GuardedClient struct {
	next    *Client
	stock   *gobreaker.CircuitBreaker[domain.Stock]
	product *gobreaker.CircuitBreaker[domain.Product]
}

func Guard(next *Client) *GuardedClient {
	return &GuardedClient{
		next:    next,
		stock:   breaker.New[domain.Stock]("stock-lookup"),
		product: breaker.New[domain.Product]("product-lookup"),
	}
}

func (g *GuardedClient) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	return g.stock.Execute(func() (domain.Stock, error) {
		return g.next.GetStock(ctx, productID)
	})
}

func (g *GuardedClient) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	return g.product.Execute(func() (domain.Product, error) {
		return g.next.GetProduct(ctx, productID)
	})
}
