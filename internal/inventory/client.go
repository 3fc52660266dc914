// Package inventory holds the clients for the two external collaborators:
// the stock query service and the product catalog.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/webstore/cart-engine/internal/domain"
)

var ErrNotFound = errors.New("not found")

// StockReader returns the current available quantity for a product. Stock is
// fetched fresh on every call, never cached.
type StockReader interface {
	GetStock(ctx context.Context, productID int64) (domain.Stock, error)
}

// ProductReader returns catalog metadata for a product, excluding quantity.
type ProductReader interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}

// Client talks to the collaborator API over HTTP. Both lookups are served by
// the same base URL: GET /stock/{id} and GET /products/{id}.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	var stock domain.Stock
	url := fmt.Sprintf("%s/stock/%d", c.baseURL, productID)
	if err := c.getJSON(ctx, url, &stock); err != nil {
		return domain.Stock{}, err
	}
	return stock, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var product domain.Product
	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)
	if err := c.getJSON(ctx, url, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("request %s: %w", url, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", url, err)
	}
	return nil
}
