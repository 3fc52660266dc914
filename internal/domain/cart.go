package domain

// Product is a catalog entry plus the quantity currently held in the cart.
// Catalog fields are copied in when the product first enters the cart and are
// not refreshed afterwards; Amount is owned by the cart engine.
type Product struct {
	ID       int64   `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	ImageURL string  `json:"imageUrl" bson:"image_url"`
	Amount   int     `json:"amount" bson:"amount"`
}

// Stock is the available-to-sell quantity for a product, tracked by the
// inventory collaborator independently of any cart.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// Cart is an ordered sequence of products, unique by ID. Order reflects
// insertion order.
type Cart []Product

// IndexOf returns the position of the product with the given ID, or -1.
func (c Cart) IndexOf(productID int64) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// Find returns the entry for the given product ID, if any.
func (c Cart) Find(productID int64) (Product, bool) {
	if i := c.IndexOf(productID); i >= 0 {
		return c[i], true
	}
	return Product{}, false
}

// Clone returns a copy backed by its own array, so callers can mutate it
// without affecting the receiver.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
