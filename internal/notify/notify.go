package notify

import "context"

// Category is one of the fixed user-facing failure messages the cart engine
// can emit. There are no structured error codes and no retry hints; the
// message is the whole payload.
type Category struct {
	Name    string
	Message string
}

var (
	OutOfStock         = Category{"out_of_stock", "requested quantity is out of stock"}
	AddFailed          = Category{"add_failed", "could not add product to cart"}
	RemoveFailed       = Category{"remove_failed", "could not remove product from cart"}
	AmountChangeFailed = Category{"amount_change_failed", "could not change product amount"}
)

// Notifier delivers failure messages to the user-facing channel. Delivery is
// best effort; the engine neither waits on nor retries it.
type Notifier interface {
	Notify(ctx context.Context, c Category)
}
