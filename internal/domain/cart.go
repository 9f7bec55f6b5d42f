package domain

import "github.com/BlurryShady/gear-store-frontend/internal/money"

// LineItem is one product + quantity pairing within a cart.
// Quantity is always >= 1; a line that would drop to zero is deleted
// instead of stored.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds the ordered cart lines for one shopper session. Lines appear
// in insertion order of first add; removal does not reorder survivors.
// At most one line exists per distinct product id.
type Cart struct {
	Items []LineItem `json:"items"`
}

// TotalCount returns the sum of all line quantities. It is recomputed
// from the line items on every call, never cached.
func (c Cart) TotalCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalPrice returns the sum of normalized price * quantity across lines,
// recomputed from the line items on every call.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += money.Normalize(item.Product.Price.Amount()) * float64(item.Quantity)
	}
	return total
}

// FindLineIndex returns the index of the line matching the given product
// id, or -1 if no line matches.
func (c Cart) FindLineIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
