package domain

import "time"

// Cart is a shopper's cart: an ordered collection of line items keyed by
// (product id, size). Item order matches first insertion.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem is a single purchase intent: a product in a selected size with a
// quantity of at least one.
type LineItem struct {
	Product  Product `json:"product"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns the line total using the product's effective price.
func (i *LineItem) Subtotal() int64 {
	return i.Product.EffectivePrice() * int64(i.Quantity)
}

// TotalPrice sums the effective price times quantity over all line items.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

// TotalItemCount returns the sum of quantities across all line items.
func (c *Cart) TotalItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// FindItemIndex returns the index of the line item matching the given product
// id and size, or -1 if not present. Size matching is exact: "M" and "m" are
// distinct selections the UI never mixes.
func (c *Cart) FindItemIndex(productID, size string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}
