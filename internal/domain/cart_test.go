package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func suitProduct() Product {
	return Product{
		ID:              "prod-a",
		Name:            "Classic Pinstripe Suit",
		SellingPrice:    500,
		DiscountedPrice: int64Ptr(199),
		Category:        "Suits",
		Sizes:           []string{"XS", "S", "M", "L", "XL"},
	}
}

func TestCart_TotalPrice(t *testing.T) {
	cart := Cart{}
	assert.Zero(t, cart.TotalPrice(), "empty cart totals zero")

	cart.Items = []LineItem{
		{Product: suitProduct(), Size: "M", Quantity: 2},
	}
	assert.Equal(t, int64(398), cart.TotalPrice(), "discounted price is used when present")

	full := suitProduct()
	full.DiscountedPrice = nil
	cart.Items = append(cart.Items, LineItem{Product: full, Size: "L", Quantity: 1})
	assert.Equal(t, int64(898), cart.TotalPrice())
}

func TestCart_TotalItemCount(t *testing.T) {
	cart := Cart{}
	assert.Zero(t, cart.TotalItemCount())

	cart.Items = []LineItem{
		{Product: suitProduct(), Size: "M", Quantity: 2},
		{Product: suitProduct(), Size: "L", Quantity: 3},
	}
	assert.Equal(t, 5, cart.TotalItemCount())
}

func TestCart_FindItemIndex(t *testing.T) {
	cart := Cart{Items: []LineItem{
		{Product: suitProduct(), Size: "M", Quantity: 1},
		{Product: suitProduct(), Size: "L", Quantity: 1},
	}}

	assert.Equal(t, 0, cart.FindItemIndex("prod-a", "M"))
	assert.Equal(t, 1, cart.FindItemIndex("prod-a", "L"))
	assert.Equal(t, -1, cart.FindItemIndex("prod-a", "XL"))
	assert.Equal(t, -1, cart.FindItemIndex("prod-b", "M"))
}

func TestLineItem_Subtotal(t *testing.T) {
	item := LineItem{Product: suitProduct(), Size: "M", Quantity: 3}
	assert.Equal(t, int64(597), item.Subtotal())
}
