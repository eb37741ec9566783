package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProduct_EffectivePrice(t *testing.T) {
	p := Product{SellingPrice: 500}
	assert.Equal(t, int64(500), p.EffectivePrice())

	p.DiscountedPrice = int64Ptr(199)
	assert.Equal(t, int64(199), p.EffectivePrice())
}

func TestProduct_HasSize(t *testing.T) {
	p := Product{Sizes: []string{"XS", "S", "M", "L", "XL"}}

	assert.True(t, p.HasSize("M"))
	assert.True(t, p.HasSize("m"), "size match is case-insensitive")
	assert.True(t, p.HasSize("xl"))
	assert.False(t, p.HasSize("XXL"))

	empty := Product{}
	assert.False(t, empty.HasSize("M"))
}

func TestValidSortField(t *testing.T) {
	for _, f := range []string{"price", "popularity", "created", "name"} {
		assert.True(t, ValidSortField(f), f)
	}
	assert.False(t, ValidSortField("rating"))
	assert.False(t, ValidSortField(""))
}
