package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteSet_AddRemoveContains(t *testing.T) {
	var f FavoriteSet

	assert.False(t, f.Contains("p1"))
	assert.True(t, f.Add("p1"))
	assert.True(t, f.Contains("p1"))

	// No duplicates.
	assert.False(t, f.Add("p1"))
	assert.Len(t, f.IDs, 1)

	assert.True(t, f.Remove("p1"))
	assert.False(t, f.Contains("p1"))
	assert.False(t, f.Remove("p1"))
}

func TestFavoriteSet_Toggle(t *testing.T) {
	var f FavoriteSet

	assert.True(t, f.Toggle("p1"), "toggle on empty set adds")
	assert.True(t, f.Contains("p1"))

	assert.False(t, f.Toggle("p1"), "second toggle removes")
	assert.False(t, f.Contains("p1"))
}

func TestFavoriteSet_ToggleIsOwnInverse(t *testing.T) {
	f := FavoriteSet{IDs: []string{"p1", "p2"}}

	for _, id := range []string{"p1", "p3"} {
		before := f.Contains(id)
		f.Toggle(id)
		f.Toggle(id)
		assert.Equal(t, before, f.Contains(id), "double toggle restores membership of %s", id)
	}
}

func TestFavoriteSet_PreservesInsertionOrder(t *testing.T) {
	var f FavoriteSet
	f.Add("p3")
	f.Add("p1")
	f.Add("p2")
	f.Remove("p1")

	assert.Equal(t, []string{"p3", "p2"}, f.IDs)
}
