package domain

// FavoriteSet is a duplicate-free set of product ids a shopper has marked as
// favorite. Insertion order is preserved for display.
type FavoriteSet struct {
	IDs []string `json:"ids"`
}

// Contains reports whether the given product id is in the set.
func (f *FavoriteSet) Contains(productID string) bool {
	for _, id := range f.IDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Add inserts the product id if absent. Returns true if the set changed.
func (f *FavoriteSet) Add(productID string) bool {
	if f.Contains(productID) {
		return false
	}
	f.IDs = append(f.IDs, productID)
	return true
}

// Remove deletes the product id if present. Returns true if the set changed.
func (f *FavoriteSet) Remove(productID string) bool {
	for i, id := range f.IDs {
		if id == productID {
			f.IDs = append(f.IDs[:i], f.IDs[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds the id if absent and removes it if present. Returns true when
// the id was added.
func (f *FavoriteSet) Toggle(productID string) bool {
	if f.Remove(productID) {
		return false
	}
	f.IDs = append(f.IDs, productID)
	return true
}
