// Package kv defines the persistence contract shared by the cart, favorites,
// and profile stores. Each store owns a distinct key per shopper, so
// concurrent mutation of different stores never conflicts on the same key.
package kv

import "context"

// Store is a JSON key-value persistence layer for shopper state snapshots.
type Store interface {
	// Get reads the value at key into dest. It returns false when the key is
	// absent or the stored bytes cannot be decoded; corrupt data is treated
	// as absence, never as an error the caller must handle.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set writes the JSON encoding of value at key, replacing any previous
	// snapshot.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
