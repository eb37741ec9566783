package store

import (
	"context"
	"log/slog"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/event"
	"github.com/stylehaus/storefront/internal/kv"
)

const favoritesKeyPrefix = "favorites:"

// FavoritesStore manages a shopper's favorite product ids. Each mutation
// persists the set and emits a tracking event; tracking never blocks or fails
// the operation.
type FavoritesStore struct {
	kv      kv.Store
	tracker *event.Producer
	logger  *slog.Logger
}

// NewFavoritesStore creates a new favorites store.
func NewFavoritesStore(store kv.Store, tracker *event.Producer, logger *slog.Logger) *FavoritesStore {
	return &FavoritesStore{
		kv:      store,
		tracker: tracker,
		logger:  logger,
	}
}

// List returns the shopper's favorite set, empty when nothing is stored.
func (s *FavoritesStore) List(ctx context.Context, userID string) (*domain.FavoriteSet, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.load(ctx, userID), nil
}

// Contains reports whether the product is in the shopper's favorites.
func (s *FavoritesStore) Contains(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, apperrors.InvalidInput("user id is required")
	}
	return s.load(ctx, userID).Contains(productID), nil
}

// Add marks the product as favorite. Adding an existing favorite is a no-op.
func (s *FavoritesStore) Add(ctx context.Context, userID, productID, productName string) (*domain.FavoriteSet, error) {
	if err := validateFavoriteArgs(userID, productID); err != nil {
		return nil, err
	}

	set := s.load(ctx, userID)
	if set.Add(productID) {
		s.persist(ctx, userID, set)
		s.tracker.FavoriteToggle(ctx, productID, productName, "add")
	}
	return set, nil
}

// Remove unmarks the product. Removing an absent favorite is a no-op.
func (s *FavoritesStore) Remove(ctx context.Context, userID, productID, productName string) (*domain.FavoriteSet, error) {
	if err := validateFavoriteArgs(userID, productID); err != nil {
		return nil, err
	}

	set := s.load(ctx, userID)
	if set.Remove(productID) {
		s.persist(ctx, userID, set)
		s.tracker.FavoriteToggle(ctx, productID, productName, "remove")
	}
	return set, nil
}

// Toggle flips the product's favorite membership and returns whether it is
// now a favorite.
func (s *FavoritesStore) Toggle(ctx context.Context, userID, productID, productName string) (bool, *domain.FavoriteSet, error) {
	if err := validateFavoriteArgs(userID, productID); err != nil {
		return false, nil, err
	}

	set := s.load(ctx, userID)
	added := set.Toggle(productID)
	s.persist(ctx, userID, set)

	action := "remove"
	if added {
		action = "add"
	}
	s.tracker.FavoriteToggle(ctx, productID, productName, action)

	s.logger.InfoContext(ctx, "favorite toggled",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.String("action", action),
	)

	return added, set, nil
}

func validateFavoriteArgs(userID, productID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	return nil
}

func (s *FavoritesStore) load(ctx context.Context, userID string) *domain.FavoriteSet {
	set := &domain.FavoriteSet{IDs: []string{}}

	found, err := s.kv.Get(ctx, favoritesKeyPrefix+userID, set)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load favorites, starting empty",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return &domain.FavoriteSet{IDs: []string{}}
	}
	if !found {
		return &domain.FavoriteSet{IDs: []string{}}
	}
	return set
}

func (s *FavoritesStore) persist(ctx context.Context, userID string, set *domain.FavoriteSet) {
	if err := s.kv.Set(ctx, favoritesKeyPrefix+userID, set); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist favorites",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
