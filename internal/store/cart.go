package store

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/event"
	"github.com/stylehaus/storefront/internal/kv"
)

const cartKeyPrefix = "cart:"

// CartStore manages a shopper's cart. Every mutation persists the full
// collection; a persistence failure is logged and the mutated cart is still
// returned, so the in-memory result stays authoritative for the session.
type CartStore struct {
	kv      kv.Store
	tracker *event.Producer
	logger  *slog.Logger
}

// NewCartStore creates a new cart store.
func NewCartStore(store kv.Store, tracker *event.Producer, logger *slog.Logger) *CartStore {
	return &CartStore{
		kv:      store,
		tracker: tracker,
		logger:  logger,
	}
}

// Get returns the shopper's cart. A missing, corrupt, or unreadable snapshot
// yields an empty cart, never an error.
func (s *CartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	return s.load(ctx, userID), nil
}

// Add puts quantity units of the product in the chosen size into the cart.
// An existing (product, size) line item has its quantity incremented in
// place; a new selection appends at the end.
func (s *CartStore) Add(ctx context.Context, userID string, product domain.Product, size string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if product.ID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if size == "" {
		return nil, apperrors.InvalidInput("size is required")
	}
	if len(product.Sizes) > 0 && !product.HasSize(size) {
		return nil, apperrors.InvalidInput("size " + size + " is not available for this product")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}

	cart := s.load(ctx, userID)

	if idx := cart.FindItemIndex(product.ID, size); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			Product:  product,
			Size:     size,
			Quantity: quantity,
		})
	}

	s.persist(ctx, userID, cart)

	s.tracker.AddToCart(ctx, product.ID, product.Name, product.EffectivePrice())

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", product.ID),
		slog.String("size", size),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// SetQuantity updates the quantity of a line item in place. A quantity of
// zero or less removes the item. Updating an absent item is a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, userID, productID, size string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if quantity <= 0 {
		return s.Remove(ctx, userID, productID, size)
	}

	cart := s.load(ctx, userID)

	idx := cart.FindItemIndex(productID, size)
	if idx < 0 {
		return cart, nil
	}

	cart.Items[idx].Quantity = quantity
	s.persist(ctx, userID, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.String("size", size),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Remove deletes the line item matching the product id and size. Removing an
// absent item is a no-op.
func (s *CartStore) Remove(ctx context.Context, userID, productID, size string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart := s.load(ctx, userID)

	idx := cart.FindItemIndex(productID, size)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	s.persist(ctx, userID, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.String("size", size),
	)

	return cart, nil
}

// Clear empties the shopper's cart.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.kv.Delete(ctx, cartKeyPrefix+userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))
	return nil
}

func (s *CartStore) load(ctx context.Context, userID string) *domain.Cart {
	cart := &domain.Cart{UserID: userID, Items: []domain.LineItem{}}

	found, err := s.kv.Get(ctx, cartKeyPrefix+userID, cart)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load cart, starting empty",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return &domain.Cart{UserID: userID, Items: []domain.LineItem{}}
	}
	if !found {
		return &domain.Cart{UserID: userID, Items: []domain.LineItem{}}
	}

	cart.UserID = userID
	return cart
}

func (s *CartStore) persist(ctx context.Context, userID string, cart *domain.Cart) {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.kv.Set(ctx, cartKeyPrefix+userID, cart); err != nil {
		// The in-memory cart remains authoritative for this session.
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
