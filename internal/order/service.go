package order

import (
	"context"
	"log/slog"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/domain"
	"github.com/stylehaus/storefront/internal/event"
)

// Service sends orders to the store over chat channels. The primary channel
// is tried first; on failure the secondary is tried exactly once. Only when
// both fail does the operation error, and even then the formatted message is
// returned so the shopper can send it manually.
type Service struct {
	formatter *Formatter
	primary   Channel
	secondary Channel
	tracker   *event.Producer
	logger    *slog.Logger
}

// NewService creates an order hand-off service.
func NewService(formatter *Formatter, primary, secondary Channel, tracker *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		formatter: formatter,
		primary:   primary,
		secondary: secondary,
		tracker:   tracker,
		logger:    logger,
	}
}

// SendOrder hands the whole cart to the store.
func (s *Service) SendOrder(ctx context.Context, userID string, items []domain.LineItem, profile *domain.UserProfile) (*Handoff, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	message := s.formatter.OrderMessage(items, profile)
	handoff, err := s.send(ctx, userID, message)
	if err != nil {
		return handoff, err
	}

	var total int64
	for i := range items {
		total += items[i].Subtotal()
	}
	s.tracker.PurchaseIntent(ctx, items[0].Product.ID, items[0].Product.Name, total, "cart")

	return handoff, nil
}

// BuyNow hands a single product to the store, skipping the cart.
func (s *Service) BuyNow(ctx context.Context, userID string, product domain.Product, size string, profile *domain.UserProfile) (*Handoff, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if size == "" {
		return nil, apperrors.InvalidInput("size is required")
	}
	if len(product.Sizes) > 0 && !product.HasSize(size) {
		return nil, apperrors.InvalidInput("size " + size + " is not available for this product")
	}

	message := s.formatter.QuickBuyMessage(product, size, profile)
	handoff, err := s.send(ctx, userID, message)
	if err != nil {
		return handoff, err
	}

	s.tracker.PurchaseIntent(ctx, product.ID, product.Name, product.EffectivePrice(), "buy_now")

	return handoff, nil
}

// send tries the primary channel, then the secondary exactly once. On total
// failure the returned hand-off still carries the message.
func (s *Service) send(ctx context.Context, userID, message string) (*Handoff, error) {
	handoff, err := s.primary.Send(ctx, userID, message)
	if err == nil {
		s.logger.InfoContext(ctx, "order handed off",
			slog.String("user_id", userID),
			slog.String("channel", handoff.Channel),
		)
		return handoff, nil
	}

	s.logger.WarnContext(ctx, "primary hand-off channel failed, trying secondary",
		slog.String("user_id", userID),
		slog.String("channel", s.primary.Name()),
		slog.String("error", err.Error()),
	)

	handoff, err = s.secondary.Send(ctx, userID, message)
	if err == nil {
		s.logger.InfoContext(ctx, "order handed off",
			slog.String("user_id", userID),
			slog.String("channel", handoff.Channel),
		)
		return handoff, nil
	}

	s.logger.ErrorContext(ctx, "all hand-off channels failed",
		slog.String("user_id", userID),
		slog.String("error", err.Error()),
	)

	return &Handoff{Message: message, Delivered: false},
		apperrors.HandoffFailed("could not reach WhatsApp or Instagram; send the message manually")
}
