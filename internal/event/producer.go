package event

import (
	"context"
	"log/slog"
	"strconv"

	pkgkafka "github.com/stylehaus/storefront/pkg/kafka"
)

// Tracking event topic and type constants.
const (
	TopicTracking = "storefront.tracking.events"

	EventPageView         = "page_view"
	EventProductView      = "view_item"
	EventAddToCart        = "add_to_cart"
	EventPurchaseIntent   = "purchase_intent"
	EventShare            = "share"
	EventFavoriteToggle   = "favorite_toggle"
	EventImageInteraction = "image_interaction"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// Publisher is the subset of the Kafka producer used by the tracking sink.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes tracking events. All methods are fire-and-forget: a
// publish failure is logged and never propagated to the caller, and a nil
// Producer (sink unavailable) silently drops every event.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a tracking event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PageView records a page view.
func (p *Producer) PageView(ctx context.Context, page string) {
	p.emit(ctx, EventPageView, page, "page", map[string]string{
		"page": page,
	})
}

// ProductView records a product detail view.
func (p *Producer) ProductView(ctx context.Context, productID, name string) {
	p.emit(ctx, EventProductView, productID, "product", map[string]string{
		"item_id":   productID,
		"item_name": name,
	})
}

// AddToCart records an add-to-cart action with the effective unit price.
func (p *Producer) AddToCart(ctx context.Context, productID, name string, price int64) {
	p.emit(ctx, EventAddToCart, productID, "product", map[string]string{
		"item_id":   productID,
		"item_name": name,
		"value":     strconv.FormatInt(price, 10),
	})
}

// PurchaseIntent records an order hand-off attempt. Method is "buy_now" or "cart".
func (p *Producer) PurchaseIntent(ctx context.Context, productID, name string, value int64, method string) {
	p.emit(ctx, EventPurchaseIntent, productID, "order", map[string]string{
		"item_id":   productID,
		"item_name": name,
		"value":     strconv.FormatInt(value, 10),
		"method":    method,
	})
}

// Share records a product share action.
func (p *Producer) Share(ctx context.Context, productID, method string) {
	p.emit(ctx, EventShare, productID, "product", map[string]string{
		"item_id": productID,
		"method":  method,
	})
}

// FavoriteToggle records a favorite add or remove. Action is "add" or "remove".
func (p *Producer) FavoriteToggle(ctx context.Context, productID, name, action string) {
	p.emit(ctx, EventFavoriteToggle, productID, "product", map[string]string{
		"item_id":   productID,
		"item_name": name,
		"action":    action,
	})
}

// ImageInteraction records a gallery image view on a product page.
func (p *Producer) ImageInteraction(ctx context.Context, productID string, imageIndex int) {
	p.emit(ctx, EventImageInteraction, productID, "product", map[string]string{
		"item_id":     productID,
		"image_index": strconv.Itoa(imageIndex),
	})
}

func (p *Producer) emit(ctx context.Context, eventType, aggregateID, aggregateType string, payload map[string]string) {
	if p == nil || p.kafka == nil {
		return
	}

	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, SourceStorefront, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build tracking event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.kafka.Publish(ctx, TopicTracking, evt); err != nil {
		p.logger.WarnContext(ctx, "dropping tracking event",
			slog.String("event_type", eventType),
			slog.String("aggregate_id", aggregateID),
			slog.String("error", err.Error()),
		)
	}
}
