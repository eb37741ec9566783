package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/stylehaus/storefront/pkg/kafka"
)

type capturingPublisher struct {
	topic  string
	events []*pkgkafka.Event
	err    error
}

func (c *capturingPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	c.topic = topic
	c.events = append(c.events, event)
	return c.err
}

func newTestProducer(pub Publisher) *Producer {
	return NewProducer(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProducer_FavoriteToggle(t *testing.T) {
	pub := &capturingPublisher{}
	p := newTestProducer(pub)

	p.FavoriteToggle(context.Background(), "prod-1", "Classic Pinstripe Suit", "add")

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicTracking, pub.topic)

	evt := pub.events[0]
	assert.Equal(t, EventFavoriteToggle, evt.EventType)
	assert.Equal(t, "prod-1", evt.AggregateID)
	assert.Equal(t, SourceStorefront, evt.Source)

	var payload map[string]string
	require.NoError(t, evt.UnmarshalData(&payload))
	assert.Equal(t, "add", payload["action"])
	assert.Equal(t, "Classic Pinstripe Suit", payload["item_name"])
}

func TestProducer_PurchaseIntentPayload(t *testing.T) {
	pub := &capturingPublisher{}
	p := newTestProducer(pub)

	p.PurchaseIntent(context.Background(), "prod-1", "Suit", 398, "cart")

	require.Len(t, pub.events, 1)

	var payload map[string]string
	require.NoError(t, pub.events[0].UnmarshalData(&payload))
	assert.Equal(t, "398", payload["value"])
	assert.Equal(t, "cart", payload["method"])
}

func TestProducer_PublishFailureIsSwallowed(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	p := newTestProducer(pub)

	assert.NotPanics(t, func() {
		p.AddToCart(context.Background(), "prod-1", "Suit", 199)
		p.PageView(context.Background(), "home")
	})
}

func TestProducer_NilSinkIsSkipped(t *testing.T) {
	var p *Producer

	assert.NotPanics(t, func() {
		p.ProductView(context.Background(), "prod-1", "Suit")
		p.ImageInteraction(context.Background(), "prod-1", 2)
		p.Share(context.Background(), "prod-1", "link")
	})
}
