package order

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/stylehaus/storefront/pkg/errors"
)

// WhatsAppChannel builds wa.me deep links that open a chat with the store
// with the order message prefilled.
type WhatsAppChannel struct {
	number string
}

// NewWhatsAppChannel creates the channel for the store's WhatsApp number.
// The number may carry a leading + and separators; they are stripped for the
// wa.me link.
func NewWhatsAppChannel(number string) *WhatsAppChannel {
	return &WhatsAppChannel{number: sanitizeNumber(number)}
}

// Name identifies the channel.
func (c *WhatsAppChannel) Name() string { return "whatsapp" }

// Send builds the prefilled chat link. WhatsApp carries the message in the
// link itself, so the hand-off is delivered.
func (c *WhatsAppChannel) Send(_ context.Context, _ string, message string) (*Handoff, error) {
	if c.number == "" {
		return nil, apperrors.Unavailable("whatsapp channel is not configured")
	}

	return &Handoff{
		Channel:   c.Name(),
		Link:      "https://wa.me/" + c.number + "?text=" + url.QueryEscape(message),
		Message:   message,
		Delivered: true,
	}, nil
}

func sanitizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
