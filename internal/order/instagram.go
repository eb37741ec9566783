package order

import (
	"context"
	"log/slog"

	apperrors "github.com/stylehaus/storefront/pkg/errors"

	"github.com/stylehaus/storefront/internal/kv"
)

const handoffKeyPrefix = "handoff:"

// PasteNote is the shopper-facing instruction on an Instagram hand-off.
const PasteNote = "Message copied. Please paste it in the Instagram chat."

// InstagramChannel builds ig.me deep links. Instagram cannot prefill a chat,
// so the message is parked under the shopper's key for the storefront to put
// on the clipboard, and the hand-off asks the shopper to paste it.
type InstagramChannel struct {
	username string
	kv       kv.Store
	logger   *slog.Logger
}

// NewInstagramChannel creates the channel for the store's Instagram account.
func NewInstagramChannel(username string, store kv.Store, logger *slog.Logger) *InstagramChannel {
	return &InstagramChannel{
		username: username,
		kv:       store,
		logger:   logger,
	}
}

// Name identifies the channel.
func (c *InstagramChannel) Name() string { return "instagram" }

// Send builds the chat link and parks the message. A failure to park is not
// fatal: the message still travels in the hand-off itself.
func (c *InstagramChannel) Send(ctx context.Context, userID, message string) (*Handoff, error) {
	if c.username == "" {
		return nil, apperrors.Unavailable("instagram channel is not configured")
	}

	if c.kv != nil {
		if err := c.kv.Set(ctx, handoffKeyPrefix+userID, message); err != nil {
			c.logger.WarnContext(ctx, "failed to park hand-off message",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	return &Handoff{
		Channel:   c.Name(),
		Link:      "https://ig.me/m/" + c.username,
		Message:   message,
		Delivered: false,
		Note:      PasteNote,
	}, nil
}
