package order

import "context"

// Handoff is the outcome of sending an order to a chat channel: the deep
// link the shopper opens and the message that was (or must be) delivered.
type Handoff struct {
	// Channel is the name of the channel that accepted the hand-off, or
	// empty when none did.
	Channel string `json:"channel"`

	// Link is the deep link the shopper opens to finish the conversation.
	Link string `json:"link,omitempty"`

	// Message is the formatted order message.
	Message string `json:"message"`

	// Delivered reports whether the channel carries the message itself.
	// When false the shopper pastes Message into the chat manually.
	Delivered bool `json:"delivered"`

	// Note carries shopper-facing instructions, like a paste prompt.
	Note string `json:"note,omitempty"`
}

// Channel prepares an order hand-off for one chat destination.
type Channel interface {
	// Name identifies the channel in hand-off results and logs.
	Name() string

	// Send builds the hand-off for the given shopper and message.
	Send(ctx context.Context, userID, message string) (*Handoff, error)
}
