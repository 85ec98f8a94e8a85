package messaging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Dispatcher wraps every outbound reply in failure-tolerant delivery: it tries
// the reply token first, falls back to push when the token has expired, and
// logs instead of raising on any transport failure.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(sender Sender, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		sender: sender,
		log:    log,
	}
}

// Deliver sends messages to the user, truncating oversized texts first.
// Returns true when some delivery path succeeded. Transport failures terminate
// here: the caller must never see an error for an undeliverable reply.
func (d *Dispatcher) Deliver(ctx context.Context, replyToken, userID string, messages ...messaging_api.MessageInterface) bool {
	if len(messages) == 0 {
		return true
	}

	messages = truncateAll(messages)

	err := d.sender.Reply(ctx, replyToken, messages)
	if err == nil {
		return true
	}

	if !errors.Is(err, ErrReplyTokenExpired) {
		d.log.Error("reply delivery failed", slog.String("user_id", userID), slog.Any("error", err))
		return false
	}

	d.log.Warn("reply token expired, falling back to push", slog.String("user_id", userID))

	if userID == "" {
		return false
	}

	if err := d.sender.Push(ctx, userID, messages); err != nil {
		d.log.Error("push fallback failed", slog.String("user_id", userID), slog.Any("error", err))
		return false
	}

	return true
}

// ReplyText is a convenience wrapper delivering a single text message.
func (d *Dispatcher) ReplyText(ctx context.Context, replyToken, userID, text string) bool {
	return d.Deliver(ctx, replyToken, userID, messaging_api.TextMessage{Text: text})
}

func truncateAll(messages []messaging_api.MessageInterface) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, len(messages))
	for i, msg := range messages {
		if tm, ok := msg.(messaging_api.TextMessage); ok {
			tm.Text = Truncate(tm.Text)
			out[i] = tm
			continue
		}

		out[i] = msg
	}

	return out
}
