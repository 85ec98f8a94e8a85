package bot

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/wayneshih/threec-bot/internal/dedup"
	"github.com/wayneshih/threec-bot/internal/messaging"
	"github.com/wayneshih/threec-bot/internal/ratelimit"
)

// Bot owns the webhook endpoint: it verifies the request signature, unwraps
// text message events, and runs each one through the middleware pipeline.
type Bot struct {
	channelSecret string
	pipeline      MessageHandler
	guard         *dedup.Guard
	limiter       *ratelimit.Limiter
	replies       *messaging.Dispatcher
	log           *slog.Logger
}

func New(channelSecret string, pipeline MessageHandler, guard *dedup.Guard, limiter *ratelimit.Limiter, replies *messaging.Dispatcher, log *slog.Logger) *Bot {
	if log == nil {
		log = slog.Default()
	}

	return &Bot{
		channelSecret: channelSecret,
		pipeline:      pipeline,
		guard:         guard,
		limiter:       limiter,
		replies:       replies,
		log:           log,
	}
}

// Callback is the webhook endpoint. A bad signature is the only protocol
// failure; every internal outcome still answers 200 "OK" so the platform does
// not retry delivery.
func (b *Bot) Callback(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(b.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			b.log.Warn("webhook signature verification failed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b.log.Error("webhook parse failed", slog.Any("error", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	for _, event := range cb.Events {
		msg, ok := textMessageOf(event)
		if !ok {
			continue
		}

		if b.guard != nil && b.guard.Seen(msg.EventID) {
			b.log.Info("duplicate webhook event skipped", slog.String("event_id", msg.EventID))
			continue
		}

		if b.limiter != nil && !b.limiter.Allow(msg.UserID) {
			b.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, rateLimitReply)
			continue
		}

		if err := b.pipeline(ctx, msg); err != nil {
			// The pipeline's error middleware swallows everything; anything
			// arriving here is a wiring fault.
			b.log.Error("message pipeline returned error", slog.Any("error", err))
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// textMessageOf extracts an inbound text turn from a webhook event, if it is
// one.
func textMessageOf(event webhook.EventInterface) (*Message, bool) {
	me, ok := event.(webhook.MessageEvent)
	if !ok {
		return nil, false
	}

	tm, ok := me.Message.(webhook.TextMessageContent)
	if !ok {
		return nil, false
	}

	userID := ""
	switch src := me.Source.(type) {
	case webhook.UserSource:
		userID = src.UserId
	case webhook.GroupSource:
		userID = src.UserId
	case webhook.RoomSource:
		userID = src.UserId
	}

	if userID == "" {
		return nil, false
	}

	return &Message{
		EventID:    me.WebhookEventId,
		UserID:     userID,
		ReplyToken: me.ReplyToken,
		Text:       tm.Text,
	}, true
}
