package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	errors "github.com/wayneshih/threec-bot/internal/errors"
	"github.com/wayneshih/threec-bot/internal/messaging"
	"github.com/wayneshih/threec-bot/internal/state"
	"github.com/wayneshih/threec-bot/pkg/metrics"
)

// MessageHandler processes one inbound message end to end.
type MessageHandler func(ctx context.Context, msg *Message) error

// Middleware wraps a MessageHandler with cross-cutting behavior.
type Middleware func(MessageHandler) MessageHandler

// Chain applies middlewares around the handler, first listed outermost.
func Chain(h MessageHandler, mws ...Middleware) MessageHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// RecoveryMiddleware catches panics, force-resets the user's conversation
// state so they are never left stuck awaiting input, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, store state.Store, replies *messaging.Dispatcher) Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next MessageHandler) MessageHandler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg *Message) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in message handler",
						slog.String("user_id", msg.UserID),
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())))

					if store != nil {
						state.Cancel(store.Get(msg.UserID))
					}

					if replies != nil {
						replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, panicReply)
					}

					err = nil
				}
			}()

			return next(ctx, msg)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging for
// handler failures. Errors never propagate past it; the webhook response to
// the platform stays 200 regardless.
func ErrorHandlingMiddleware(errHandler *errors.Handler, replies *messaging.Dispatcher) Middleware {
	return func(next MessageHandler) MessageHandler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg *Message) error {
			err := next(ctx, msg)
			if err == nil {
				return nil
			}

			userMsg := ""
			if errHandler != nil {
				userMsg = errHandler.Handle(ctx, err)
			}

			if userMsg != "" && replies != nil {
				replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, userMsg)
			}

			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming messages.
func LoggingMiddleware(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next MessageHandler) MessageHandler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg *Message) error {
			start := time.Now()

			log.Info("handling message",
				slog.String("user_id", msg.UserID),
				slog.String("event_id", msg.EventID),
				slog.String("command", commandLabel(msg.Text)))
			err := next(ctx, msg)
			log.Info("handled message",
				slog.String("user_id", msg.UserID),
				slog.String("event_id", msg.EventID),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err))

			return err
		}
	}
}

// MetricsMiddleware records per-command counters and durations.
func MetricsMiddleware() Middleware {
	return func(next MessageHandler) MessageHandler {
		if next == nil {
			return nil
		}

		return func(ctx context.Context, msg *Message) error {
			start := time.Now()
			err := next(ctx, msg)

			status := "ok"
			if err != nil {
				status = "error"
			}

			metrics.RecordCommand(commandLabel(msg.Text), status, time.Since(start))
			return err
		}
	}
}

// commandLabel collapses free text into a fixed label so metric cardinality
// stays bounded.
func commandLabel(text string) string {
	switch text {
	case CommandLeave, CommandHelp, CommandViewWishlist, CommandClearWishlist, CommandDeclineAdd,
		KeywordSpecQuery, KeywordPriceQuery, KeywordCompare, KeywordRecommend, KeywordRanking, KeywordReview:
		return text
	}

	if strings.HasPrefix(text, CommandRemovePrefix) {
		return CommandRemovePrefix
	}
	if strings.HasPrefix(text, CommandAddPrefix) {
		return CommandAddPrefix
	}

	return "free_text"
}
