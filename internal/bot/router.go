package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wayneshih/threec-bot/internal/bot/handlers"
	apperrors "github.com/wayneshih/threec-bot/internal/errors"
	"github.com/wayneshih/threec-bot/internal/messaging"
	"github.com/wayneshih/threec-bot/internal/state"
	"github.com/wayneshih/threec-bot/internal/wishlist"
)

// Message is one inbound text turn, already unwrapped from the webhook event.
type Message struct {
	EventID    string
	UserID     string
	ReplyToken string
	Text       string
}

// Router decides the single next action for each inbound message. The
// decision order is a strict contract: expiry sweep, leave, help, wishlist
// commands, in-flow continuation, intent keywords, then the unknown-command
// fallback.
type Router struct {
	store      state.Store
	dispatcher *Dispatcher
	wishlist   *wishlist.Store
	replies    *messaging.Dispatcher
	ttl        time.Duration
	log        *slog.Logger
}

func NewRouter(store state.Store, dispatcher *Dispatcher, wl *wishlist.Store, replies *messaging.Dispatcher, ttl time.Duration, log *slog.Logger) *Router {
	if ttl <= 0 {
		ttl = state.DefaultTTL
	}

	return &Router{
		store:      store,
		dispatcher: dispatcher,
		wishlist:   wl,
		replies:    replies,
		ttl:        ttl,
		log:        log,
	}
}

// Handle routes one message. A non-nil error is a programming or storage
// fault for the surrounding middleware; user-facing outcomes are delivered
// here as chat replies.
func (r *Router) Handle(ctx context.Context, msg *Message) error {
	us := r.store.Get(msg.UserID)

	// Expiry is a side effect only; the message still gets full command
	// handling against the now-idle state.
	if us.IsExpired(r.ttl) {
		r.log.Info("state expired, resetting",
			slog.String("user_id", msg.UserID),
			slog.String("intent", string(us.CurrentIntent)))
		state.Cancel(us)
	}

	text := msg.Text

	if text == CommandLeave {
		state.Cancel(us)
		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, leaveReply)
		return nil
	}

	if text == CommandHelp {
		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, helpMessage)
		return nil
	}

	if handled, err := r.handleWishlistCommand(ctx, msg); handled {
		return err
	}

	if us.AwaitingInput {
		return r.continueFlow(ctx, msg, us)
	}

	if intent, ok := keywordIntents[text]; ok {
		if err := state.Apply(us, intent, true); err != nil {
			return err
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, intentPrompts[intent])
		return nil
	}

	r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, unknownReply)
	return nil
}

// handleWishlistCommand reports whether the text was a wishlist command and,
// if so, handles it. Wishlist commands ignore conversation state entirely.
func (r *Router) handleWishlistCommand(ctx context.Context, msg *Message) (bool, error) {
	text := msg.Text

	switch {
	case text == CommandViewWishlist:
		items, err := r.wishlist.List(msg.UserID)
		if err != nil {
			return true, apperrors.NewStorageError(err)
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, wishlist.FormatList(items))
		return true, nil

	case strings.HasPrefix(text, CommandRemovePrefix):
		name := strings.TrimSpace(strings.TrimPrefix(text, CommandRemovePrefix))
		removed, err := r.wishlist.Remove(msg.UserID, name)
		if err != nil {
			return true, apperrors.NewStorageError(err)
		}

		reply := "已從您的願望清單中移除 '" + name + "'。"
		if !removed {
			reply = "未在您的願望清單中找到 '" + name + "'。"
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, reply)
		return true, nil

	case text == CommandClearWishlist:
		if err := r.wishlist.Clear(msg.UserID); err != nil {
			return true, apperrors.NewStorageError(err)
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, "已清空您的願望清單。")
		return true, nil

	case strings.HasPrefix(text, CommandAddPrefix):
		name := strings.TrimSpace(strings.TrimPrefix(text, CommandAddPrefix))
		added, err := r.wishlist.Add(msg.UserID, name)
		if err != nil {
			return true, apperrors.NewStorageError(err)
		}

		reply := "已將 '" + name + "' 添加到您的願望清單。"
		if !added {
			reply = "產品 '" + name + "' 已在您的願望清單中。"
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, reply)
		return true, nil

	case text == CommandDeclineAdd:
		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, declineAddReply)
		return true, nil
	}

	return false, nil
}

// continueFlow treats the text as the slot value for the current intent.
func (r *Router) continueFlow(ctx context.Context, msg *Message, us *state.UserState) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, intentPrompts[us.CurrentIntent])
		return nil
	}

	// The recommend flow collects two slots; the first turn only stores the
	// device type and asks for the second slot.
	if us.CurrentIntent == state.IntentRecommendType {
		us.SetContext(state.ContextDeviceType, text)
		if err := state.Apply(us, state.IntentRecommend, true); err != nil {
			return err
		}

		r.replies.ReplyText(ctx, msg.ReplyToken, msg.UserID, "請輸入您對"+text+"的需求和預算：")
		return nil
	}

	intent := us.CurrentIntent
	req := &handlers.Request{
		UserID:  msg.UserID,
		Text:    text,
		Context: us.ContextCopy(),
	}

	// The flow ends after the handler runs, whatever the outcome. A handler
	// fault must never leave the user stuck awaiting input.
	defer state.Cancel(us)

	msgs, err := r.dispatcher.Dispatch(ctx, intent, req)
	if err != nil {
		return err
	}

	r.replies.Deliver(ctx, msg.ReplyToken, msg.UserID, msgs...)
	return nil
}
