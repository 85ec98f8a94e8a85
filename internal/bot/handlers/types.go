// Package handlers implements the six intent handlers. Each one builds a
// fixed system instruction plus a user instruction embedding the slot text,
// calls the completion service, and returns the reply messages. Completion
// failures become chat replies here; they never propagate to the router.
package handlers

import (
	"context"
	"errors"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
	apperrors "github.com/wayneshih/threec-bot/internal/errors"
)

// Request carries one slot-filling turn into an intent handler.
type Request struct {
	UserID string
	Text   string
	// Context is a snapshot of the user's state context bag; handlers must
	// not reach back into the state store.
	Context map[string]string
}

// Handler consumes a slot value and produces the outbound reply messages.
// A non-nil error signals a programming fault, not a completion failure.
type Handler interface {
	Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error)
}

// Completer is the completion-service surface handlers depend on.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// Completion model ids inherited from the original deployment. The mini model
// serves the lookup-style intents; ranking and recommend use the larger
// search model.
const (
	modelMiniSearch = "gpt-4o-mini-search-preview-2025-03-11"
	modelSearch     = "gpt-4o-search-preview"
)

func textMessage(text string) messaging_api.TextMessage {
	return messaging_api.TextMessage{Text: text}
}

func messages(msgs ...messaging_api.MessageInterface) []messaging_api.MessageInterface {
	return msgs
}

// diagnostic returns the short user-facing description embedded in error replies.
func diagnostic(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.UserMessage != "" {
		return appErr.UserMessage
	}

	return "發生未知錯誤"
}
