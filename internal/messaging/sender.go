// Package messaging delivers outbound chat messages over the LINE Messaging
// API with failure-tolerant reply/push semantics.
package messaging

import (
	"context"
	"errors"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	apperrors "github.com/wayneshih/threec-bot/internal/errors"
)

// ErrReplyTokenExpired indicates that the single-use reply token was already
// consumed or has aged out.
var ErrReplyTokenExpired = errors.New("reply token invalid or expired")

// Sender abstracts the messaging transport: a token-scoped synchronous reply
// and a user-scoped push. The LINE SDK performs its own request timeouts, so
// implementations may ignore ctx.
type Sender interface {
	Reply(ctx context.Context, replyToken string, messages []messaging_api.MessageInterface) error
	Push(ctx context.Context, userID string, messages []messaging_api.MessageInterface) error
}

// LineSender implements Sender on top of the LINE Messaging API client.
type LineSender struct {
	api *messaging_api.MessagingApiAPI
}

// NewLineSender builds a LineSender from the channel access token.
func NewLineSender(channelToken string) (*LineSender, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, err
	}

	return &LineSender{api: api}, nil
}

// Reply sends messages against the reply token. A 400 from the API means the
// token is spent or expired and is reported as ErrReplyTokenExpired.
func (s *LineSender) Reply(_ context.Context, replyToken string, messages []messaging_api.MessageInterface) error {
	httpRes, _, err := s.api.ReplyMessageWithHttpInfo(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	if err != nil {
		if httpRes != nil && httpRes.StatusCode == http.StatusBadRequest {
			return ErrReplyTokenExpired
		}
		return apperrors.NewTransportError("reply", err)
	}

	return nil
}

// Push sends messages addressed by user id.
func (s *LineSender) Push(_ context.Context, userID string, messages []messaging_api.MessageInterface) error {
	_, err := s.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       userID,
		Messages: messages,
	}, "")
	if err != nil {
		return apperrors.NewTransportError("push", err)
	}

	return nil
}
