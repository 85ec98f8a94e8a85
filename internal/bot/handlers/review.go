package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
)

// Review summarizes professional reviews for a product model.
type Review struct {
	completer Completer
	log       *slog.Logger
}

func NewReview(completer Completer, log *slog.Logger) *Review {
	return &Review{completer: completer, log: log}
}

func (h *Review) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: reviewSystemPrompt,
		UserPrompt:   fmt.Sprintf("請提供%s的專業評價摘要和兩個專業評測的網頁鏈結", req.Text),
		Model:        modelMiniSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("review failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("查詢評價時發生錯誤：%s", diagnostic(err)))), nil
	}

	return messages(textMessage(text)), nil
}
