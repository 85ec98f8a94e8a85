package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
)

// SpecQuery answers device specification lookups.
type SpecQuery struct {
	completer Completer
	log       *slog.Logger
}

func NewSpecQuery(completer Completer, log *slog.Logger) *SpecQuery {
	return &SpecQuery{completer: completer, log: log}
}

func (h *SpecQuery) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: specQuerySystemPrompt,
		UserPrompt:   fmt.Sprintf("請提供%s的詳細規格信息", req.Text),
		Model:        modelMiniSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("spec query failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("查詢時發生錯誤：%s", diagnostic(err)))), nil
	}

	return messages(textMessage(text)), nil
}
