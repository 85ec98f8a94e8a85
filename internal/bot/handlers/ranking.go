package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
)

// Ranking lists the five most popular products of a category.
type Ranking struct {
	completer Completer
	log       *slog.Logger
}

func NewRanking(completer Completer, log *slog.Logger) *Ranking {
	return &Ranking{completer: completer, log: log}
}

func (h *Ranking) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: rankingSystemPrompt,
		UserPrompt:   fmt.Sprintf("請提供台灣地區最熱門的前五名%s排行榜", req.Text),
		Model:        modelSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("ranking failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("查詢排行時發生錯誤：%s", diagnostic(err)))), nil
	}

	return messages(textMessage(text)), nil
}
