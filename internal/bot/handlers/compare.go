package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
)

const compareUsage = "請輸入兩個產品型號，以逗號分隔。例如：iPhone 13, Samsung S21"

// Compare contrasts exactly two product models.
type Compare struct {
	completer Completer
	log       *slog.Logger
}

func NewCompare(completer Completer, log *slog.Logger) *Compare {
	return &Compare{completer: completer, log: log}
}

func (h *Compare) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	first, second, ok := splitProducts(req.Text)
	if !ok {
		return messages(textMessage(compareUsage)), nil
	}

	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: compareSystemPrompt,
		UserPrompt:   fmt.Sprintf("請比較%s和%s這兩款產品的優缺點和適用場景", first, second),
		Model:        modelMiniSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("compare failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("比較時發生錯誤：%s", diagnostic(err)))), nil
	}

	return messages(textMessage(text)), nil
}

// splitProducts accepts either the ASCII comma or the full-width comma and
// requires exactly two non-empty fields.
func splitProducts(text string) (string, string, bool) {
	normalized := strings.ReplaceAll(text, "，", ",")
	parts := strings.Split(normalized, ",")
	if len(parts) != 2 {
		return "", "", false
	}

	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])
	if first == "" || second == "" {
		return "", "", false
	}

	return first, second, true
}
