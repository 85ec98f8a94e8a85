package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
)

// AddToWishlistPrefix is the quick-reply text carrying the product name back
// through the router's wishlist commands.
const AddToWishlistPrefix = "添加到願望清單:"

// DeclineAddText is the quick-reply sentinel for declining the wishlist offer.
const DeclineAddText = "不添加"

// PriceQuery answers price lookups and offers to put the product on the
// user's wishlist via quick-reply buttons.
type PriceQuery struct {
	completer Completer
	log       *slog.Logger
}

func NewPriceQuery(completer Completer, log *slog.Logger) *PriceQuery {
	return &PriceQuery{completer: completer, log: log}
}

func (h *PriceQuery) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: priceQuerySystemPrompt,
		UserPrompt:   fmt.Sprintf("請提供%s在台灣地區的最新價格信息", req.Text),
		Model:        modelMiniSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("price query failed", slog.String("user_id", req.UserID), slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("查詢時發生錯誤：%s", diagnostic(err)))), nil
	}

	offer := messaging_api.TextMessage{
		Text: "是否要將此產品添加到願望清單？",
		QuickReply: &messaging_api.QuickReply{
			Items: []messaging_api.QuickReplyItem{
				{
					Action: &messaging_api.MessageAction{
						Label: "添加到願望清單",
						Text:  AddToWishlistPrefix + req.Text,
					},
				},
				{
					Action: &messaging_api.MessageAction{
						Label: DeclineAddText,
						Text:  DeclineAddText,
					},
				},
			},
		},
	}

	return messages(textMessage(text), offer), nil
}
