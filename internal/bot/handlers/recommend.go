package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/completion"
	"github.com/wayneshih/threec-bot/internal/policy"
	"github.com/wayneshih/threec-bot/internal/state"
)

const recommendFallback = "目前僅支援3C產品的推薦（例如：手機、筆電、耳機）。請輸入「求推薦」重新選擇裝置類型。"

// refusalMarkers are phrases the model uses when it declines a device type
// the policy already accepted. Any of them triggers the fallback reply.
var refusalMarkers = []string{"不屬於3C", "非3C", "不是3C", "無法推薦"}

// Recommend turns the two collected slots (device type, then requirements
// and budget) into a product recommendation.
type Recommend struct {
	completer  Completer
	classifier *policy.Classifier
	log        *slog.Logger
}

func NewRecommend(completer Completer, classifier *policy.Classifier, log *slog.Logger) *Recommend {
	return &Recommend{completer: completer, classifier: classifier, log: log}
}

func (h *Recommend) Handle(ctx context.Context, req *Request) ([]messaging_api.MessageInterface, error) {
	device := req.Context[state.ContextDeviceType]

	text, err := h.completer.Complete(ctx, completion.Request{
		SystemPrompt: recommendSystemPrompt,
		UserPrompt:   fmt.Sprintf("根據以下需求和預算，請推薦適合的3C產品。裝置類型：%s。需求與預算：%s", device, req.Text),
		Model:        modelSearch,
		WebSearch:    true,
	})
	if err != nil {
		h.log.Error("recommend failed",
			slog.String("user_id", req.UserID),
			slog.String("device_type", device),
			slog.Any("error", err))
		return messages(textMessage(fmt.Sprintf("推薦時發生錯誤：%s", diagnostic(err)))), nil
	}

	// The policy accepted the device type when the slot was collected. If the
	// model still refuses, the refusal text is noise for the user; swap in a
	// short guidance reply instead.
	if h.classifier.IsDeviceType(device) && looksLikeRefusal(text) {
		h.log.Warn("model refused an accepted device type",
			slog.String("user_id", req.UserID),
			slog.String("device_type", device))
		return messages(textMessage(recommendFallback)), nil
	}

	return messages(textMessage(text)), nil
}

func looksLikeRefusal(text string) bool {
	for _, marker := range refusalMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}

	return false
}
