package errors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_Handle_UserMessages(t *testing.T) {
	h := NewHandler(discardLogger(), false)
	ctx := context.Background()

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "completion error", err: NewCompletionError(errors.New("timeout")), want: "服務暫時無法使用，請稍後再試"},
		{name: "content error", err: NewCompletionContentError(errors.New("rejected")), want: "無法處理這個查詢內容，請換個方式描述"},
		{name: "transport error is swallowed", err: NewTransportError("reply", errors.New("down")), want: ""},
		{name: "storage error", err: NewStorageError(errors.New("disk full")), want: "清單資料暫時無法存取，請稍後再試"},
		{name: "plain error falls back to generic text", err: errors.New("boom"), want: genericUserMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, h.Handle(ctx, tc.err))
		})
	}
}

func TestHandler_Handle_WrappedAppError(t *testing.T) {
	h := NewHandler(discardLogger(), false)

	wrapped := NewCompletionError(errors.New("rate limited"))
	err := errors.Join(errors.New("context"), wrapped)

	assert.Equal(t, wrapped.UserMessage, h.Handle(context.Background(), err))
}
