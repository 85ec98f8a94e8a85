package bot

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayneshih/threec-bot/internal/dedup"
	"github.com/wayneshih/threec-bot/internal/messaging"
)

const testChannelSecret = "test-channel-secret"

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(testChannelSecret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookBody(eventID, userID, text string) string {
	return fmt.Sprintf(`{
		"destination": "U_bot",
		"events": [{
			"type": "message",
			"mode": "active",
			"timestamp": %d,
			"webhookEventId": %q,
			"deliveryContext": {"isRedelivery": false},
			"replyToken": "reply-token",
			"source": {"type": "user", "userId": %q},
			"message": {"type": "text", "id": "m1", "quoteToken": "q1", "text": %q}
		}]
	}`, time.Now().UnixMilli(), eventID, userID, text)
}

type pipelineRecorder struct {
	mu       sync.Mutex
	messages []*Message
}

func (p *pipelineRecorder) handle(_ context.Context, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *pipelineRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func newTestBot(pipeline MessageHandler, guard *dedup.Guard) *Bot {
	replies := messaging.NewDispatcher(&captureSender{}, testLogger())
	return New(testChannelSecret, pipeline, guard, nil, replies, testLogger())
}

func TestBot_Callback_InvalidSignature(t *testing.T) {
	rec := &pipelineRecorder{}
	b := newTestBot(rec.handle, nil)

	body := webhookBody("evt-1", "U1", "說明")
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", "not-a-valid-signature")

	w := httptest.NewRecorder()
	b.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, rec.count())
}

func TestBot_Callback_DispatchesTextMessage(t *testing.T) {
	rec := &pipelineRecorder{}
	b := newTestBot(rec.handle, nil)

	body := webhookBody("evt-1", "U1", "說明")
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("X-Line-Signature", signBody(body))

	w := httptest.NewRecorder()
	b.Callback(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	require.Equal(t, 1, rec.count())
	msg := rec.messages[0]
	assert.Equal(t, "evt-1", msg.EventID)
	assert.Equal(t, "U1", msg.UserID)
	assert.Equal(t, "reply-token", msg.ReplyToken)
	assert.Equal(t, "說明", msg.Text)
}

func TestBot_Callback_SkipsDuplicateEvents(t *testing.T) {
	rec := &pipelineRecorder{}
	b := newTestBot(rec.handle, dedup.NewGuard(time.Minute))

	body := webhookBody("evt-dup", "U1", "說明")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
		req.Header.Set("X-Line-Signature", signBody(body))

		w := httptest.NewRecorder()
		b.Callback(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, rec.count())
}
