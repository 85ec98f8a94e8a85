// Package completion wraps the OpenAI chat-completion API used by the intent
// handlers. Requests carry a system prompt, a user prompt, a model id, a token
// budget, and a web-search flag; the response is a single text completion.
package completion

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	apperrors "github.com/wayneshih/threec-bot/internal/errors"
	"github.com/wayneshih/threec-bot/pkg/metrics"
)

// DefaultMaxTokens is the per-request token budget inherited from the
// original deployment.
const DefaultMaxTokens int64 = 1000

// Request describes one completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int64
	WebSearch    bool
}

// chatCompleter is the minimal surface of the OpenAI SDK used by the client.
type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client issues chat completions with a bounded timeout and retries transient
// failures with exponential backoff. Content-level rejections are never retried.
type Client struct {
	chat chatCompleter
	log  *slog.Logger
}

// NewClient builds a Client talking to the OpenAI API with the given credential
// and per-request timeout.
func NewClient(apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	cli := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	)

	return &Client{
		chat: &cli.Chat.Completions,
		log:  log,
	}
}

// Complete performs the completion call and returns the model text. Errors are
// typed *errors.AppError values; callers turn them into chat replies.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Model:     openai.ChatModel(req.Model),
		MaxTokens: openai.Int(maxTokens),
	}

	if req.WebSearch {
		params.WebSearchOptions = openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		}
	}

	var text string
	err := apperrors.WithRetry(ctx, func() error {
		start := time.Now()
		resp, err := c.chat.New(ctx, params)
		if err != nil {
			c.log.Warn("completion request failed",
				slog.String("model", req.Model),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)
			return classify(err)
		}

		if len(resp.Choices) == 0 {
			return apperrors.NewCompletionContentError(errors.New("no choices returned"))
		}

		text = resp.Choices[0].Message.Content
		c.log.Debug("completion request succeeded",
			slog.String("model", req.Model),
			slog.Duration("duration", time.Since(start)),
		)
		return nil
	})
	if err != nil {
		metrics.RecordCompletion(req.Model, "error")
		return "", err
	}

	metrics.RecordCompletion(req.Model, "ok")
	return text, nil
}

// classify sorts SDK errors into the retryable and non-retryable buckets.
// Timeouts, connection failures, rate limits, and server errors are transient;
// everything else is a content-level rejection.
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout,
			apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return apperrors.NewCompletionError(err)
		default:
			return apperrors.NewCompletionContentError(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewCompletionError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.NewCompletionError(err)
	}

	return apperrors.NewCompletionError(err)
}
