// Package errors defines the application error taxonomy and retry policy.
package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an error code, an operator-facing message, and the zh-TW
// text shown to the chat user. Retryable marks transient failures that the
// backoff helper may retry.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewValidationError marks malformed user input. Never retried and never sent
// to the completion service.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: msg,
		Severity:    SeverityLow,
		Retryable:   false,
	}
}

// NewCompletionError marks a transient failure of the completion service
// (timeout, connection error, rate limit). Eligible for retry with backoff.
func NewCompletionError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("completion service error: %s", underlying),
		UserMessage: "服務暫時無法使用，請稍後再試",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewCompletionContentError marks a non-transient completion failure such as a
// content policy rejection or an empty response. Never retried.
func NewCompletionContentError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E310",
		Message:     fmt.Sprintf("completion rejected request: %s", underlying),
		UserMessage: "無法處理這個查詢內容，請換個方式描述",
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       cause,
	}
}

// NewTransportError marks a messaging-transport delivery failure. Logged and
// swallowed; the user never sees a raw transport error.
func NewTransportError(op string, cause error) *AppError {
	return &AppError{
		Code:        "E400",
		Message:     fmt.Sprintf("transport %s failed", op),
		UserMessage: "",
		Severity:    SeverityMedium,
		Retryable:   false,
		cause:       cause,
	}
}

// NewStorageError marks a wishlist file read or write failure.
func NewStorageError(cause error) *AppError {
	var underlying string
	if cause != nil {
		underlying = cause.Error()
	}

	return &AppError{
		Code:        "E500",
		Message:     fmt.Sprintf("wishlist storage error: %s", underlying),
		UserMessage: "清單資料暫時無法存取，請稍後再試",
		Severity:    SeverityHigh,
		Retryable:   false,
		cause:       cause,
	}
}
