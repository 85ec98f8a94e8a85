package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	err error
}

func (s staticCheck) HealthCheck(context.Context) error { return s.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChecker_Check(t *testing.T) {
	c := NewChecker(testLogger())
	c.AddCheck("good", staticCheck{})
	c.AddCheck("bad", staticCheck{err: errors.New("down")})

	results := c.Check(context.Background())

	assert.Equal(t, "OK", results["good"])
	assert.Equal(t, "down", results["bad"])
}

func TestChecker_Handler_StatusCodes(t *testing.T) {
	c := NewChecker(testLogger())
	c.AddCheck("good", staticCheck{})

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	c.AddCheck("bad", staticCheck{err: errors.New("down")})

	w = httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWishlistDirChecker(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, NewWishlistDirChecker(dir).HealthCheck(context.Background()))
	assert.Error(t, NewWishlistDirChecker("").HealthCheck(context.Background()))
}
