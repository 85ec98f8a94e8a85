package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/wayneshih/threec-bot/internal/bot/handlers"
	"github.com/wayneshih/threec-bot/internal/state"
)

// Dispatcher maps intents to their handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[state.Intent]handlers.Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[state.Intent]handlers.Handler)}
}

// Register binds an intent to a handler, replacing any previous binding.
func (d *Dispatcher) Register(intent state.Intent, h handlers.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[intent] = h
}

// Dispatch invokes the handler registered for the intent. An unregistered
// intent is a wiring fault and comes back as an error.
func (d *Dispatcher) Dispatch(ctx context.Context, intent state.Intent, req *handlers.Request) ([]messaging_api.MessageInterface, error) {
	d.mu.RLock()
	h, ok := d.handlers[intent]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for intent %q", intent)
	}

	return h.Handle(ctx, req)
}
