package event

import (
	"sync"

	"github.com/erp/warehouse-bot/internal/domain/shared"
)

// HandlerRegistry tracks which handlers receive which event types.
// Handlers registered without types land in the catch-all list; the
// logging subscriber in cmd/server lives there.
type HandlerRegistry struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	catchAll []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byType: make(map[string][]shared.EventHandler)}
}

// Register subscribes a handler to the given event types, or to all
// events when none are given.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.catchAll = append(r.catchAll, handler)
		return
	}
	for _, t := range eventTypes {
		r.byType[t] = append(r.byType[t], handler)
	}
}

// Unregister drops a handler from every list it appears in.
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catchAll = without(r.catchAll, handler)
	for t, handlers := range r.byType {
		if kept := without(handlers, handler); len(kept) > 0 {
			r.byType[t] = kept
		} else {
			delete(r.byType, t)
		}
	}
}

// GetHandlers returns the typed handlers for eventType followed by the
// catch-all handlers.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(r.catchAll))
	out = append(out, typed...)
	return append(out, r.catchAll...)
}

func without(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	kept := handlers[:0:0]
	for _, h := range handlers {
		if h != target {
			kept = append(kept, h)
		}
	}
	return kept
}
