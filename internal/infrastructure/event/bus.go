package event

import (
	"context"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers receiving-domain events (receipt created,
// line added, stock received, debt accrued) to subscribed handlers in
// the publishing goroutine. The ledger publishes only after its
// transaction commits, so handlers never observe rolled-back state.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a bus with an empty registry.
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{registry: NewHandlerRegistry(), logger: logger}
}

// Publish delivers each event to every matching handler. A failing or
// panicking handler is logged and skipped; delivery to the remaining
// handlers continues, and the publisher is never failed.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, h := range b.registry.GetHandlers(evt.EventType()) {
			if err := b.deliver(ctx, h, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Explicit event types take precedence;
// otherwise the handler's own EventTypes() decide, and an empty list
// subscribes it to everything.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every subscription.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("event handler unsubscribed")
}

func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, evt)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
