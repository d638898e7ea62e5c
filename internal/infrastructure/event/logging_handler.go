package event

import (
	"context"

	"github.com/erp/warehouse-bot/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingEventHandler writes an info log line for every published event.
// Subscribed with no explicit types it receives all events.
type LoggingEventHandler struct {
	logger *zap.Logger
}

// NewLoggingEventHandler creates a new LoggingEventHandler
func NewLoggingEventHandler(logger *zap.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice: this handler receives all events
func (h *LoggingEventHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*LoggingEventHandler)(nil)
