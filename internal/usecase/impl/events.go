package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/lifecycle"
	"coursemart/internal/domain/service"

	"github.com/google/uuid"
)

// publishEvent sends a committed state change. Failures are logged and never
// returned because the change it describes is already durable.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, attributes map[string]string) {
	if publisher == nil {
		return
	}

	event := &service.DomainEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: time.Now().UTC(),
		Attributes: attributes,
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if err := publisher.Publish(publishCtx, event); err != nil {
		logger.Error("Failed to publish event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID),
			slog.Any("error", err),
		)
	}
}
