package services

import (
	"context"
	"log/slog"
	"strings"

	"servicios/internal/amqp"
	"servicios/internal/core"
)

// EventPublisher is satisfied by *amqp.Client. A nil publisher disables
// events.
type EventPublisher interface {
	Publish(ctx context.Context, e amqp.Event) error
}

// publish never fails the caller: the write already succeeded.
func publish(ctx context.Context, p EventPublisher, e amqp.Event) {
	if p == nil {
		slog.DebugContext(ctx, "No event publisher, skipping event", "type", e.Type)
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event",
			"type", e.Type,
			"entity_id", e.EntityID,
			"error", err)
	}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return core.ErrMissingUser
	}
	return nil
}
