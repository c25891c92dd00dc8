package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventPublisher emits order lifecycle events to the message broker.
// Publishing happens after the state change is committed; a publish failure
// is logged and swallowed by callers, never rolling the order back.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event order.Event) error
}
