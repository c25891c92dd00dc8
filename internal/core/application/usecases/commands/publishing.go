package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// publishStatusEvent emits the lifecycle event that corresponds to the
// order's current status, if one exists. Publishing happens after the state
// change is committed; failures are logged and swallowed so that a broker
// outage never rolls an order back.
func publishStatusEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	topic, ok := order.EventTopicFor(aggregate.Status())
	if !ok {
		return
	}

	if err := publisher.Publish(ctx, topic, order.NewEvent(aggregate)); err != nil {
		logger.Error("failed to publish order event",
			"topic", topic,
			"order_id", aggregate.ID().String(),
			"error", err,
		)
	}
}
