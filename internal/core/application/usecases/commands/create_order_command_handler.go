package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Checks item availability against the catalog, optionally charges the order
// through the payment processor, persists it, and publishes a lifecycle
// event when the payment settles immediately.
//
// Lifecycle on placement:
//   - every order is persisted in "draft" status with a computed total;
//   - when a payment method is supplied and the charge completes, the order
//     is confirmed in the same transaction and an event is published after
//     commit;
//   - a failed or pending charge leaves the order in draft, with the
//     attempt recorded on the aggregate.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       ports.AvailabilityGate
	payments   ports.PaymentProcessor
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gate ports.AvailabilityGate,
	payments ports.PaymentProcessor,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		payments:   payments,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order placement command.
// Returns the placed order so callers can render it, or ErrItemsUnavailable
// when the catalog rejects the selection.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := ensureAvailable(ctx, h.gate, cmd.Items()); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.ShopID(), cmd.UserID(), cmd.Items())
	if err != nil {
		return nil, err
	}

	if cmd.PaymentMethod() != nil {
		if err = h.chargeOrder(ctx, aggregate, *cmd.PaymentMethod()); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishStatusEvent(ctx, h.publisher, h.logger, aggregate)

	return aggregate, nil
}

// chargeOrder runs the payment attempt and records its outcome on the
// aggregate. A processor error is recorded as a failed payment, not
// returned: the order is still placed, just left unpaid.
func (h *CreateOrderCommandHandler) chargeOrder(ctx context.Context, aggregate *order.Order, method string) error {
	result, err := h.payments.ProcessPayment(ctx, aggregate.ID(), aggregate.Total(), method)
	if err != nil {
		h.logger.Warn("payment attempt failed",
			"order_id", aggregate.ID().String(),
			"method", method,
			"error", err,
		)
		return aggregate.RecordPayment(method, order.PaymentFailed, "")
	}

	if err = aggregate.RecordPayment(method, result.Status, result.TransactionID); err != nil {
		return err
	}

	if result.Status == order.PaymentCompleted {
		return aggregate.Confirm()
	}

	return nil
}
