package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// AddOrderItemCommandHandler appends an item to a draft order.
// The new item is checked against the catalog before the order is loaded;
// the aggregate itself rejects the change once the order has left draft.
// Customers may only modify their own orders.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       ports.AvailabilityGate
}

// NewAddOrderItemCommandHandler creates a handler for adding items to draft orders.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, gate ports.AvailabilityGate) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle processes the add-item command and returns the updated order.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := ensureAvailable(ctx, h.gate, []*order.OrderItem{cmd.Item()}); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !cmd.Actor().IsPrivileged() && !aggregate.IsOwnedBy(cmd.Actor()) {
		return nil, errs.NewOperationForbiddenError("modify order items")
	}

	if err = aggregate.AddItem(cmd.Item()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
