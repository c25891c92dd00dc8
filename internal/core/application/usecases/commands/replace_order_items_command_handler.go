package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ReplaceOrderItemsCommandHandler swaps a draft order's item selection.
// The replacement is all-or-nothing: the old items are only removed in the
// same transaction that writes the new ones. Customers may only modify
// their own orders.
type ReplaceOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       ports.AvailabilityGate
}

// NewReplaceOrderItemsCommandHandler creates a handler for replacing draft order items.
func NewReplaceOrderItemsCommandHandler(
	uowFactory OrderUoWFactory,
	gate ports.AvailabilityGate,
) ReplaceOrderItemsCommandHandler {
	return ReplaceOrderItemsCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle processes the replace-items command and returns the updated order.
func (h *ReplaceOrderItemsCommandHandler) Handle(
	ctx context.Context,
	cmd ReplaceOrderItemsCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := ensureAvailable(ctx, h.gate, cmd.Items()); err != nil {
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

	if err = aggregate.ReplaceItems(cmd.Items()); err != nil {
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
