package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrReplaceOrderItemsCommandIsNotConstructed = errors.New(
	"ReplaceOrderItemsCommand must be created via NewReplaceOrderItemsCommand constructor",
)

// ReplaceOrderItemsCommand represents a request to swap the whole item
// selection of a draft order for a new one, on behalf of an authenticated
// actor.
type ReplaceOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []*order.OrderItem
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewReplaceOrderItemsCommand creates a command to replace a draft order's items.
// The new selection must contain at least one well-formed item.
func NewReplaceOrderItemsCommand(
	orderID kernel.UUID,
	items []*order.OrderItem,
	actor kernel.Actor,
) (ReplaceOrderItemsCommand, error) {
	itemsCommand := ReplaceOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemsCommand.setOrderID(orderID),
		itemsCommand.setItems(items),
		itemsCommand.setActor(actor),
	); err != nil {
		return ReplaceOrderItemsCommand{}, err
	}

	return itemsCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReplaceOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrReplaceOrderItemsCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to modify.
func (c ReplaceOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the replacement item selection.
func (c ReplaceOrderItemsCommand) Items() []*order.OrderItem {
	return c.items
}

// Actor returns the principal requesting the change.
func (c ReplaceOrderItemsCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ReplaceOrderItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReplaceOrderItemsCommand) setItems(items []*order.OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}

func (c *ReplaceOrderItemsCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
