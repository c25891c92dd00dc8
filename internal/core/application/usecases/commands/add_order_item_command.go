package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed = errors.New(
		"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
	)
	ErrItemIsRequired = errors.New("item is required")
)

// AddOrderItemCommand represents a request to append one item to an order
// that is still in draft, on behalf of an authenticated actor.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	item    *order.OrderItem
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add an item to a draft order.
func NewAddOrderItemCommand(orderID kernel.UUID, item *order.OrderItem, actor kernel.Actor) (AddOrderItemCommand, error) {
	itemCommand := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setItem(item),
		itemCommand.setActor(actor),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to modify.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Item returns the item to append.
func (c AddOrderItemCommand) Item() *order.OrderItem {
	return c.item
}

// Actor returns the principal requesting the change.
func (c AddOrderItemCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setItem(item *order.OrderItem) error {
	if item == nil {
		return ErrItemIsRequired
	}
	if err := item.Validate(); err != nil {
		return err
	}

	c.item = item
	return nil
}

func (c *AddOrderItemCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
