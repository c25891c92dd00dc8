package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrShopIDIsRequired = errors.New("shop id is required")
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to place a new order.
// Encapsulates the shop, the customer (nil for guest checkouts), an optional
// payment method to charge immediately, and the item selection.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "shop-42", &userID, &method, items)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed with status %s", placed.ID(), placed.Status())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	shopID        string
	userID        *string
	paymentMethod *string
	items         []*order.OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, the shop ID is not empty, and at
// least one well-formed item is present. Returns an error if any validation
// fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	shopID string,
	userID *string,
	paymentMethod *string,
	items []*order.OrderItem,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		userID:        userID,
		paymentMethod: paymentMethod,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setShopID(shopID),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShopID returns the identifier of the shop the order is placed with.
func (c CreateOrderCommand) ShopID() string {
	return c.shopID
}

// UserID returns the identifier of the ordering customer, or nil for a
// guest checkout.
func (c CreateOrderCommand) UserID() *string {
	return c.userID
}

// PaymentMethod returns the payment method to charge during placement,
// or nil when the order should stay unpaid.
func (c CreateOrderCommand) PaymentMethod() *string {
	return c.paymentMethod
}

// Items returns the requested item selection.
func (c CreateOrderCommand) Items() []*order.OrderItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setShopID(shopID string) error {
	if shopID == "" {
		return ErrShopIDIsRequired
	}

	c.shopID = shopID
	return nil
}

func (c *CreateOrderCommand) setItems(items []*order.OrderItem) error {
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
