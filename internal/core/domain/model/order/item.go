package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrSelectedOptionIsNotConstructed is returned when a SelectedOption was
	// not created through NewSelectedOption.
	ErrSelectedOptionIsNotConstructed = errors.New(
		"SelectedOption must be created via NewSelectedOption constructor",
	)

	// ErrOrderItemIsNotConstructed is returned when an OrderItem was not
	// created through NewOrderItem.
	ErrOrderItemIsNotConstructed = errors.New(
		"OrderItem must be created via NewOrderItem constructor",
	)
)

// SelectedOption is an option chosen for an order item, such as an extra
// topping. Its surcharge is applied once per unit of the parent item's
// quantity. SelectedOption is a value object owned by exactly one OrderItem;
// options are only ever replaced as whole sets.
type SelectedOption struct {
	name            string
	additionalPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewSelectedOption creates a SelectedOption with a non-empty name.
// The surcharge may be zero.
func NewSelectedOption(name string, additionalPrice kernel.Money) (SelectedOption, error) {
	if name == "" {
		return SelectedOption{}, errs.NewValueIsRequiredError("option name")
	}

	return SelectedOption{
		name:            name,
		additionalPrice: additionalPrice,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the option was created through the constructor.
func (o SelectedOption) Validate() error {
	return o.guard.Validate(ErrSelectedOptionIsNotConstructed)
}

// Name returns the option label.
func (o SelectedOption) Name() string {
	return o.name
}

// AdditionalPrice returns the per-unit surcharge of the option.
func (o SelectedOption) AdditionalPrice() kernel.Money {
	return o.additionalPrice
}

// OrderItem is a line item owned by exactly one Order. It references a
// catalog entity (dish or composite menu) by id only; the unit price is
// captured at order time and never re-read from the catalog, so later
// catalog price changes cannot alter an existing order.
//
// OrderItem enforces these invariants:
//   - itemID references a catalog entity and must not be empty
//   - quantity must be positive
//   - all selected options are valid value objects
type OrderItem struct {
	itemID          string
	quantity        int
	unitPrice       kernel.Money
	selectedOptions []SelectedOption

	guard guard.ConstructorGuard
}

// NewOrderItem creates an OrderItem with validation. This is the only way to
// create a valid item; quantity must be greater than zero.
func NewOrderItem(
	itemID string,
	quantity int,
	unitPrice kernel.Money,
	selectedOptions []SelectedOption,
) (*OrderItem, error) {
	if itemID == "" {
		return nil, errs.NewValueIsRequiredError("itemId")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	for _, option := range selectedOptions {
		if err := option.Validate(); err != nil {
			return nil, err
		}
	}

	return &OrderItem{
		itemID:          itemID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		selectedOptions: append([]SelectedOption(nil), selectedOptions...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through the constructor.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ItemID returns the catalog reference of the item.
func (i *OrderItem) ItemID() string {
	return i.itemID
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at order time.
func (i *OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// SelectedOptions returns a copy of the item's option set.
func (i *OrderItem) SelectedOptions() []SelectedOption {
	return append([]SelectedOption(nil), i.selectedOptions...)
}

// Total returns the line total:
// (unitPrice + sum of option surcharges) × quantity.
func (i *OrderItem) Total() kernel.Money {
	perUnit := i.unitPrice
	for _, option := range i.selectedOptions {
		perUnit = perUnit.Add(option.AdditionalPrice())
	}
	return perUnit.MultiplyBy(i.quantity)
}
