package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order in the system. It is the aggregate root
// that owns the order's line items and drives the lifecycle from draft
// through confirmation to readiness.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a fulfilling storefront
//   - total always equals CalculateTotal over the current item set
//   - Items may be added or replaced only while the order is in Draft,
//     and only as whole sets
//   - Status transitions follow the transition table and never regress
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// shopID identifies the fulfilling storefront, immutable after creation
	shopID string

	// userID identifies the placing customer; nil for guest orders
	userID *string

	// status is the current state in the order lifecycle
	status Status

	// total is the order total, recomputed on every item mutation
	total kernel.Money

	// payment adapter outputs
	paymentMethod *string
	paymentStatus PaymentStatus
	transactionID *string

	// items is the ordered item set, owned exclusively by this order
	items []*OrderItem

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Draft status with a pending payment and a
// total computed from the given item set. This is the only way to create a
// valid new Order.
//
// The item set must not be empty: an order exists to order something, and an
// empty set would make the total invariant vacuous.
func NewOrder(id kernel.UUID, shopID string, userID *string, items []*OrderItem) (*Order, error) {
	order := &Order{
		status:        Draft,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setShopID(shopID),
		order.setUserID(userID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. The total is
// recomputed from the item set rather than trusted from storage, so the
// pricing invariant holds for every aggregate in memory.
func RestoreOrder(
	id kernel.UUID,
	shopID string,
	userID *string,
	status Status,
	paymentMethod *string,
	paymentStatus PaymentStatus,
	transactionID *string,
	items []*OrderItem,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}

	order, err := NewOrder(id, shopID, userID, items)
	if err != nil {
		return nil, err
	}

	order.status = status
	order.paymentMethod = paymentMethod
	order.paymentStatus = paymentStatus
	order.transactionID = transactionID
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Call it when reconstructing orders from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopID returns the identifier of the fulfilling storefront.
func (o *Order) ShopID() string {
	return o.shopID
}

// UserID returns the identifier of the placing customer.
// Returns nil for guest orders.
func (o *Order) UserID() *string {
	return o.userID
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Total returns the order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PaymentMethod returns the payment method, or nil if none was supplied.
func (o *Order) PaymentMethod() *string {
	return o.paymentMethod
}

// PaymentStatus returns the recorded settlement outcome.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// TransactionID returns the payment transaction id, or nil before settlement.
func (o *Order) TransactionID() *string {
	return o.transactionID
}

// Items returns a copy of the order's item set.
func (o *Order) Items() []*OrderItem {
	return append([]*OrderItem(nil), o.items...)
}

// AddItem appends a line item to the order and recomputes the total.
// Legal only while the order is in Draft.
func (o *Order) AddItem(item *OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status != Draft {
		return errs.NewInvalidStateError("add item", o.status.String())
	}

	o.items = append(o.items, item)
	o.total = CalculateTotal(o.items)
	return nil
}

// ReplaceItems replaces the whole item set and recomputes the total.
// Legal only while the order is in Draft; the new set must not be empty.
func (o *Order) ReplaceItems(items []*OrderItem) error {
	if o.status != Draft {
		return errs.NewInvalidStateError("replace items", o.status.String())
	}
	if err := o.setItems(items); err != nil {
		return err
	}
	return nil
}

// RecordPayment captures the payment adapter outcome on the order.
// It never changes the lifecycle status: a completed payment authorizes a
// confirmation, but performing it is the orchestrator's call.
func (o *Order) RecordPayment(method string, status PaymentStatus, transactionID string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	if err := status.Validate(); err != nil {
		return err
	}

	o.paymentMethod = &method
	o.paymentStatus = status
	if transactionID != "" {
		o.transactionID = &transactionID
	}
	return nil
}

// Confirm moves the order to Confirmed without a caller identity.
// Used by the orchestrator after a completed payment. Confirming an already
// confirmed order is a no-op.
func (o *Order) Confirm() error {
	if o.status == Confirmed {
		return nil
	}
	if !o.status.CanTransitionTo(Confirmed) {
		return errs.NewInvalidStateError("confirm order", o.status.String())
	}

	o.status = Confirmed
	return nil
}

// ChangeStatus transitions the order to target on behalf of the given caller,
// enforcing both the transition table and the ownership/role policy:
//
//   - A privileged caller may perform any transition the table allows,
//     including skips (draft directly to ready).
//   - The owning customer may move their own order from draft to confirmed,
//     and nothing else.
//   - Any other caller is rejected.
//
// A same-status request by an authorized caller is a no-op and returns nil;
// callers that emit lifecycle events must check that the status actually
// changed. Unauthorized callers are rejected before the current status is
// consulted, so a same-status request never confirms an order's existence.
func (o *Order) ChangeStatus(target Status, actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	// Never consult the current status before the caller is authorized:
	// answering a same-status request with success would tell a stranger
	// the order exists and hand them the aggregate.
	if !actor.IsPrivileged() && !o.IsOwnedBy(actor) {
		return errs.NewOperationForbiddenError("change order status")
	}

	if o.status == target {
		return nil
	}

	if !actor.IsPrivileged() && target != Confirmed {
		return errs.NewOperationForbiddenErrorWithCause("change order status",
			fmt.Errorf("customers may only confirm their own order, not move it to %s", target))
	}

	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidStateErrorWithCause("change order status", o.status.String(),
			fmt.Errorf("transition to %s is not allowed", target))
	}

	o.status = target
	return nil
}

// IsOwnedBy reports whether the actor is the customer who placed the order.
// Guest orders have no owner.
func (o *Order) IsOwnedBy(actor kernel.Actor) bool {
	return o.userID != nil && *o.userID == actor.ID()
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setShopID validates and sets the fulfilling storefront.
func (o *Order) setShopID(shopID string) error {
	if shopID == "" {
		return errs.NewValueIsRequiredError("shopId")
	}
	o.shopID = shopID
	return nil
}

// setUserID validates and sets the optional placing customer.
func (o *Order) setUserID(userID *string) error {
	if userID != nil && *userID == "" {
		return errs.NewValueIsInvalidError("userId must not be empty when set")
	}
	o.userID = userID
	return nil
}

// setItems validates and installs a whole item set, recomputing the total.
func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = append([]*OrderItem(nil), items...)
	o.total = CalculateTotal(o.items)
	return nil
}
