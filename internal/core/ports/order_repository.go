// Package ports defines the outbound contracts of the ordering core.
// These interfaces establish contracts between the application layer and the
// infrastructure adapters, enabling dependency inversion and testability.
// The orchestrator receives interface-typed handles for persistence,
// availability, payment, and publishing at construction.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An implementation persists the whole aggregate (order row, items, and
// selected options) as a unit; items and options are cascade-deleted with
// their order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The item set is replaced as a whole; to keep the "items always
	// consistent with total" invariant under a crash, callers run Update
	// inside a unit-of-work transaction.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items and selected options.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
