package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ErrItemsUnavailable is returned when the catalog reports at least one of
// the requested items as unavailable, or when availability could not be
// confirmed at all. Unconfirmed counts as unavailable.
var ErrItemsUnavailable = errors.New("one or more items are not available")

func availabilityRequests(items []*order.OrderItem) []ports.AvailabilityRequest {
	requests := make([]ports.AvailabilityRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, ports.AvailabilityRequest{
			ItemID:   item.ItemID(),
			Quantity: item.Quantity(),
		})
	}
	return requests
}

func ensureAvailable(ctx context.Context, gate ports.AvailabilityGate, items []*order.OrderItem) error {
	available, err := gate.CheckAvailability(ctx, availabilityRequests(items))
	if err != nil || !available {
		return ErrItemsUnavailable
	}
	return nil
}
