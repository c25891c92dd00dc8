package ports

import "context"

// AvailabilityRequest identifies one catalog item an order wants to include.
type AvailabilityRequest struct {
	ItemID   string
	Quantity int
}

// AvailabilityGate answers whether every requested item can currently be
// ordered. Implementations are fail-closed: when availability cannot be
// determined (catalog unreachable, malformed response), they report the
// items as unavailable rather than returning an error the caller might
// mistake for "available".
type AvailabilityGate interface {
	// CheckAvailability returns true only when every requested item is
	// available. A non-nil error indicates an infrastructure failure; the
	// boolean is false in that case.
	CheckAvailability(ctx context.Context, requests []AvailabilityRequest) (bool, error)
}
