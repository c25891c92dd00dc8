package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// PaymentResult is the outcome of a payment attempt.
type PaymentResult struct {
	Status        order.PaymentStatus
	TransactionID string
}

// PaymentProcessor charges an order total through an external payment
// provider. A returned error means the attempt itself failed (provider
// rejected the charge or was unreachable); a successful call may still carry
// a pending status for methods that settle asynchronously.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, orderID kernel.UUID, amount kernel.Money, method string) (PaymentResult, error)
}
