// Package payment implements the payment processor port against the
// provider sandbox. The sandbox settles by method: card charges settle
// immediately, paypal charges settle up to a per-transaction limit, and
// every other method stays pending until an asynchronous confirmation.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// paypalLimit is the provider's per-transaction cap for paypal charges.
var paypalLimit = decimal.NewFromInt(1000)

// Processor implements ports.PaymentProcessor.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a payment processor.
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{logger: logger}
}

// ProcessPayment charges the order total through the provider.
// The transaction identifier encodes the settlement path so support can
// trace a charge from the identifier alone.
func (p *Processor) ProcessPayment(
	_ context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
	method string,
) (ports.PaymentResult, error) {
	var result ports.PaymentResult

	switch method {
	case "card":
		result = ports.PaymentResult{
			Status:        order.PaymentCompleted,
			TransactionID: fmt.Sprintf("txn_%s", uuid.NewString()),
		}
	case "paypal":
		if amount.Decimal().GreaterThan(paypalLimit) {
			result = ports.PaymentResult{
				Status:        order.PaymentFailed,
				TransactionID: fmt.Sprintf("txn_fail_%s", uuid.NewString()),
			}
		} else {
			result = ports.PaymentResult{
				Status:        order.PaymentCompleted,
				TransactionID: fmt.Sprintf("txn_pp_%s", uuid.NewString()),
			}
		}
	default:
		result = ports.PaymentResult{
			Status:        order.PaymentPending,
			TransactionID: fmt.Sprintf("txn_pending_%s", uuid.NewString()),
		}
	}

	p.logger.Info("payment processed",
		"order_id", orderID.String(),
		"method", method,
		"amount", amount.String(),
		"status", result.Status.String(),
		"transaction_id", result.TransactionID,
	)

	return result, nil
}
