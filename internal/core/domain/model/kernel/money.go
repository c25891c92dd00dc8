package kernel

import (
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount.
// It wraps a fixed-point decimal so that repeated pricing computations
// (add item, replace items) cannot accumulate floating-point drift.
//
// The zero value is a valid amount of zero. Money is immutable: arithmetic
// methods return new values and never mutate the receiver.
//
// Example usage:
//
//	unitPrice, _ := kernel.NewMoneyFromFloat(9.99)
//	total := unitPrice.MultiplyBy(3)
//	fmt.Println(total.String()) // "29.97"
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidError("amount must not be negative")
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
// Intended for boundary code decoding JSON numbers; the value is converted
// to fixed-point immediately so no float arithmetic happens afterwards.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// ZeroMoney returns a Money of amount zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MultiplyBy returns the amount multiplied by an integer factor.
// Used by pricing to apply an item quantity.
func (m Money) MultiplyBy(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying fixed-point amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}
