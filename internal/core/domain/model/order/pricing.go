package order

import (
	"ordering/internal/core/domain/model/kernel"
)

// CalculateTotal is the pricing engine of the ordering core: a pure
// computation of the order total over an item set.
//
// For each item the line total is
// (unitPrice + sum of option surcharges) × quantity, and the order total is
// the sum of line totals. The aggregate recomputes this on every item
// mutation, so the stored total is always derivable from the item set.
func CalculateTotal(items []*OrderItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
