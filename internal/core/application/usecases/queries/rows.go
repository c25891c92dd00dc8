// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly through their own read model instead of going through
// the domain aggregate, keeping reads cheap and side-effect free.
package queries

import (
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// orderRow is the read-model projection of the orders table.
type orderRow struct {
	ID            uuid.UUID
	ShopID        string
	UserID        *string
	Status        int
	Total         decimal.Decimal
	PaymentMethod *string
	PaymentStatus int
	TransactionID *string
	Items         []orderItemRow `gorm:"foreignKey:OrderID"`
}

func (orderRow) TableName() string {
	return "orders"
}

type orderItemRow struct {
	ID              int64
	OrderID         uuid.UUID
	Position        int
	ItemID          string
	Quantity        int
	UnitPrice       decimal.Decimal
	SelectedOptions []selectedOptionRow `gorm:"foreignKey:OrderItemID"`
}

func (orderItemRow) TableName() string {
	return "order_items"
}

type selectedOptionRow struct {
	ID              int64
	OrderItemID     int64
	Name            string
	AdditionalPrice decimal.Decimal
}

func (selectedOptionRow) TableName() string {
	return "order_item_options"
}

// OrderResponse represents one order as returned by the read side.
// Lifecycle and payment statuses are rendered as their wire labels.
type OrderResponse struct {
	ID            uuid.UUID
	ShopID        string
	UserID        *string
	Status        string
	Total         decimal.Decimal
	PaymentMethod *string
	PaymentStatus string
	TransactionID *string
	Items         []OrderItemResponse
}

// OrderItemResponse represents one order line in a read response.
type OrderItemResponse struct {
	ItemID          string
	Quantity        int
	UnitPrice       decimal.Decimal
	SelectedOptions []SelectedOptionResponse
}

// SelectedOptionResponse represents one customization on an order line.
type SelectedOptionResponse struct {
	Name            string
	AdditionalPrice decimal.Decimal
}

func rowToResponse(row orderRow) OrderResponse {
	items := make([]OrderItemResponse, 0, len(row.Items))
	for _, itemRow := range row.Items {
		options := make([]SelectedOptionResponse, 0, len(itemRow.SelectedOptions))
		for _, optionRow := range itemRow.SelectedOptions {
			options = append(options, SelectedOptionResponse{
				Name:            optionRow.Name,
				AdditionalPrice: optionRow.AdditionalPrice,
			})
		}

		items = append(items, OrderItemResponse{
			ItemID:          itemRow.ItemID,
			Quantity:        itemRow.Quantity,
			UnitPrice:       itemRow.UnitPrice,
			SelectedOptions: options,
		})
	}

	return OrderResponse{
		ID:            row.ID,
		ShopID:        row.ShopID,
		UserID:        row.UserID,
		Status:        order.Status(row.Status).String(),
		Total:         row.Total,
		PaymentMethod: row.PaymentMethod,
		PaymentStatus: order.PaymentStatus(row.PaymentStatus).String(),
		TransactionID: row.TransactionID,
		Items:         items,
	}
}
