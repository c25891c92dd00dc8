// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The aggregate spans three tables: orders, order_items, and
// order_item_options; items and options are cascade-deleted with their order.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID        string    `gorm:"index"`
	UserID        *string   `gorm:"index"`
	Status        int
	Total         decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod *string
	PaymentStatus int
	TransactionID *string
	Items         []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. Position preserves the item order
// the customer submitted; it is not meaningful to the domain but keeps reads
// deterministic.
type OrderItemDTO struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	ItemID          string
	Quantity        int
	UnitPrice       decimal.Decimal     `gorm:"type:numeric(12,2)"`
	SelectedOptions []SelectedOptionDTO `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// SelectedOptionDTO represents one customization on an order line.
type SelectedOptionDTO struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	OrderItemID     int64 `gorm:"index"`
	Name            string
	AdditionalPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for option entities.
func (SelectedOptionDTO) TableName() string {
	return "order_item_options"
}

// fromDomain converts an order domain aggregate to its database representation.
// The computed total is stored denormalized for read-side queries; it is
// recomputed from the items on restore.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		options := make([]SelectedOptionDTO, 0, len(item.SelectedOptions()))
		for _, option := range item.SelectedOptions() {
			options = append(options, SelectedOptionDTO{
				Name:            option.Name(),
				AdditionalPrice: option.AdditionalPrice().Decimal(),
			})
		}

		items = append(items, OrderItemDTO{
			OrderID:         aggregate.ID().Bytes(),
			Position:        position,
			ItemID:          item.ItemID(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice().Decimal(),
			SelectedOptions: options,
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		ShopID:        aggregate.ShopID(),
		UserID:        aggregate.UserID(),
		Status:        int(aggregate.Status()),
		Total:         aggregate.Total().Decimal(),
		PaymentMethod: aggregate.PaymentMethod(),
		PaymentStatus: int(aggregate.PaymentStatus()),
		TransactionID: aggregate.TransactionID(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle and payment state
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		options := make([]order.SelectedOption, 0, len(itemDTO.SelectedOptions))
		for _, optionDTO := range itemDTO.SelectedOptions {
			price, priceErr := kernel.NewMoney(optionDTO.AdditionalPrice)
			if priceErr != nil {
				return nil, priceErr
			}

			option, optionErr := order.NewSelectedOption(optionDTO.Name, price)
			if optionErr != nil {
				return nil, optionErr
			}
			options = append(options, option)
		}

		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewOrderItem(itemDTO.ItemID, itemDTO.Quantity, unitPrice, options)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.ShopID,
		dto.UserID,
		order.Status(dto.Status),
		dto.PaymentMethod,
		order.PaymentStatus(dto.PaymentStatus),
		dto.TransactionID,
		items,
	)
}
