package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders from the database, scoped to the actor.
// Results are sorted by order ID for consistent output.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. A customer's listing is filtered to orders
// placed under their identity; guest orders have no owner and only show up
// for privileged actors.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Items.SelectedOptions").
		Order("id")

	actor := query.Actor()
	if !actor.IsPrivileged() {
		db = db.Where("user_id = ?", actor.ID())
	}

	var rows []orderRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, rowToResponse(row))
	}

	return responses, nil
}
