package http

import (
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	ShopID        string             `json:"shopId"`
	UserID        *string            `json:"userId,omitempty"`
	PaymentMethod *string            `json:"paymentMethod,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one order line in a request body.
type OrderItemRequest struct {
	ItemID          string                  `json:"itemId"`
	Quantity        int                     `json:"quantity"`
	UnitPrice       float64                 `json:"unitPrice"`
	SelectedOptions []SelectedOptionRequest `json:"selectedOptions,omitempty"`
}

// SelectedOptionRequest is one customization on an order line.
type SelectedOptionRequest struct {
	Name            string  `json:"name"`
	AdditionalPrice float64 `json:"additionalPrice"`
}

// ReplaceOrderItemsRequest is the request body for PUT /orders/:id/items.
type ReplaceOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// UpdateStatusRequest is the request body for PATCH /orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	ShopID        string              `json:"shopId"`
	UserID        *string             `json:"userId,omitempty"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod *string             `json:"paymentMethod,omitempty"`
	PaymentStatus string              `json:"paymentStatus"`
	TransactionID *string             `json:"transactionId,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one order line in a response body.
type OrderItemResponse struct {
	ItemID          string                   `json:"itemId"`
	Quantity        int                      `json:"quantity"`
	UnitPrice       decimal.Decimal          `json:"unitPrice"`
	SelectedOptions []SelectedOptionResponse `json:"selectedOptions,omitempty"`
}

// SelectedOptionResponse is one customization on an order line in a response.
type SelectedOptionResponse struct {
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
}

func toDomainItem(request OrderItemRequest) (*order.OrderItem, error) {
	options := make([]order.SelectedOption, 0, len(request.SelectedOptions))
	for _, optionRequest := range request.SelectedOptions {
		price, err := kernel.NewMoneyFromFloat(optionRequest.AdditionalPrice)
		if err != nil {
			return nil, err
		}

		option, err := order.NewSelectedOption(optionRequest.Name, price)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	unitPrice, err := kernel.NewMoneyFromFloat(request.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.NewOrderItem(request.ItemID, request.Quantity, unitPrice, options)
}

func toDomainItems(requests []OrderItemRequest) ([]*order.OrderItem, error) {
	items := make([]*order.OrderItem, 0, len(requests))
	for _, request := range requests {
		item, err := toDomainItem(request)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		options := make([]SelectedOptionResponse, 0, len(item.SelectedOptions()))
		for _, option := range item.SelectedOptions() {
			options = append(options, SelectedOptionResponse{
				Name:            option.Name(),
				AdditionalPrice: option.AdditionalPrice().Decimal(),
			})
		}

		items = append(items, OrderItemResponse{
			ItemID:          item.ItemID(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice().Decimal(),
			SelectedOptions: options,
		})
	}

	return OrderResponse{
		ID:            aggregate.ID().String(),
		ShopID:        aggregate.ShopID(),
		UserID:        aggregate.UserID(),
		Status:        aggregate.Status().String(),
		Total:         aggregate.Total().Decimal(),
		PaymentMethod: aggregate.PaymentMethod(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		TransactionID: aggregate.TransactionID(),
		Items:         items,
	}
}

func queryToResponse(row queries.OrderResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(row.Items))
	for _, item := range row.Items {
		options := make([]SelectedOptionResponse, 0, len(item.SelectedOptions))
		for _, option := range item.SelectedOptions {
			options = append(options, SelectedOptionResponse{
				Name:            option.Name,
				AdditionalPrice: option.AdditionalPrice,
			})
		}

		items = append(items, OrderItemResponse{
			ItemID:          item.ItemID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			SelectedOptions: options,
		})
	}

	return OrderResponse{
		ID:            row.ID.String(),
		ShopID:        row.ShopID,
		UserID:        row.UserID,
		Status:        row.Status,
		Total:         row.Total,
		PaymentMethod: row.PaymentMethod,
		PaymentStatus: row.PaymentStatus,
		TransactionID: row.TransactionID,
		Items:         items,
	}
}
