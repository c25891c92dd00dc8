// Package amqp implements the broker-facing entry point: orders arriving on
// the message bus are placed through the same command handler the HTTP API
// uses.
package amqp

import (
	"context"
	"encoding/json"
	"log/slog"

	"ordering/internal/adapters/out/rabbit"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// QueueOrderNew receives order placement requests routed with the order.new key.
const QueueOrderNew = "order.new"

// newOrderMessage is the wire shape of an order.new message.
type newOrderMessage struct {
	ShopID        string  `json:"shopId"`
	UserID        *string `json:"userId"`
	PaymentMethod *string `json:"paymentMethod"`
	Items         []struct {
		ItemID          string  `json:"itemId"`
		Quantity        int     `json:"quantity"`
		UnitPrice       float64 `json:"unitPrice"`
		SelectedOptions []struct {
			Name            string  `json:"name"`
			AdditionalPrice float64 `json:"additionalPrice"`
		} `json:"selectedOptions"`
	} `json:"items"`
}

// Consumer places orders arriving on the order.new queue.
type Consumer struct {
	url     string
	handler commands.CreateOrderCommandHandler
	logger  *slog.Logger
}

// NewConsumer creates a consumer for the broker at url.
func NewConsumer(url string, handler commands.CreateOrderCommandHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:     url,
		handler: handler,
		logger:  logger,
	}
}

// Run connects to the broker and processes messages until the context is
// cancelled or the connection drops. Malformed and rejected messages are
// acknowledged after logging; redelivering them cannot make them valid.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	if err = channel.ExchangeDeclare(rabbit.ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	queue, err := channel.QueueDeclare(QueueOrderNew, true, false, false, false, nil)
	if err != nil {
		return err
	}

	if err = channel.QueueBind(queue.Name, QueueOrderNew, rabbit.ExchangeName, false, nil); err != nil {
		return err
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.logger.Info("consuming order messages", "queue", queue.Name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp091.ErrClosed
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp091.Delivery) {
	defer func() {
		_ = delivery.Ack(false)
	}()

	var message newOrderMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		c.logger.Error("discarding malformed order message", "error", err)
		return
	}

	cmd, err := c.buildCommand(message)
	if err != nil {
		c.logger.Error("discarding invalid order message", "shop_id", message.ShopID, "error", err)
		return
	}

	placed, err := c.handler.Handle(ctx, cmd)
	if err != nil {
		c.logger.Error("failed to place order from message",
			"shop_id", message.ShopID,
			"error", err,
		)
		return
	}

	c.logger.Info("order placed from message",
		"order_id", placed.ID().String(),
		"shop_id", placed.ShopID(),
		"status", placed.Status().String(),
	)
}

func (c *Consumer) buildCommand(message newOrderMessage) (commands.CreateOrderCommand, error) {
	items := make([]*order.OrderItem, 0, len(message.Items))
	for _, itemMsg := range message.Items {
		options := make([]order.SelectedOption, 0, len(itemMsg.SelectedOptions))
		for _, optionMsg := range itemMsg.SelectedOptions {
			price, err := kernel.NewMoneyFromFloat(optionMsg.AdditionalPrice)
			if err != nil {
				return commands.CreateOrderCommand{}, err
			}

			option, err := order.NewSelectedOption(optionMsg.Name, price)
			if err != nil {
				return commands.CreateOrderCommand{}, err
			}
			options = append(options, option)
		}

		unitPrice, err := kernel.NewMoneyFromFloat(itemMsg.UnitPrice)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}

		item, err := order.NewOrderItem(itemMsg.ItemID, itemMsg.Quantity, unitPrice, options)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		message.ShopID,
		message.UserID,
		message.PaymentMethod,
		items,
	)
}
