// Package rabbit implements event publishing and consuming over RabbitMQ.
// All order lifecycle traffic flows through a single durable topic exchange;
// routing keys carry the event kind (order.new, order.confirmed, order.ready).
package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ordering/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order events are published to.
const ExchangeName = "good-food-events"

// Publisher publishes order events to RabbitMQ.
//
// The connection is established lazily on first publish and reused after
// that; a failed publish drops the channel so the next call reconnects.
// Publisher is safe for concurrent use.
type Publisher struct {
	url    string
	logger *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher creates a publisher for the broker at url.
// No connection is made until the first publish.
func NewPublisher(url string, logger *slog.Logger) *Publisher {
	return &Publisher{
		url:    url,
		logger: logger,
	}
}

// Publish emits one event to the exchange under the given routing key.
// Messages are persistent so a broker restart does not lose them.
func (p *Publisher) Publish(ctx context.Context, topic string, event order.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	channel, err := p.ensureChannel()
	if err != nil {
		return err
	}

	err = channel.PublishWithContext(ctx,
		ExchangeName,
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return err
	}

	p.logger.Debug("event published", "topic", topic, "order_id", event.OrderID)
	return nil
}

// Close shuts down the channel and connection if they were opened.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	p.channel = nil
	p.conn = nil
	return firstErr
}

// ensureChannel lazily connects and declares the exchange. Callers must hold
// the mutex.
func (p *Publisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil {
		return p.channel, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = declareExchange(channel); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn = conn
	p.channel = channel
	return p.channel, nil
}

// reset drops the broken channel so the next publish reconnects. Callers
// must hold the mutex.
func (p *Publisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func declareExchange(channel *amqp.Channel) error {
	return channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
}
