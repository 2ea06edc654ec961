package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ProductEventsQueue receives every product lifecycle event.
const ProductEventsQueue = "product_events"

// Channel is the subset of *amqp.Channel used by the client.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	logger  *zap.Logger
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// ProductEvent is the JSON body of every published message.
type ProductEvent struct {
	Event      string         `json:"event"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// NewClient connects to RabbitMQ, opens a channel and declares the product
// events queue.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := newClient(ch, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client.conn = conn

	logger.Info("RabbitMQ client connected", zap.String("queue", ProductEventsQueue))
	return client, nil
}

// NewClientWithChannel builds a client over an already open channel.
func NewClientWithChannel(ch Channel, logger *zap.Logger) (*Client, error) {
	return newClient(ch, logger)
}

func newClient(ch Channel, logger *zap.Logger) (*Client, error) {
	_, err := ch.QueueDeclare(
		ProductEventsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", ProductEventsQueue, err)
	}
	return &Client{channel: ch, logger: logger}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes a persistent JSON message for event on the
// product events queue.
func (c *Client) PublishProductEvent(event string, product models.Product) error {
	body, err := json.Marshal(ProductEvent{
		Event:      event,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		"",                 // default exchange
		ProductEventsQueue, // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    uuid.New().String(),
			Type:         event,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event, err)
	}

	c.logger.Debug("product event published",
		zap.String("event", event),
		zap.Uint("product_id", product.ID),
	)
	return nil
}

// ConsumeProductEvents delivers decoded events to handler until the channel
// closes. Messages are acked on success and requeued when handler fails;
// undecodable messages are dropped.
func (c *Client) ConsumeProductEvents(handler func(ProductEvent) error) error {
	msgs, err := c.channel.Consume(
		ProductEventsQueue, // queue
		"",                 // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event ProductEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("discarding malformed product event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}
			if err := handler(event); err != nil {
				c.logger.Warn("product event handler failed", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, true); nackErr != nil {
					c.logger.Error("failed to nack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("failed to ack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(ackErr))
			}
		}
	}()

	return nil
}
