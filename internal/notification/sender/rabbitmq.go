package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gatehouse/internal/notification/models"
)

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQSender publishes notifications to a durable topic exchange.
// The routing key is "<prefix>.<kind>", e.g. notifications.registration.approved.
type RabbitMQSender struct {
	conn       *amqp.Connection
	exchange   string
	routingKey string

	mu       sync.Mutex
	channel  Channel
	declared bool
}

// DialRabbitMQ connects with a bounded dial timeout.
func DialRabbitMQ(url, exchange, routingKey string) (*RabbitMQSender, error) {
	conn, err := amqp.DialConfig(strings.TrimSpace(url), amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	s := NewRabbitMQ(ch, exchange, routingKey)
	s.conn = conn
	return s, nil
}

// NewRabbitMQ wraps an already open channel.
func NewRabbitMQ(ch Channel, exchange, routingKey string) *RabbitMQSender {
	return &RabbitMQSender{channel: ch, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQSender) Send(ctx context.Context, msg models.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.declared {
		if err := s.channel.ExchangeDeclare(s.exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", s.exchange, err)
		}
		s.declared = true
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey+"."+string(msg.Kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (s *RabbitMQSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
