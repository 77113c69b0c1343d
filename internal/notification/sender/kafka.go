package sender

import (
	"context"
	"encoding/json"
	"fmt"

	"gatehouse/internal/notification/models"
	"gatehouse/internal/platform/kafka/producer"
)

// Producer is the subset of the Kafka producer used for notifications.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaSender publishes notifications to a topic for an external mailer.
// Records are keyed by recipient so one inbox keeps its order.
type KafkaSender struct {
	producer Producer
	topic    string
}

func NewKafka(p Producer, topic string) *KafkaSender {
	return &KafkaSender{producer: p, topic: topic}
}

func (s *KafkaSender) Send(ctx context.Context, msg models.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(msg.To),
		Value: value,
		Headers: map[string]string{
			"kind":         string(msg.Kind),
			"content-type": "application/json",
		},
	})
}
