package messaging

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/events7/events7-api/internal/events/domain"
)

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a lifecycle-event publisher over a single topic.
// Messages are keyed by event id so updates for one event stay ordered.
func NewKafkaPublisher(brokers []string, topic string) domain.EventPublisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher() domain.EventPublisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
