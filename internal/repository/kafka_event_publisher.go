package repository

import (
	"context"

	"AstroEngine/internal/domain/models"
	domrepo "AstroEngine/internal/domain/repository"
	pkgkafka "AstroEngine/pkg/kafka"
)

// KafkaEventPublisher implements EventPublisher for Kafka. Events for the
// same chart key hash to the same partition, preserving per-chart order.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a Kafka-backed event publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) domrepo.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishEvents(ctx context.Context, key string, events []models.TimelineEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, ev := range events {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(key),
			Value: ev,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

// PublishMessage satisfies the logger collector's Publisher interface so
// aggregated error logs can ride the same producer on a separate topic.
func (p *KafkaEventPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
