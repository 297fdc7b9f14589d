package repository

import (
	"context"

	"ShellWatch/internal/domain/models"
	"ShellWatch/internal/domain/repository"
	pkgkafka "ShellWatch/pkg/kafka"
)

// KafkaAlertPublisher emits discount alerts to a Kafka topic, keyed by item so
// per-item alerts stay ordered.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertPublisher creates a Kafka-backed alert publisher.
func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, alert *models.DiscountAlert) error {
	return p.producer.Publish(ctx, p.topic, []byte(alert.ItemID), alert)
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}
