package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/pkg/kafka"
	"github.com/vikask011/react-native/pkg/logger"
)

// Publisher delivers outbox messages to the event stream
type Publisher interface {
	Publish(ctx context.Context, msg *domain.OutboxMessage) error
}

// Producer is the subset of the kafka producer used by KafkaPublisher
type Producer interface {
	Produce(ctx context.Context, msg *kafka.Message) error
}

// KafkaPublisher publishes outbox messages keyed by catalog event id, so
// every change to one event lands on the same partition
type KafkaPublisher struct {
	producer Producer
}

func NewKafkaPublisher(producer Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg *domain.OutboxMessage) error {
	return p.producer.Produce(ctx, toKafkaMessage(msg))
}

func toKafkaMessage(msg *domain.OutboxMessage) *kafka.Message {
	headers := make(map[string]string, len(msg.Headers)+5)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["event_type"] = msg.EventType
	headers["aggregate_type"] = msg.AggregateType
	headers["aggregate_id"] = msg.AggregateID
	headers["content_type"] = "application/json"
	headers["source"] = "outbox-worker"

	return &kafka.Message{
		Topic:     msg.Topic,
		Key:       []byte(msg.PartitionKey),
		Value:     msg.Payload,
		Headers:   headers,
		Timestamp: time.Now(),
	}
}

// NoOpPublisher logs messages instead of publishing them. Used when Kafka
// is disabled or unreachable.
type NoOpPublisher struct {
	log *logger.Logger
}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{log: logger.Get()}
}

func (p *NoOpPublisher) Publish(ctx context.Context, msg *domain.OutboxMessage) error {
	p.log.Info("Outbox message (kafka disabled)",
		zap.String("id", msg.ID),
		zap.String("event_type", msg.EventType),
		zap.String("topic", msg.Topic),
		zap.String("aggregate_id", msg.AggregateID),
	)
	return nil
}
