// Package events publishes document-posted events to Kafka so
// downstream consumers (sync jobs, analytics) can react to new books
// activity.
package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes JSON-encoded events to a single topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers/topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// Publish marshals the event and writes it to the topic.
func (p *KafkaPublisher) Publish(ctx context.Context, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: data}); err != nil {
		p.logger.Error("kafka: publish failed", zap.Error(err))
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, any) error { return nil }
func (NoopPublisher) Close() error                       { return nil }
