// Package messaging publishes domain events to downstream consumers.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"weathertracker.app/internal/ports"
	"weathertracker.app/pkg/errors"
)

// messageWriter is the part of *kafkago.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaEventPublisher writes events as JSON messages keyed by Event.Key
type KafkaEventPublisher struct {
	writer messageWriter
}

// NewKafkaEventPublisher creates a producer for the configured topic
func NewKafkaEventPublisher(cfg ports.EventsConfig) (*KafkaEventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.NewConfigurationError("at least one kafka broker is required", nil)
	}
	if cfg.KafkaTopic == "" {
		return nil, errors.NewConfigurationError("kafka topic is required", nil)
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaEventPublisher{writer: w}, nil
}

// Publish sends all events in a single batch
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(events))
	for i, e := range events {
		msg, err := toMessage(e)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.NewExternalAPIError("failed to publish events", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e ports.Event) (kafkago.Message, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s event: %w", e.Type, err)
	}
	return kafkago.Message{
		Key:   []byte(e.Key),
		Value: payload,
		Time:  e.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "occurred_at", Value: []byte(e.OccurredAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}

// NoopEventPublisher drops every event; used when event publishing is disabled
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, ...ports.Event) error { return nil }
func (NoopEventPublisher) Close() error { return nil }
