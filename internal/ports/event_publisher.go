package ports

import (
	"context"
	"time"
)

// Event is a domain event emitted to downstream consumers
type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    interface{}
}

// EventPublisher defines the contract for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}
