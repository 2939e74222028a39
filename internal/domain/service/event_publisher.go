package service

import (
	"context"
	"time"
)

// Domain event types.
const (
	EventAccountVerified = "account.verified"
	EventOrderPlaced     = "order.placed"
)

// DomainEvent is published after a state change has been committed.
type DomainEvent struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
