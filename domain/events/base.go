package events

import "time"

// DomainEvent is implemented by every event raised by the flow aggregate
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateIdentifier() string
}

// BaseEvent carries the fields shared by all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregateId"`
	EventType   string    `json:"eventType"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventName returns the event type tag
func (e BaseEvent) EventName() string {
	return e.EventType
}

// OccurredAt returns when the event happened
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateIdentifier returns the id of the aggregate that raised the event
func (e BaseEvent) AggregateIdentifier() string {
	return e.AggregateID
}
