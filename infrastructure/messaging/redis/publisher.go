package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fluxo-backend/domain/events"
	apperrors "fluxo-backend/pkg/errors"
)

// Publisher broadcasts domain events on a Redis channel so downstream
// consumers (audit trail, live collaborators list, webhooks console)
// see edits as they happen.
type Publisher struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewPublisher creates a Redis-backed event publisher
func NewPublisher(client *redis.Client, channel string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// envelope is the wire form of one published event
type envelope struct {
	Event       string      `json:"event"`
	AggregateID string      `json:"aggregateId"`
	OccurredAt  string      `json:"occurredAt"`
	Payload     interface{} `json:"payload"`
}

// Publish sends each event as its own message. The first failure stops
// the batch; callers treat publishing as best-effort.
func (p *Publisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, event := range evts {
		body, err := json.Marshal(envelope{
			Event:       event.EventName(),
			AggregateID: event.AggregateIdentifier(),
			OccurredAt:  event.OccurredAt().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Payload:     event,
		})
		if err != nil {
			return apperrors.Wrap(err, "failed to encode domain event")
		}
		if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
			return apperrors.NewExternalError("redis", err)
		}
		p.logger.Debug("event published",
			zap.String("event", event.EventName()),
			zap.String("aggregate_id", event.AggregateIdentifier()))
	}
	return nil
}

// NoopPublisher discards events. Used when no Redis address is
// configured, typically in local development.
type NoopPublisher struct{}

// Publish implements ports.EventBus
func (NoopPublisher) Publish(context.Context, ...events.DomainEvent) error {
	return nil
}
