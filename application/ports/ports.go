package ports

import (
	"context"
	"time"

	"fluxo-backend/domain/events"
	"fluxo-backend/domain/flow"
)

// FlowSummary is the list-view projection of a flow
type FlowSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NodeCount int       `json:"nodeCount"`
	EdgeCount int       `json:"edgeCount"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FlowRepository persists flow aggregates as snapshots
type FlowRepository interface {
	Save(ctx context.Context, f *flow.Flow) error
	FindByID(ctx context.Context, id string) (*flow.Flow, error)
	FindByUser(ctx context.Context, userID string) ([]FlowSummary, error)
	Delete(ctx context.Context, id string) error
}

// EventBus publishes domain events to interested consumers. Publishing
// is fire-and-forget from the editor's perspective: a failed publish
// never rolls back a saved flow.
type EventBus interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// Cache is a read-side cache for query results
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
