package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fluxo-backend/application/ports"
	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

// FlowRepository keeps flow snapshots in memory. Used in development
// and in tests; the Postgres repository is the production counterpart.
type FlowRepository struct {
	mu        sync.RWMutex
	snapshots map[string]flow.Snapshot
	ids       flow.IDSource
	domainCfg domaincfg.DomainConfig
}

// NewFlowRepository creates an empty in-memory repository
func NewFlowRepository(ids flow.IDSource, domainCfg domaincfg.DomainConfig) *FlowRepository {
	return &FlowRepository{
		snapshots: make(map[string]flow.Snapshot),
		ids:       ids,
		domainCfg: domainCfg,
	}
}

// Save persists the flow's snapshot
func (r *FlowRepository) Save(_ context.Context, f *flow.Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[f.ID().String()] = f.Snapshot()
	return nil
}

// FindByID rebuilds a flow from its stored snapshot
func (r *FlowRepository) FindByID(_ context.Context, id string) (*flow.Flow, error) {
	r.mu.RLock()
	snap, exists := r.snapshots[id]
	r.mu.RUnlock()

	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("flow %s not found", id))
	}
	return flow.RestoreFlow(snap, r.ids, r.domainCfg)
}

// FindByUser lists a user's flows, most recently updated first
func (r *FlowRepository) FindByUser(_ context.Context, userID string) ([]ports.FlowSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]ports.FlowSummary, 0)
	for _, snap := range r.snapshots {
		if snap.UserID != userID {
			continue
		}
		summaries = append(summaries, ports.FlowSummary{
			ID:        snap.ID,
			Name:      snap.Name,
			NodeCount: len(snap.Nodes),
			EdgeCount: len(snap.Edges),
			Version:   snap.Version,
			UpdatedAt: snap.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Delete removes a flow's snapshot. Deleting what is absent is a no-op.
func (r *FlowRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.snapshots, id)
	return nil
}
