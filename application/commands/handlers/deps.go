package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fluxo-backend/application/ports"
	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/events"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
	"fluxo-backend/pkg/observability"
)

// Deps bundles what every command handler needs
type Deps struct {
	Repo      ports.FlowRepository
	Events    ports.EventBus
	Metrics   *observability.Metrics
	Logger    *zap.Logger
	IDs       flow.IDSource
	DomainCfg domaincfg.DomainConfig
}

// loadOwnedFlow fetches a flow and checks ownership. A flow belonging
// to someone else reads as not found, so ids cannot be probed.
func (d Deps) loadOwnedFlow(ctx context.Context, flowID, userID string) (*flow.Flow, error) {
	f, err := d.Repo.FindByID(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if f.UserID() != userID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("flow %s not found", flowID))
	}
	return f, nil
}

// saveAndPublish persists the flow, then publishes its uncommitted
// events. Publishing is best-effort: a broker outage must not fail an
// edit that is already saved.
func (d Deps) saveAndPublish(ctx context.Context, f *flow.Flow) error {
	if err := d.Repo.Save(ctx, f); err != nil {
		d.Metrics.SnapshotFailures.Inc()
		return err
	}
	d.Metrics.SnapshotSaves.Inc()

	evts := f.GetUncommittedEvents()
	if len(evts) > 0 {
		saved := events.NewFlowSaved(f.ID().String(), f.NodeCount(), f.EdgeCount(), f.UpdatedAt())
		if err := d.Events.Publish(ctx, append(evts, saved)...); err != nil {
			d.Logger.Warn("event publish failed",
				zap.String("flow_id", f.ID().String()),
				zap.Error(err))
		}
	}
	f.MarkEventsAsCommitted()
	return nil
}
