package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fluxo-backend/application/ports"
	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

// FlowRepository persists flow snapshots as JSONB documents. The graph
// is one aggregate, so one row per flow keeps saves atomic without a
// transaction across node and edge tables.
//
// Schema:
//
//	CREATE TABLE flows (
//	    id         TEXT PRIMARY KEY,
//	    user_id    TEXT NOT NULL,
//	    definition JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX flows_user_id_idx ON flows (user_id, updated_at DESC);
type FlowRepository struct {
	pool      *pgxpool.Pool
	ids       flow.IDSource
	domainCfg domaincfg.DomainConfig
	logger    *zap.Logger
}

// NewFlowRepository creates a Postgres-backed repository
func NewFlowRepository(pool *pgxpool.Pool, ids flow.IDSource, domainCfg domaincfg.DomainConfig, logger *zap.Logger) *FlowRepository {
	return &FlowRepository{
		pool:      pool,
		ids:       ids,
		domainCfg: domainCfg,
		logger:    logger,
	}
}

// Save upserts the flow's snapshot
func (r *FlowRepository) Save(ctx context.Context, f *flow.Flow) error {
	snap := f.Snapshot()
	definition, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode flow snapshot")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO flows (id, user_id, definition, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET definition = EXCLUDED.definition,
		    updated_at = EXCLUDED.updated_at`,
		snap.ID, snap.UserID, definition, snap.UpdatedAt)
	if err != nil {
		r.logger.Error("flow save failed", zap.String("flow_id", snap.ID), zap.Error(err))
		return apperrors.NewDatabaseError("failed to save flow", err)
	}
	return nil
}

// FindByID loads and rebuilds a flow from its stored snapshot
func (r *FlowRepository) FindByID(ctx context.Context, id string) (*flow.Flow, error) {
	var definition []byte
	err := r.pool.QueryRow(ctx,
		`SELECT definition FROM flows WHERE id = $1`, id).Scan(&definition)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("flow %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to load flow", err)
	}

	var snap flow.Snapshot
	if err := json.Unmarshal(definition, &snap); err != nil {
		return nil, apperrors.Wrap(err, "stored flow snapshot is unreadable")
	}
	return flow.RestoreFlow(snap, r.ids, r.domainCfg)
}

// FindByUser lists a user's flows, most recently updated first. The
// counts are computed in the database so list views never decode full
// definitions.
func (r *FlowRepository) FindByUser(ctx context.Context, userID string) ([]ports.FlowSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id,
		       definition->>'name',
		       jsonb_array_length(definition->'nodes'),
		       jsonb_array_length(definition->'edges'),
		       COALESCE((definition->>'version')::int, 0),
		       updated_at
		FROM flows
		WHERE user_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list flows", err)
	}
	defer rows.Close()

	summaries := make([]ports.FlowSummary, 0)
	for rows.Next() {
		var s ports.FlowSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NodeCount, &s.EdgeCount, &s.Version, &s.UpdatedAt); err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan flow summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("failed to list flows", err)
	}
	return summaries, nil
}

// Delete removes a flow. Deleting what is absent is a no-op.
func (r *FlowRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM flows WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewDatabaseError("failed to delete flow", err)
	}
	return nil
}
