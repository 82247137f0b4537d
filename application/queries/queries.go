package queries

import (
	apperrors "fluxo-backend/pkg/errors"
)

// GetFlowQuery fetches one flow with all nodes and edges
type GetFlowQuery struct {
	FlowID string
	UserID string
}

// Validate implements bus.Query
func (q GetFlowQuery) Validate() error {
	if q.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	return nil
}

// ListFlowsQuery lists a user's flows
type ListFlowsQuery struct {
	UserID string
}

// Validate implements bus.Query
func (q ListFlowsQuery) Validate() error {
	if q.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return nil
}

// GetNodeSchemaQuery builds the inspector form for one node
type GetNodeSchemaQuery struct {
	FlowID string
	UserID string
	NodeID string
}

// Validate implements bus.Query
func (q GetNodeSchemaQuery) Validate() error {
	if q.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if q.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// GetPaletteQuery lists the node types available for dragging onto
// the canvas. It takes no parameters; the type set is closed.
type GetPaletteQuery struct{}

// Validate implements bus.Query
func (q GetPaletteQuery) Validate() error { return nil }

// ExportFlowQuery produces the flow's portable snapshot
type ExportFlowQuery struct {
	FlowID string
	UserID string
}

// Validate implements bus.Query
func (q ExportFlowQuery) Validate() error {
	if q.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	return nil
}

// ValidateFlowQuery collects the flow's configuration warnings
type ValidateFlowQuery struct {
	FlowID string
	UserID string
}

// Validate implements bus.Query
func (q ValidateFlowQuery) Validate() error {
	if q.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	return nil
}
