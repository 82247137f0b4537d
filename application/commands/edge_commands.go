package commands

import (
	apperrors "fluxo-backend/pkg/errors"
)

// ConnectNodesCommand creates a directed edge between two nodes
type ConnectNodesCommand struct {
	FlowID   string
	UserID   string
	SourceID string
	TargetID string
}

// Validate implements bus.Command
func (c ConnectNodesCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.SourceID == "" {
		return apperrors.NewValidationError("source node id is required")
	}
	if c.TargetID == "" {
		return apperrors.NewValidationError("target node id is required")
	}
	return nil
}

// RemoveEdgeCommand disconnects an edge
type RemoveEdgeCommand struct {
	FlowID string
	UserID string
	EdgeID string
}

// Validate implements bus.Command
func (c RemoveEdgeCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.EdgeID == "" {
		return apperrors.NewValidationError("edge id is required")
	}
	return nil
}

// TagEdgeBranchCommand marks a condition exit as true or false. An
// empty branch clears the tag.
type TagEdgeBranchCommand struct {
	FlowID string
	UserID string
	EdgeID string
	Branch string
}

// Validate implements bus.Command
func (c TagEdgeBranchCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.EdgeID == "" {
		return apperrors.NewValidationError("edge id is required")
	}
	return nil
}
