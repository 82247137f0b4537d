package commands

import (
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

// CreateFlowCommand opens a brand new empty flow for a user
type CreateFlowCommand struct {
	UserID string
	Name   string
}

// Validate implements bus.Command
func (c CreateFlowCommand) Validate() error {
	if c.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return nil
}

// RenameFlowCommand changes a flow's display name
type RenameFlowCommand struct {
	FlowID string
	UserID string
	Name   string
}

// Validate implements bus.Command
func (c RenameFlowCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.Name == "" {
		return apperrors.NewValidationError("flow name is required")
	}
	return nil
}

// DeleteFlowCommand removes a flow and its persisted snapshot
type DeleteFlowCommand struct {
	FlowID string
	UserID string
}

// Validate implements bus.Command
func (c DeleteFlowCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	return nil
}

// ImportFlowCommand loads an exported snapshot as a new flow owned by
// the importing user
type ImportFlowCommand struct {
	UserID   string
	Snapshot flow.Snapshot
}

// Validate implements bus.Command
func (c ImportFlowCommand) Validate() error {
	if c.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if c.Snapshot.ID == "" {
		return apperrors.NewValidationError("snapshot has no flow id")
	}
	return nil
}
