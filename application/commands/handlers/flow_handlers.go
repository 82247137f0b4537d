package handlers

import (
	"context"
	"fmt"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

// CreateFlowHandler opens a new empty flow
type CreateFlowHandler struct {
	Deps
}

// NewCreateFlowHandler creates the handler
func NewCreateFlowHandler(deps Deps) *CreateFlowHandler {
	return &CreateFlowHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *CreateFlowHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreateFlowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := flow.NewFlow(c.UserID, c.Name, h.IDs, h.DomainCfg)
	if err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// RenameFlowHandler changes a flow's display name
type RenameFlowHandler struct {
	Deps
}

// NewRenameFlowHandler creates the handler
func NewRenameFlowHandler(deps Deps) *RenameFlowHandler {
	return &RenameFlowHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *RenameFlowHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RenameFlowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := f.Rename(c.Name); err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFlowHandler removes a flow entirely
type DeleteFlowHandler struct {
	Deps
}

// NewDeleteFlowHandler creates the handler
func NewDeleteFlowHandler(deps Deps) *DeleteFlowHandler {
	return &DeleteFlowHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *DeleteFlowHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteFlowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	if _, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID); err != nil {
		if apperrors.IsNotFound(err) {
			// deleting what is already gone is fine
			return nil, nil
		}
		return nil, err
	}
	if err := h.Repo.Delete(ctx, c.FlowID); err != nil {
		return nil, err
	}
	return nil, nil
}

// ImportFlowHandler restores an exported snapshot as a flow owned by
// the importing user
type ImportFlowHandler struct {
	Deps
}

// NewImportFlowHandler creates the handler
func NewImportFlowHandler(deps Deps) *ImportFlowHandler {
	return &ImportFlowHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *ImportFlowHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.ImportFlowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	snap := c.Snapshot
	// the import belongs to whoever imported it, under a fresh id
	snap.ID = flow.NewFlowID().String()
	snap.UserID = c.UserID
	snap.Version = 0

	f, err := flow.RestoreFlow(snap, h.IDs, h.DomainCfg)
	if err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
