package handlers

import (
	"context"
	"fmt"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
	"fluxo-backend/domain/flow"
)

// AddNodeHandler drops a new node onto the canvas
type AddNodeHandler struct {
	Deps
}

// NewAddNodeHandler creates the handler
func NewAddNodeHandler(deps Deps) *AddNodeHandler {
	return &AddNodeHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *AddNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddNodeCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	node, err := f.AddNode(flow.NodeType(c.NodeType), c.Label, flow.Position{X: c.X, Y: c.Y})
	if err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return node, nil
}

// UpdateNodeDataHandler sets a single field of a node
type UpdateNodeDataHandler struct {
	Deps
}

// NewUpdateNodeDataHandler creates the handler
func NewUpdateNodeDataHandler(deps Deps) *UpdateNodeDataHandler {
	return &UpdateNodeDataHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *UpdateNodeDataHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateNodeDataCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := f.UpdateNodeData(c.NodeID, c.Field, c.Value); err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	node, _ := f.Node(c.NodeID)
	return node, nil
}

// MoveNodeHandler records a node's position after a drag
type MoveNodeHandler struct {
	Deps
}

// NewMoveNodeHandler creates the handler
func NewMoveNodeHandler(deps Deps) *MoveNodeHandler {
	return &MoveNodeHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *MoveNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.MoveNodeCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	f.MoveNode(c.NodeID, flow.Position{X: c.X, Y: c.Y})
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	node, _ := f.Node(c.NodeID)
	return node, nil
}

// DuplicateNodeHandler deep-copies a node
type DuplicateNodeHandler struct {
	Deps
}

// NewDuplicateNodeHandler creates the handler
func NewDuplicateNodeHandler(deps Deps) *DuplicateNodeHandler {
	return &DuplicateNodeHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *DuplicateNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DuplicateNodeCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	duplicate, err := f.DuplicateNode(c.NodeID)
	if err != nil {
		return nil, err
	}
	if duplicate == nil {
		// source vanished under us; nothing to persist
		return nil, nil
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return duplicate, nil
}

// DeleteNodeHandler removes a node and cascades its edges
type DeleteNodeHandler struct {
	Deps
}

// NewDeleteNodeHandler creates the handler
func NewDeleteNodeHandler(deps Deps) *DeleteNodeHandler {
	return &DeleteNodeHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *DeleteNodeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteNodeCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	f.DeleteNode(c.NodeID)
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return nil, nil
}

// AddButtonHandler appends a button to a buttons node
type AddButtonHandler struct {
	Deps
}

// NewAddButtonHandler creates the handler
func NewAddButtonHandler(deps Deps) *AddButtonHandler {
	return &AddButtonHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *AddButtonHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddButtonCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	button, err := f.AddNodeButton(c.NodeID)
	if err != nil {
		return nil, err
	}
	if button == nil {
		return nil, nil
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return button, nil
}

// RemoveButtonHandler removes a button by id
type RemoveButtonHandler struct {
	Deps
}

// NewRemoveButtonHandler creates the handler
func NewRemoveButtonHandler(deps Deps) *RemoveButtonHandler {
	return &RemoveButtonHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *RemoveButtonHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RemoveButtonCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := f.RemoveNodeButton(c.NodeID, c.ButtonID); err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	node, _ := f.Node(c.NodeID)
	return node, nil
}

// AddHeaderHandler appends a request header row to an api node
type AddHeaderHandler struct {
	Deps
}

// NewAddHeaderHandler creates the handler
func NewAddHeaderHandler(deps Deps) *AddHeaderHandler {
	return &AddHeaderHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *AddHeaderHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddHeaderCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	header, err := f.AddNodeHeader(c.NodeID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return header, nil
}

// RemoveHeaderHandler removes a request header row by id
type RemoveHeaderHandler struct {
	Deps
}

// NewRemoveHeaderHandler creates the handler
func NewRemoveHeaderHandler(deps Deps) *RemoveHeaderHandler {
	return &RemoveHeaderHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *RemoveHeaderHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RemoveHeaderCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := f.RemoveNodeHeader(c.NodeID, c.HeaderID); err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	node, _ := f.Node(c.NodeID)
	return node, nil
}
