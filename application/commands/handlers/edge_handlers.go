package handlers

import (
	"context"
	"fmt"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
)

// ConnectNodesHandler creates an edge between two nodes
type ConnectNodesHandler struct {
	Deps
}

// NewConnectNodesHandler creates the handler
func NewConnectNodesHandler(deps Deps) *ConnectNodesHandler {
	return &ConnectNodesHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *ConnectNodesHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.ConnectNodesCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	edge, err := f.Connect(c.SourceID, c.TargetID)
	if err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return edge, nil
}

// RemoveEdgeHandler disconnects an edge
type RemoveEdgeHandler struct {
	Deps
}

// NewRemoveEdgeHandler creates the handler
func NewRemoveEdgeHandler(deps Deps) *RemoveEdgeHandler {
	return &RemoveEdgeHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *RemoveEdgeHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.RemoveEdgeCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	f.RemoveEdge(c.EdgeID)
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	return nil, nil
}

// TagEdgeBranchHandler marks a condition exit as true or false
type TagEdgeBranchHandler struct {
	Deps
}

// NewTagEdgeBranchHandler creates the handler
func NewTagEdgeBranchHandler(deps Deps) *TagEdgeBranchHandler {
	return &TagEdgeBranchHandler{Deps: deps}
}

// Handle implements bus.CommandHandler
func (h *TagEdgeBranchHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.TagEdgeBranchCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected command type %T", cmd)
	}

	f, err := h.loadOwnedFlow(ctx, c.FlowID, c.UserID)
	if err != nil {
		return nil, err
	}
	if err := f.TagEdgeBranch(c.EdgeID, c.Branch); err != nil {
		return nil, err
	}
	if err := h.saveAndPublish(ctx, f); err != nil {
		return nil, err
	}
	edge, _ := f.Edge(c.EdgeID)
	return edge, nil
}
