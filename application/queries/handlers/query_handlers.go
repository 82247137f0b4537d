package handlers

import (
	"context"
	"fmt"

	"fluxo-backend/application/ports"
	"fluxo-backend/application/queries"
	"fluxo-backend/application/queries/bus"
	"fluxo-backend/domain/flow"
	apperrors "fluxo-backend/pkg/errors"
)

// Deps bundles what every query handler needs
type Deps struct {
	Repo        ports.FlowRepository
	WebhookBase string
}

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

// GetFlowHandler returns the full editor payload for one flow
type GetFlowHandler struct {
	Deps
}

// NewGetFlowHandler creates the handler
func NewGetFlowHandler(deps Deps) *GetFlowHandler {
	return &GetFlowHandler{Deps: deps}
}

// Handle implements bus.QueryHandler
func (h *GetFlowHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetFlowQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	f, err := h.loadOwnedFlow(ctx, q.FlowID, q.UserID)
	if err != nil {
		return nil, err
	}
	return queries.BuildFlowView(f), nil
}

// ListFlowsHandler lists a user's flows
type ListFlowsHandler struct {
	Deps
}

// NewListFlowsHandler creates the handler
func NewListFlowsHandler(deps Deps) *ListFlowsHandler {
	return &ListFlowsHandler{Deps: deps}
}

// Handle implements bus.QueryHandler
func (h *ListFlowsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListFlowsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.Repo.FindByUser(ctx, q.UserID)
}

// GetNodeSchemaHandler builds the inspector form for one node
type GetNodeSchemaHandler struct {
	Deps
}

// NewGetNodeSchemaHandler creates the handler
func NewGetNodeSchemaHandler(deps Deps) *GetNodeSchemaHandler {
	return &GetNodeSchemaHandler{Deps: deps}
}

// Handle implements bus.QueryHandler
func (h *GetNodeSchemaHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetNodeSchemaQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	f, err := h.loadOwnedFlow(ctx, q.FlowID, q.UserID)
	if err != nil {
		return nil, err
	}
	node, exists := f.Node(q.NodeID)
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("node %s not found", q.NodeID))
	}
	return queries.InspectorSchema{
		NodeID:   node.ID().String(),
		Type:     string(node.Type()),
		Fields:   node.Fields(h.WebhookBase),
		Warnings: node.Warnings(),
	}, nil
}

// GetPaletteHandler lists the draggable node types
type GetPaletteHandler struct{}

// NewGetPaletteHandler creates the handler
func NewGetPaletteHandler() *GetPaletteHandler {
	return &GetPaletteHandler{}
}

// Handle implements bus.QueryHandler
func (h *GetPaletteHandler) Handle(_ context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.GetPaletteQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	types := flow.NodeTypes()
	palette := make([]queries.PaletteEntry, 0, len(types))
	for _, t := range types {
		palette = append(palette, queries.PaletteEntry{Type: string(t), Visual: flow.ResolveVisual(t)})
	}
	return palette, nil
}

// ExportFlowHandler produces the flow's portable snapshot
type ExportFlowHandler struct {
	Deps
}

// NewExportFlowHandler creates the handler
func NewExportFlowHandler(deps Deps) *ExportFlowHandler {
	return &ExportFlowHandler{Deps: deps}
}

// Handle implements bus.QueryHandler
func (h *ExportFlowHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ExportFlowQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	f, err := h.loadOwnedFlow(ctx, q.FlowID, q.UserID)
	if err != nil {
		return nil, err
	}
	return f.Snapshot(), nil
}

// ValidateFlowHandler collects the flow's configuration warnings
type ValidateFlowHandler struct {
	Deps
}

// NewValidateFlowHandler creates the handler
func NewValidateFlowHandler(deps Deps) *ValidateFlowHandler {
	return &ValidateFlowHandler{Deps: deps}
}

// Handle implements bus.QueryHandler
func (h *ValidateFlowHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ValidateFlowQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	f, err := h.loadOwnedFlow(ctx, q.FlowID, q.UserID)
	if err != nil {
		return nil, err
	}
	warnings := f.Validate()
	return queries.ValidationReport{
		FlowID:   q.FlowID,
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	}, nil
}
