package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cmdbus "fluxo-backend/application/commands/bus"
	querybus "fluxo-backend/application/queries/bus"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/queries"
	"fluxo-backend/application/services"
	"fluxo-backend/domain/flow"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/common"
)

// NodeHandler serves node CRUD, field edits and the inspector schema
type NodeHandler struct {
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	sessions   *services.SessionManager
	logger     *zap.Logger
}

// NewNodeHandler creates the handler
func NewNodeHandler(commandBus *cmdbus.CommandBus, queryBus *querybus.QueryBus, sessions *services.SessionManager, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		sessions:   sessions,
		logger:     logger,
	}
}

// respondNode writes a node result, tolerating the nil a no-op edit
// returns
func respondNode(w http.ResponseWriter, status int, result interface{}) {
	node, ok := result.(*flow.Node)
	if !ok || node == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}
	common.RespondJSON(w, status, queries.BuildNodeView(node))
}

// AddNode handles POST /flows/{flowID}/nodes
func (h *NodeHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Type  string  `json:"type" validate:"required"`
		Label string  `json:"label"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddNodeCommand{
		FlowID:   chi.URLParam(r, "flowID"),
		UserID:   user.UserID,
		NodeType: body.Type,
		Label:    body.Label,
		X:        body.X,
		Y:        body.Y,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusCreated, result)
}

// UpdateNodeField handles PATCH /flows/{flowID}/nodes/{nodeID}
func (h *NodeHandler) UpdateNodeField(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Field string      `json:"field" validate:"required"`
		Value interface{} `json:"value"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateNodeDataCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
		Field:  body.Field,
		Value:  body.Value,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusOK, result)
}

// MoveNode handles PUT /flows/{flowID}/nodes/{nodeID}/position
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.MoveNodeCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
		X:      body.X,
		Y:      body.Y,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusOK, result)
}

// DuplicateNode handles POST /flows/{flowID}/nodes/{nodeID}/duplicate
func (h *NodeHandler) DuplicateNode(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DuplicateNodeCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusCreated, result)
}

// DeleteNode handles DELETE /flows/{flowID}/nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	flowID := chi.URLParam(r, "flowID")
	nodeID := chi.URLParam(r, "nodeID")
	if _, err := h.commandBus.Send(r.Context(), commands.DeleteNodeCommand{
		FlowID: flowID,
		UserID: user.UserID,
		NodeID: nodeID,
	}); err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.sessions.ForgetNode(flowID, nodeID)
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// GetNodeSchema handles GET /flows/{flowID}/nodes/{nodeID}/schema
func (h *NodeHandler) GetNodeSchema(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetNodeSchemaQuery{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// AddButton handles POST /flows/{flowID}/nodes/{nodeID}/buttons
func (h *NodeHandler) AddButton(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddButtonCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// RemoveButton handles DELETE /flows/{flowID}/nodes/{nodeID}/buttons/{buttonID}
func (h *NodeHandler) RemoveButton(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RemoveButtonCommand{
		FlowID:   chi.URLParam(r, "flowID"),
		UserID:   user.UserID,
		NodeID:   chi.URLParam(r, "nodeID"),
		ButtonID: chi.URLParam(r, "buttonID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusOK, result)
}

// AddHeader handles POST /flows/{flowID}/nodes/{nodeID}/headers
func (h *NodeHandler) AddHeader(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddHeaderCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		NodeID: chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// RemoveHeader handles DELETE /flows/{flowID}/nodes/{nodeID}/headers/{headerID}
func (h *NodeHandler) RemoveHeader(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RemoveHeaderCommand{
		FlowID:   chi.URLParam(r, "flowID"),
		UserID:   user.UserID,
		NodeID:   chi.URLParam(r, "nodeID"),
		HeaderID: chi.URLParam(r, "headerID"),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondNode(w, http.StatusOK, result)
}
