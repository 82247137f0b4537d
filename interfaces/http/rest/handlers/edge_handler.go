package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cmdbus "fluxo-backend/application/commands/bus"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/queries"
	"fluxo-backend/domain/flow"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/common"
)

// EdgeHandler serves edge creation, removal and branch tagging
type EdgeHandler struct {
	commandBus *cmdbus.CommandBus
	logger     *zap.Logger
}

// NewEdgeHandler creates the handler
func NewEdgeHandler(commandBus *cmdbus.CommandBus, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

func respondEdge(w http.ResponseWriter, status int, result interface{}) {
	edge, ok := result.(*flow.Edge)
	if !ok || edge == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}
	common.RespondJSON(w, status, queries.BuildEdgeView(edge))
}

// ConnectNodes handles POST /flows/{flowID}/edges
func (h *EdgeHandler) ConnectNodes(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Source string `json:"source" validate:"required"`
		Target string `json:"target" validate:"required"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ConnectNodesCommand{
		FlowID:   chi.URLParam(r, "flowID"),
		UserID:   user.UserID,
		SourceID: body.Source,
		TargetID: body.Target,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondEdge(w, http.StatusCreated, result)
}

// RemoveEdge handles DELETE /flows/{flowID}/edges/{edgeID}
func (h *EdgeHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.RemoveEdgeCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		EdgeID: chi.URLParam(r, "edgeID"),
	}); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// TagEdgeBranch handles PUT /flows/{flowID}/edges/{edgeID}/branch
func (h *EdgeHandler) TagEdgeBranch(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Branch string `json:"branch" validate:"omitempty,oneof=true false"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.TagEdgeBranchCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		EdgeID: chi.URLParam(r, "edgeID"),
		Branch: body.Branch,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	respondEdge(w, http.StatusOK, result)
}
