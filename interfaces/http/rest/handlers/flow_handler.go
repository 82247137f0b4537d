package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	cmdbus "fluxo-backend/application/commands/bus"
	querybus "fluxo-backend/application/queries/bus"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/queries"
	"fluxo-backend/domain/flow"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/common"
)

const maxBodySize = 1 << 20 // 1 MiB

// FlowHandler serves flow-level CRUD, export and validation
type FlowHandler struct {
	commandBus *cmdbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewFlowHandler creates the handler
func NewFlowHandler(commandBus *cmdbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *FlowHandler {
	return &FlowHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// ListFlows handles GET /flows
func (h *FlowHandler) ListFlows(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListFlowsQuery{UserID: user.UserID})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateFlow handles POST /flows
func (h *FlowHandler) CreateFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateFlowCommand{
		UserID: user.UserID,
		Name:   body.Name,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, queries.BuildFlowView(result.(*flow.Flow)))
}

// GetFlow handles GET /flows/{flowID}
func (h *FlowHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetFlowQuery{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// RenameFlow handles PUT /flows/{flowID}
func (h *FlowHandler) RenameFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.RenameFlowCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
		Name:   body.Name,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, queries.BuildFlowView(result.(*flow.Flow)))
}

// DeleteFlow handles DELETE /flows/{flowID}
func (h *FlowHandler) DeleteFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if _, err := h.commandBus.Send(r.Context(), commands.DeleteFlowCommand{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
	}); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// ExportFlow handles GET /flows/{flowID}/export
func (h *FlowHandler) ExportFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ExportFlowQuery{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// ImportFlow handles POST /flows/import
func (h *FlowHandler) ImportFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var snap flow.Snapshot
	if err := common.ParseJSONBody(r, &snap, maxBodySize); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid snapshot")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ImportFlowCommand{
		UserID:   user.UserID,
		Snapshot: snap,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, queries.BuildFlowView(result.(*flow.Flow)))
}

// ValidateFlow handles GET /flows/{flowID}/validate
func (h *FlowHandler) ValidateFlow(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ValidateFlowQuery{
		FlowID: chi.URLParam(r, "flowID"),
		UserID: user.UserID,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetPalette handles GET /palette
func (h *FlowHandler) GetPalette(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetPaletteQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
