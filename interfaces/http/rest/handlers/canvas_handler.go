package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fluxo-backend/application/queries"
	"fluxo-backend/application/services"
	"fluxo-backend/domain/flow"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/common"
)

// CanvasHandler serves per-session canvas state and gestures. The
// session state (selection, collapsed cards, viewport) never touches
// the persisted flow.
type CanvasHandler struct {
	sessions *services.SessionManager
	logger   *zap.Logger
}

// NewCanvasHandler creates the handler
func NewCanvasHandler(sessions *services.SessionManager, logger *zap.Logger) *CanvasHandler {
	return &CanvasHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// sessionState is the wire form of one editor session
type sessionState struct {
	FlowID    string            `json:"flowId"`
	Selection string            `json:"selection,omitempty"`
	Viewport  services.Viewport `json:"viewport"`
}

func stateOf(s *services.EditorSession) sessionState {
	selection, _ := s.Selection()
	return sessionState{
		FlowID:    s.FlowID(),
		Selection: selection,
		Viewport:  s.Viewport(),
	}
}

func (h *CanvasHandler) session(w http.ResponseWriter, r *http.Request) (*services.EditorSession, bool) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return nil, false
	}
	return h.sessions.Open(chi.URLParam(r, "flowID"), user.UserID), true
}

// OpenSession handles POST /flows/{flowID}/canvas/session
func (h *CanvasHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	common.RespondJSON(w, http.StatusOK, stateOf(session))
}

// CloseSession handles DELETE /flows/{flowID}/canvas/session
func (h *CanvasHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.sessions.Close(chi.URLParam(r, "flowID"), user.UserID)
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// DropNode handles POST /flows/{flowID}/canvas/drop. A malformed
// palette payload is ignored rather than rejected.
func (h *CanvasHandler) DropNode(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Payload *services.DragPayload `json:"payload"`
		X       float64               `json:"x"`
		Y       float64               `json:"y"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.sessions.DropNode(r.Context(), session, body.Payload, body.X, body.Y)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	node, isNode := result.(*flow.Node)
	if !isNode || node == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}
	common.RespondJSON(w, http.StatusCreated, queries.BuildNodeView(node))
}

// ConnectGesture handles POST /flows/{flowID}/canvas/connect. Releasing
// the wire over empty canvas (no target) is a no-op.
func (h *CanvasHandler) ConnectGesture(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := h.sessions.ConnectGesture(r.Context(), session, body.Source, body.Target)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	edge, isEdge := result.(*flow.Edge)
	if !isEdge || edge == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}
	common.RespondJSON(w, http.StatusCreated, queries.BuildEdgeView(edge))
}

// SelectNode handles PUT /flows/{flowID}/canvas/selection
func (h *CanvasHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var body struct {
		NodeID string `json:"nodeId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	session.SelectNode(body.NodeID)
	common.RespondJSON(w, http.StatusOK, stateOf(session))
}

// ClearSelection handles DELETE /flows/{flowID}/canvas/selection
func (h *CanvasHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.ClearSelection()
	common.RespondJSON(w, http.StatusOK, stateOf(session))
}

// ToggleCollapse handles POST /flows/{flowID}/canvas/nodes/{nodeID}/collapse
func (h *CanvasHandler) ToggleCollapse(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	collapsed := session.ToggleCollapsed(chi.URLParam(r, "nodeID"))
	common.RespondJSON(w, http.StatusOK, map[string]bool{"collapsed": collapsed})
}

// SetViewport handles PUT /flows/{flowID}/canvas/viewport
func (h *CanvasHandler) SetViewport(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var viewport services.Viewport
	if err := common.ParseJSONBody(r, &viewport, maxBodySize); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}

	session.SetViewport(viewport)
	common.RespondJSON(w, http.StatusOK, stateOf(session))
}
