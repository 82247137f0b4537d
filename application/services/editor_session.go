package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
	"fluxo-backend/pkg/observability"
)

// DragPayload is the contract a node palette attaches to a drag
// operation: a type tag plus the label shown on the new card.
type DragPayload struct {
	NodeType string `json:"nodeType"`
	Label    string `json:"label"`
}

// Viewport is the transient pan/zoom state of a canvas
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// EditorSession holds the transient view state of one open editor:
// which node is selected, which cards are collapsed, where the camera
// is. None of this touches the flow's persisted data.
type EditorSession struct {
	flowID    string
	userID    string
	mu        sync.Mutex
	selection string
	collapsed map[string]bool
	viewport  Viewport
}

// FlowID returns the flow this session edits
func (s *EditorSession) FlowID() string { return s.flowID }

// UserID returns the session owner
func (s *EditorSession) UserID() string { return s.userID }

// SelectNode makes a node the sole selection. Selecting replaces any
// previous selection; only one node is selected at a time.
func (s *EditorSession) SelectNode(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nodeID
}

// ClearSelection deselects, as when clicking empty canvas or closing
// the inspector
func (s *EditorSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = ""
}

// Selection returns the selected node id, if any
func (s *EditorSession) Selection() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection, s.selection != ""
}

// ToggleCollapsed flips a node card between expanded and collapsed.
// This is purely a rendering toggle.
func (s *EditorSession) ToggleCollapsed(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed[nodeID] = !s.collapsed[nodeID]
	return s.collapsed[nodeID]
}

// IsCollapsed reports whether a node card is collapsed
func (s *EditorSession) IsCollapsed(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed[nodeID]
}

// DropSelection drops selection and collapse state for a node that no
// longer exists
func (s *EditorSession) DropSelection(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nodeID {
		s.selection = ""
	}
	delete(s.collapsed, nodeID)
}

// SetViewport records the camera position
func (s *EditorSession) SetViewport(v Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

// Viewport returns the camera position
func (s *EditorSession) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SessionManager owns the open editor sessions and translates canvas
// gestures into commands.
type SessionManager struct {
	cmdBus  *bus.CommandBus
	metrics *observability.Metrics
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*EditorSession
}

// NewSessionManager creates the session manager
func NewSessionManager(cmdBus *bus.CommandBus, metrics *observability.Metrics, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		cmdBus:   cmdBus,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[string]*EditorSession),
	}
}

func sessionKey(flowID, userID string) string {
	return flowID + "/" + userID
}

// Open returns the session for a flow and user, creating it on first
// use. A flow is owned by one session per user; reopening returns the
// same state.
func (m *SessionManager) Open(flowID, userID string) *EditorSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(flowID, userID)
	if s, exists := m.sessions[key]; exists {
		return s
	}
	s := &EditorSession{
		flowID:    flowID,
		userID:    userID,
		collapsed: make(map[string]bool),
		viewport:  Viewport{Zoom: 1},
	}
	m.sessions[key] = s
	m.metrics.OpenSessions.Inc()
	return s
}

// Close discards a session's transient state
func (m *SessionManager) Close(flowID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(flowID, userID)
	if _, exists := m.sessions[key]; exists {
		delete(m.sessions, key)
		m.metrics.OpenSessions.Dec()
	}
}

// ForgetNode drops selection and collapse state for a node in every
// open session of a flow. Called after the node is deleted so reopened
// editors do not reference it.
func (m *SessionManager) ForgetNode(flowID, nodeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.flowID == flowID {
			s.DropSelection(nodeID)
		}
	}
}

// DropNode handles a drag-and-drop-to-create gesture. A missing or
// malformed payload rejects the drop silently; the palette never gets
// an error for garbage it produced.
func (m *SessionManager) DropNode(ctx context.Context, session *EditorSession, payload *DragPayload, x, y float64) (interface{}, error) {
	if payload == nil || payload.NodeType == "" {
		m.logger.Debug("ignoring malformed drop payload",
			zap.String("flow_id", session.FlowID()))
		return nil, nil
	}
	return m.cmdBus.Send(ctx, commands.AddNodeCommand{
		FlowID:   session.FlowID(),
		UserID:   session.UserID(),
		NodeType: payload.NodeType,
		Label:    payload.Label,
		X:        x,
		Y:        y,
	})
}

// ConnectGesture handles dragging from an output handle to an input
// handle. Releasing over empty space (no target) is a no-op.
func (m *SessionManager) ConnectGesture(ctx context.Context, session *EditorSession, sourceID, targetID string) (interface{}, error) {
	if targetID == "" {
		return nil, nil
	}
	return m.cmdBus.Send(ctx, commands.ConnectNodesCommand{
		FlowID:   session.FlowID(),
		UserID:   session.UserID(),
		SourceID: sourceID,
		TargetID: targetID,
	})
}
