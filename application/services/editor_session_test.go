package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
	"fluxo-backend/pkg/observability"
)

type recordingHandler struct {
	received []bus.Command
}

func (h *recordingHandler) Handle(_ context.Context, cmd bus.Command) (interface{}, error) {
	h.received = append(h.received, cmd)
	return nil, nil
}

func newTestManager(t *testing.T) (*SessionManager, *recordingHandler) {
	t.Helper()
	cmdBus := bus.NewCommandBus()
	recorder := &recordingHandler{}
	require.NoError(t, cmdBus.Register(commands.AddNodeCommand{}, recorder))
	require.NoError(t, cmdBus.Register(commands.ConnectNodesCommand{}, recorder))

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return NewSessionManager(cmdBus, metrics, zap.NewNop()), recorder
}

func TestDropNode(t *testing.T) {
	t.Run("dispatches an add command with canvas coordinates", func(t *testing.T) {
		m, recorder := newTestManager(t)
		s := m.Open("flow-1", "user-1")

		_, err := m.DropNode(context.Background(), s, &DragPayload{NodeType: "message", Label: "Boas-vindas"}, 120, -40)
		require.NoError(t, err)

		require.Len(t, recorder.received, 1)
		cmd := recorder.received[0].(commands.AddNodeCommand)
		assert.Equal(t, "flow-1", cmd.FlowID)
		assert.Equal(t, "message", cmd.NodeType)
		assert.Equal(t, "Boas-vindas", cmd.Label)
		assert.Equal(t, 120.0, cmd.X)
		assert.Equal(t, -40.0, cmd.Y)
	})

	t.Run("missing or malformed payload is a silent no-op", func(t *testing.T) {
		m, recorder := newTestManager(t)
		s := m.Open("flow-1", "user-1")

		result, err := m.DropNode(context.Background(), s, nil, 0, 0)
		assert.NoError(t, err)
		assert.Nil(t, result)

		result, err = m.DropNode(context.Background(), s, &DragPayload{Label: "sem tipo"}, 0, 0)
		assert.NoError(t, err)
		assert.Nil(t, result)

		assert.Empty(t, recorder.received)
	})
}

func TestConnectGesture(t *testing.T) {
	m, recorder := newTestManager(t)
	s := m.Open("flow-1", "user-1")

	// releasing over empty space does nothing
	result, err := m.ConnectGesture(context.Background(), s, "n1", "")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, recorder.received)

	_, err = m.ConnectGesture(context.Background(), s, "n1", "n2")
	require.NoError(t, err)
	require.Len(t, recorder.received, 1)
	cmd := recorder.received[0].(commands.ConnectNodesCommand)
	assert.Equal(t, "n1", cmd.SourceID)
	assert.Equal(t, "n2", cmd.TargetID)
}

func TestSelectionIsSingle(t *testing.T) {
	m, _ := newTestManager(t)
	s := m.Open("flow-1", "user-1")

	_, selected := s.Selection()
	assert.False(t, selected)

	s.SelectNode("n1")
	s.SelectNode("n2")
	current, selected := s.Selection()
	assert.True(t, selected)
	assert.Equal(t, "n2", current)

	s.ClearSelection()
	_, selected = s.Selection()
	assert.False(t, selected)
}

func TestCollapseToggle(t *testing.T) {
	m, _ := newTestManager(t)
	s := m.Open("flow-1", "user-1")

	assert.False(t, s.IsCollapsed("n1"))
	assert.True(t, s.ToggleCollapsed("n1"))
	assert.True(t, s.IsCollapsed("n1"))
	assert.False(t, s.ToggleCollapsed("n1"))
}

func TestDropSelection(t *testing.T) {
	m, _ := newTestManager(t)
	s := m.Open("flow-1", "user-1")

	s.SelectNode("n1")
	s.ToggleCollapsed("n1")
	s.DropSelection("n1")

	_, selected := s.Selection()
	assert.False(t, selected)
	assert.False(t, s.IsCollapsed("n1"))
}

func TestForgetNode(t *testing.T) {
	m, _ := newTestManager(t)

	a := m.Open("flow-1", "user-1")
	a.SelectNode("n1")
	a.ToggleCollapsed("n1")
	b := m.Open("flow-1", "user-2")
	b.SelectNode("n1")
	other := m.Open("flow-2", "user-1")
	other.SelectNode("n1")

	m.ForgetNode("flow-1", "n1")

	_, selected := a.Selection()
	assert.False(t, selected)
	assert.False(t, a.IsCollapsed("n1"))
	_, selected = b.Selection()
	assert.False(t, selected)

	// sessions on other flows keep their state
	current, _ := other.Selection()
	assert.Equal(t, "n1", current)
}

func TestSessionLifecycle(t *testing.T) {
	m, _ := newTestManager(t)

	a := m.Open("flow-1", "user-1")
	a.SelectNode("n1")

	// reopening returns the same state
	b := m.Open("flow-1", "user-1")
	current, _ := b.Selection()
	assert.Equal(t, "n1", current)

	// another user's session is independent
	c := m.Open("flow-1", "user-2")
	_, selected := c.Selection()
	assert.False(t, selected)

	m.Close("flow-1", "user-1")
	fresh := m.Open("flow-1", "user-1")
	_, selected = fresh.Selection()
	assert.False(t, selected)

	assert.Equal(t, Viewport{Zoom: 1}, fresh.Viewport())
	fresh.SetViewport(Viewport{X: 10, Y: 20, Zoom: 0.5})
	assert.Equal(t, Viewport{X: 10, Y: 20, Zoom: 0.5}, fresh.Viewport())
}
