package flow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/events"
	apperrors "fluxo-backend/pkg/errors"
)

// seqIDSource issues predictable ids for tests
type seqIDSource struct {
	next int
}

func (s *seqIDSource) NextID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func newTestFlow(t *testing.T) *Flow {
	t.Helper()
	f, err := NewFlow("user-1", "Fluxo de teste", &seqIDSource{}, *domaincfg.DefaultDomainConfig())
	require.NoError(t, err)
	f.MarkEventsAsCommitted()
	return f
}

func TestNewFlow(t *testing.T) {
	t.Run("requires a user", func(t *testing.T) {
		_, err := NewFlow("", "x", NewUUIDSource(), *domaincfg.DefaultDomainConfig())
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("empty name gets the default", func(t *testing.T) {
		f, err := NewFlow("user-1", "", NewUUIDSource(), *domaincfg.DefaultDomainConfig())
		require.NoError(t, err)
		assert.Equal(t, "Novo fluxo", f.Name())
	})

	t.Run("raises a created event", func(t *testing.T) {
		f, err := NewFlow("user-1", "Onboarding", NewUUIDSource(), *domaincfg.DefaultDomainConfig())
		require.NoError(t, err)
		evts := f.GetUncommittedEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, "flow.created", evts[0].EventName())
	})
}

func TestAddNode(t *testing.T) {
	t.Run("assigns unique store-issued ids", func(t *testing.T) {
		f := newTestFlow(t)
		a, err := f.AddNode(NodeTypeMessage, "Boas-vindas", Position{X: 10, Y: 20})
		require.NoError(t, err)
		b, err := f.AddNode(NodeTypeMessage, "Despedida", Position{X: 30, Y: 40})
		require.NoError(t, err)

		assert.False(t, a.ID().Equals(b.ID()))
		assert.Equal(t, 2, f.NodeCount())
	})

	t.Run("new node starts with the default description", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeTypeMessage, "Boas-vindas", Position{})
		require.NoError(t, err)
		assert.Equal(t, "Nova configuração", n.Description())
	})

	t.Run("unknown type tags fall back to the default config", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeType("telepathy"), "???", Position{})
		require.NoError(t, err)
		assert.Equal(t, NodeTypeDefault, n.Config().Type())
	})

	t.Run("enforces the node cap", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.MaxNodesPerFlow = 1
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		_, err = f.AddNode(NodeTypeMessage, "a", Position{})
		require.NoError(t, err)
		_, err = f.AddNode(NodeTypeMessage, "b", Position{})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("raises a node added event", func(t *testing.T) {
		f := newTestFlow(t)
		_, err := f.AddNode(NodeTypeTrigger, "Início", Position{})
		require.NoError(t, err)
		evts := f.GetUncommittedEvents()
		require.Len(t, evts, 1)
		added, ok := evts[0].(events.NodeAdded)
		require.True(t, ok)
		assert.Equal(t, "trigger", added.NodeType)
	})
}

func TestUpdateNodeData(t *testing.T) {
	t.Run("updates one field and preserves the rest", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeTypeMessage, "Boas-vindas", Position{})
		require.NoError(t, err)

		require.NoError(t, f.UpdateNodeData(n.ID().String(), "simulateTyping", true))
		require.NoError(t, f.UpdateNodeData(n.ID().String(), "message", "Olá!"))

		data := n.Data()
		assert.Equal(t, "Olá!", data["message"])
		assert.Equal(t, true, data["simulateTyping"])
		assert.Equal(t, "Boas-vindas", data["label"])
	})

	t.Run("unknown node id is a no-op", func(t *testing.T) {
		f := newTestFlow(t)
		assert.NoError(t, f.UpdateNodeData("ghost", "message", "Olá"))
	})

	t.Run("unknown field for the type fails", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeTypeMessage, "x", Position{})
		require.NoError(t, err)
		err = f.UpdateNodeData(n.ID().String(), "temperature", 0.5)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("type tag is immutable", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeTypeMessage, "x", Position{})
		require.NoError(t, err)
		err = f.UpdateNodeData(n.ID().String(), "type", "trigger")
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, NodeTypeMessage, n.Type())
	})

	t.Run("label length is capped", func(t *testing.T) {
		f := newTestFlow(t)
		n, err := f.AddNode(NodeTypeMessage, "x", Position{})
		require.NoError(t, err)
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		err = f.UpdateNodeData(n.ID().String(), "label", string(long))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("message length follows the configured cap", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.MaxButtonMessageSize = 10
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		n, err := f.AddNode(NodeTypeMessage, "x", Position{})
		require.NoError(t, err)

		require.NoError(t, f.UpdateNodeData(n.ID().String(), "message", strings.Repeat("a", 10)))
		err = f.UpdateNodeData(n.ID().String(), "message", strings.Repeat("a", 11))
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("buttons list follows the configured cap", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.MaxButtonsPerNode = 1
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		n, err := f.AddNode(NodeTypeButtons, "Menu", Position{})
		require.NoError(t, err)

		one := []interface{}{map[string]interface{}{"id": "b1", "label": "Sim"}}
		require.NoError(t, f.UpdateNodeData(n.ID().String(), "buttons", one))

		two := append(one, map[string]interface{}{"id": "b2", "label": "Não"})
		err = f.UpdateNodeData(n.ID().String(), "buttons", two)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestMoveNode(t *testing.T) {
	f := newTestFlow(t)
	n, err := f.AddNode(NodeTypeMessage, "x", Position{X: 1, Y: 2})
	require.NoError(t, err)

	f.MoveNode(n.ID().String(), Position{X: -40, Y: 300})
	assert.Equal(t, Position{X: -40, Y: 300}, n.Position())

	// unknown id must not panic or change anything
	f.MoveNode("ghost", Position{X: 9, Y: 9})
	assert.Equal(t, 1, f.NodeCount())
}

func TestDuplicateNode(t *testing.T) {
	t.Run("offsets the copy and deep-copies data", func(t *testing.T) {
		f := newTestFlow(t)
		original, err := f.AddNode(NodeTypeButtons, "Menu", Position{X: 100, Y: 100})
		require.NoError(t, err)
		_, err = f.AddNodeButton(original.ID().String())
		require.NoError(t, err)
		require.NoError(t, f.UpdateNodeData(original.ID().String(), "message", "Escolha:"))

		dup, err := f.DuplicateNode(original.ID().String())
		require.NoError(t, err)
		require.NotNil(t, dup)

		assert.Equal(t, Position{X: 150, Y: 150}, dup.Position())
		assert.False(t, dup.ID().Equals(original.ID()))
		assert.Equal(t, original.Data(), dup.Data())

		// mutating the copy must not leak into the original
		require.NoError(t, f.UpdateNodeData(dup.ID().String(), "message", "Outra coisa"))
		assert.Equal(t, "Escolha:", original.Data()["message"])
	})

	t.Run("does not copy edges", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})
		b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
		_, err := f.Connect(a.ID().String(), b.ID().String())
		require.NoError(t, err)

		_, err = f.DuplicateNode(b.ID().String())
		require.NoError(t, err)
		assert.Equal(t, 1, f.EdgeCount())
	})

	t.Run("unknown id returns nil without error", func(t *testing.T) {
		f := newTestFlow(t)
		dup, err := f.DuplicateNode("ghost")
		assert.NoError(t, err)
		assert.Nil(t, dup)
	})
}

func TestDeleteNode(t *testing.T) {
	t.Run("cascades incident edges", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})
		b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
		c, _ := f.AddNode(NodeTypeMessage, "c", Position{})
		_, err := f.Connect(a.ID().String(), b.ID().String())
		require.NoError(t, err)
		_, err = f.Connect(b.ID().String(), c.ID().String())
		require.NoError(t, err)
		survivor, err := f.Connect(a.ID().String(), c.ID().String())
		require.NoError(t, err)

		f.MarkEventsAsCommitted()
		f.DeleteNode(b.ID().String())

		assert.Equal(t, 2, f.NodeCount())
		require.Equal(t, 1, f.EdgeCount())
		assert.True(t, f.Edges()[0].ID().Equals(survivor.ID()))

		evts := f.GetUncommittedEvents()
		require.Len(t, evts, 1)
		removed, ok := evts[0].(events.NodeRemoved)
		require.True(t, ok)
		assert.Equal(t, 2, removed.EdgesRemoved)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		f := newTestFlow(t)
		f.AddNode(NodeTypeMessage, "a", Position{})
		f.DeleteNode("ghost")
		assert.Equal(t, 1, f.NodeCount())
	})
}

func TestConnect(t *testing.T) {
	t.Run("rejects unknown endpoints observably", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})

		_, err := f.Connect(a.ID().String(), "ghost")
		assert.True(t, apperrors.IsNotFound(err))
		_, err = f.Connect("ghost", a.ID().String())
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, 0, f.EdgeCount())
	})

	t.Run("rejects self connections by default", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeMessage, "a", Position{})
		_, err := f.Connect(a.ID().String(), a.ID().String())
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("allows self connections when configured", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.AllowSelfConnections = true
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		a, _ := f.AddNode(NodeTypeMessage, "a", Position{})
		_, err = f.Connect(a.ID().String(), a.ID().String())
		assert.NoError(t, err)
	})

	t.Run("parallel edges are allowed by default", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})
		b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
		_, err := f.Connect(a.ID().String(), b.ID().String())
		require.NoError(t, err)
		_, err = f.Connect(a.ID().String(), b.ID().String())
		assert.NoError(t, err)
		assert.Equal(t, 2, f.EdgeCount())
	})

	t.Run("parallel edges rejected when disabled", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.AllowDuplicateEdges = false
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})
		b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
		_, err = f.Connect(a.ID().String(), b.ID().String())
		require.NoError(t, err)
		_, err = f.Connect(a.ID().String(), b.ID().String())
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestRemoveEdge(t *testing.T) {
	f := newTestFlow(t)
	a, _ := f.AddNode(NodeTypeTrigger, "a", Position{})
	b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
	edge, err := f.Connect(a.ID().String(), b.ID().String())
	require.NoError(t, err)

	f.RemoveEdge("ghost")
	assert.Equal(t, 1, f.EdgeCount())

	f.RemoveEdge(edge.ID().String())
	assert.Equal(t, 0, f.EdgeCount())
	assert.Equal(t, 2, f.NodeCount())
}

func TestTagEdgeBranch(t *testing.T) {
	buildConditionFlow := func(t *testing.T) (*Flow, *Edge) {
		f := newTestFlow(t)
		cond, _ := f.AddNode(NodeTypeCondition, "Tem email?", Position{})
		yes, _ := f.AddNode(NodeTypeMessage, "Sim", Position{})
		edge, err := f.Connect(cond.ID().String(), yes.ID().String())
		require.NoError(t, err)
		return f, edge
	}

	t.Run("tags a condition exit", func(t *testing.T) {
		f, edge := buildConditionFlow(t)
		require.NoError(t, f.TagEdgeBranch(edge.ID().String(), BranchTrue))
		assert.Equal(t, "true", edge.Branch())

		require.NoError(t, f.TagEdgeBranch(edge.ID().String(), ""))
		assert.Equal(t, "", edge.Branch())
	})

	t.Run("rejects tags on non-condition sources", func(t *testing.T) {
		f := newTestFlow(t)
		a, _ := f.AddNode(NodeTypeMessage, "a", Position{})
		b, _ := f.AddNode(NodeTypeMessage, "b", Position{})
		edge, err := f.Connect(a.ID().String(), b.ID().String())
		require.NoError(t, err)
		err = f.TagEdgeBranch(edge.ID().String(), BranchTrue)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects arbitrary branch values", func(t *testing.T) {
		f, edge := buildConditionFlow(t)
		err := f.TagEdgeBranch(edge.ID().String(), "maybe")
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown edge id is a no-op", func(t *testing.T) {
		f := newTestFlow(t)
		assert.NoError(t, f.TagEdgeBranch("ghost", BranchTrue))
	})
}

func TestNodeButtons(t *testing.T) {
	t.Run("auto-labels and caps at three", func(t *testing.T) {
		f := newTestFlow(t)
		n, _ := f.AddNode(NodeTypeButtons, "Menu", Position{})

		for i := 1; i <= 3; i++ {
			button, err := f.AddNodeButton(n.ID().String())
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("Botão %d", i), button.Label)
		}

		_, err := f.AddNodeButton(n.ID().String())
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("cap follows the domain configuration", func(t *testing.T) {
		cfg := *domaincfg.DefaultDomainConfig()
		cfg.MaxButtonsPerNode = 1
		f, err := NewFlow("user-1", "x", &seqIDSource{}, cfg)
		require.NoError(t, err)
		n, _ := f.AddNode(NodeTypeButtons, "Menu", Position{})

		_, err = f.AddNodeButton(n.ID().String())
		require.NoError(t, err)
		_, err = f.AddNodeButton(n.ID().String())
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("removes by id and ignores unknown ids", func(t *testing.T) {
		f := newTestFlow(t)
		n, _ := f.AddNode(NodeTypeButtonMessage, "Menu", Position{})
		first, err := f.AddNodeButton(n.ID().String())
		require.NoError(t, err)
		_, err = f.AddNodeButton(n.ID().String())
		require.NoError(t, err)

		require.NoError(t, f.RemoveNodeButton(n.ID().String(), "ghost"))
		require.NoError(t, f.RemoveNodeButton(n.ID().String(), first.ID))

		buttons := n.Data()["buttons"].([]interface{})
		require.Len(t, buttons, 1)
	})

	t.Run("rejects button ops on other types", func(t *testing.T) {
		f := newTestFlow(t)
		n, _ := f.AddNode(NodeTypeMessage, "x", Position{})
		_, err := f.AddNodeButton(n.ID().String())
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("unknown node id is a no-op", func(t *testing.T) {
		f := newTestFlow(t)
		button, err := f.AddNodeButton("ghost")
		assert.NoError(t, err)
		assert.Nil(t, button)
	})
}

func TestNodeHeaders(t *testing.T) {
	f := newTestFlow(t)
	n, _ := f.AddNode(NodeTypeAPI, "Consulta CEP", Position{})

	header, err := f.AddNodeHeader(n.ID().String())
	require.NoError(t, err)
	require.NoError(t, f.UpdateNodeData(n.ID().String(), "headers", []Header{{ID: header.ID, Key: "Authorization", Value: "Bearer x"}}))

	require.NoError(t, f.RemoveNodeHeader(n.ID().String(), header.ID))
	headers := n.Data()["headers"].([]interface{})
	assert.Len(t, headers, 0)

	other, _ := f.AddNode(NodeTypeMessage, "x", Position{})
	_, err = f.AddNodeHeader(other.ID().String())
	assert.True(t, apperrors.IsValidation(err))
}

func TestValidate(t *testing.T) {
	f := newTestFlow(t)
	assert.Contains(t, f.Validate(), "Fluxo sem nó de gatilho")

	trigger, _ := f.AddNode(NodeTypeTrigger, "Início", Position{})
	require.NoError(t, f.UpdateNodeData(trigger.ID().String(), "keywords", "oi"))
	n, _ := f.AddNode(NodeTypeMessage, "Boas-vindas", Position{})

	warnings := f.Validate()
	assert.Contains(t, warnings, "Boas-vindas: Mensagem vazia")

	require.NoError(t, f.UpdateNodeData(n.ID().String(), "message", "Olá!"))
	assert.Empty(t, f.Validate())
}
