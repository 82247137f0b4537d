package flow

import (
	"fmt"
	"time"

	domaincfg "fluxo-backend/domain/config"
	apperrors "fluxo-backend/pkg/errors"
)

// Snapshot is the serializable form of a flow. It is the persistence
// and export contract: RestoreFlow(f.Snapshot()) yields a flow whose
// observable state equals f.
type Snapshot struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Name      string         `json:"name"`
	Nodes     []NodeSnapshot `json:"nodes"`
	Edges     []EdgeSnapshot `json:"edges"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NodeSnapshot is one node in wire form. Label and description travel
// inside Data with the type-specific fields.
type NodeSnapshot struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Position  Position               `json:"position"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// EdgeSnapshot is one edge in wire form
type EdgeSnapshot struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Branch    string    `json:"branch,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot captures the flow's full state in insertion order
func (f *Flow) Snapshot() Snapshot {
	nodes := make([]NodeSnapshot, 0, len(f.nodeOrder))
	for _, id := range f.nodeOrder {
		node := f.nodes[id]
		nodes = append(nodes, NodeSnapshot{
			ID:        node.ID().String(),
			Type:      string(node.Type()),
			Position:  node.Position(),
			Data:      node.Data(),
			CreatedAt: node.CreatedAt(),
			UpdatedAt: node.UpdatedAt(),
		})
	}
	edges := make([]EdgeSnapshot, 0, len(f.edgeOrder))
	for _, id := range f.edgeOrder {
		edge := f.edges[id]
		edges = append(edges, EdgeSnapshot{
			ID:        edge.ID().String(),
			Source:    edge.Source().String(),
			Target:    edge.Target().String(),
			Branch:    edge.Branch(),
			CreatedAt: edge.CreatedAt(),
		})
	}
	return Snapshot{
		ID:        f.id.String(),
		UserID:    f.userID,
		Name:      f.name,
		Nodes:     nodes,
		Edges:     edges,
		Version:   f.version,
		CreatedAt: f.createdAt,
		UpdatedAt: f.updatedAt,
	}
}

// RestoreFlow rebuilds a flow from a snapshot, enforcing the
// referential invariants on the way in: duplicate ids and edges whose
// endpoints are missing reject the whole snapshot, since accepting
// them would let a corrupt export poison a live session.
func RestoreFlow(snap Snapshot, ids IDSource, cfg domaincfg.DomainConfig) (*Flow, error) {
	if snap.ID == "" {
		return nil, apperrors.NewValidationError("snapshot has no flow id")
	}
	if snap.UserID == "" {
		return nil, apperrors.NewValidationError("snapshot has no user id")
	}
	f := &Flow{
		id:        FlowID(snap.ID),
		userID:    snap.UserID,
		name:      snap.Name,
		nodes:     make(map[string]*Node, len(snap.Nodes)),
		edges:     make(map[string]*Edge, len(snap.Edges)),
		ids:       ids,
		cfg:       cfg,
		version:   snap.Version,
		createdAt: snap.CreatedAt,
		updatedAt: snap.UpdatedAt,
	}
	if f.name == "" {
		f.name = cfg.DefaultFlowName
	}
	for _, ns := range snap.Nodes {
		id, err := NewNodeIDFromString(ns.ID)
		if err != nil {
			return nil, apperrors.NewValidationError("snapshot contains a node without id")
		}
		if _, exists := f.nodes[ns.ID]; exists {
			return nil, apperrors.NewValidationError(fmt.Sprintf("snapshot contains duplicate node id %s", ns.ID))
		}
		label, _ := ns.Data["label"].(string)
		description, _ := ns.Data["description"].(string)
		node := ReconstructNode(id, NodeType(ns.Type), label, description, ns.Position, ns.Data, ns.CreatedAt, ns.UpdatedAt)
		f.nodes[ns.ID] = node
		f.nodeOrder = append(f.nodeOrder, ns.ID)
	}
	for _, es := range snap.Edges {
		id, err := NewEdgeIDFromString(es.ID)
		if err != nil {
			return nil, apperrors.NewValidationError("snapshot contains an edge without id")
		}
		if _, exists := f.edges[es.ID]; exists {
			return nil, apperrors.NewValidationError(fmt.Sprintf("snapshot contains duplicate edge id %s", es.ID))
		}
		source, sourceOK := f.nodes[es.Source]
		target, targetOK := f.nodes[es.Target]
		if !sourceOK || !targetOK {
			return nil, apperrors.NewValidationError(fmt.Sprintf("edge %s references a missing node", es.ID))
		}
		edge := ReconstructEdge(id, source.ID(), target.ID(), "", es.CreatedAt)
		if err := edge.setBranch(es.Branch); err != nil {
			return nil, err
		}
		f.edges[es.ID] = edge
		f.edgeOrder = append(f.edgeOrder, es.ID)
	}
	return f, nil
}
