package flow

import (
	"fmt"
	"time"

	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/events"
	apperrors "fluxo-backend/pkg/errors"
)

// Flow is the aggregate root of one automation graph. It owns every
// node and edge, the id source that names them, and the referential
// invariants: unique ids, no dangling edges, immutable type tags.
//
// A flow is owned by a single editor session at a time; callers
// serialize their own access.
type Flow struct {
	id        FlowID
	userID    string
	name      string
	nodes     map[string]*Node
	edges     map[string]*Edge
	nodeOrder []string
	edgeOrder []string
	ids       IDSource
	cfg       domaincfg.DomainConfig
	events    []events.DomainEvent
	createdAt time.Time
	updatedAt time.Time
	version   int
}

// NewFlow creates an empty flow for a user
func NewFlow(userID, name string, ids IDSource, cfg domaincfg.DomainConfig) (*Flow, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if name == "" {
		name = cfg.DefaultFlowName
	}
	now := time.Now().UTC()
	f := &Flow{
		id:        NewFlowID(),
		userID:    userID,
		name:      name,
		nodes:     make(map[string]*Node),
		edges:     make(map[string]*Edge),
		ids:       ids,
		cfg:       cfg,
		createdAt: now,
		updatedAt: now,
	}
	f.addEvent(events.NewFlowCreated(f.id.String(), userID, name, now))
	return f, nil
}

// ID returns the flow's identifier
func (f *Flow) ID() FlowID { return f.id }

// UserID returns the owning user's id
func (f *Flow) UserID() string { return f.userID }

// Name returns the flow's display name
func (f *Flow) Name() string { return f.name }

// CreatedAt returns when the flow was created
func (f *Flow) CreatedAt() time.Time { return f.createdAt }

// UpdatedAt returns when the flow was last modified
func (f *Flow) UpdatedAt() time.Time { return f.updatedAt }

// Version returns the optimistic concurrency version
func (f *Flow) Version() int { return f.version }

// Rename changes the flow's display name
func (f *Flow) Rename(name string) error {
	if name == "" {
		return apperrors.NewValidationError("flow name cannot be empty")
	}
	f.name = name
	f.touch()
	return nil
}

// Node looks up a node by id
func (f *Flow) Node(id string) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Edge looks up an edge by id
func (f *Flow) Edge(id string) (*Edge, bool) {
	e, ok := f.edges[id]
	return e, ok
}

// Nodes returns every node in insertion order
func (f *Flow) Nodes() []*Node {
	out := make([]*Node, 0, len(f.nodeOrder))
	for _, id := range f.nodeOrder {
		out = append(out, f.nodes[id])
	}
	return out
}

// Edges returns every edge in insertion order
func (f *Flow) Edges() []*Edge {
	out := make([]*Edge, 0, len(f.edgeOrder))
	for _, id := range f.edgeOrder {
		out = append(out, f.edges[id])
	}
	return out
}

// NodeCount returns the number of nodes
func (f *Flow) NodeCount() int { return len(f.nodes) }

// EdgeCount returns the number of edges
func (f *Flow) EdgeCount() int { return len(f.edges) }

// AddNode creates a node of the given type at a canvas position and
// returns it. The flow issues the id; callers never choose one.
func (f *Flow) AddNode(nodeType NodeType, label string, position Position) (*Node, error) {
	if len(f.nodes) >= f.cfg.MaxNodesPerFlow {
		return nil, apperrors.NewConflictError(fmt.Sprintf("flow holds at most %d nodes", f.cfg.MaxNodesPerFlow))
	}
	if len(label) > f.cfg.MaxLabelLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("label exceeds %d characters", f.cfg.MaxLabelLength))
	}
	now := time.Now().UTC()
	id, err := NewNodeIDFromString(f.ids.NextID())
	if err != nil {
		return nil, apperrors.Wrap(err, "id source returned an invalid id")
	}
	node := NewNode(id, nodeType, label, position, now)
	f.nodes[id.String()] = node
	f.nodeOrder = append(f.nodeOrder, id.String())
	f.touch()
	f.addEvent(events.NewNodeAdded(f.id.String(), id.String(), string(nodeType), now))
	return node, nil
}

// UpdateNodeData sets one field of a node's data, leaving every other
// field untouched. Unknown node ids are a no-op; bad fields or values
// for an existing node return a validation error.
func (f *Flow) UpdateNodeData(nodeID, field string, value interface{}) error {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil
	}
	switch field {
	case "label":
		if s, isString := value.(string); isString && len(s) > f.cfg.MaxLabelLength {
			return apperrors.NewValidationError(fmt.Sprintf("label exceeds %d characters", f.cfg.MaxLabelLength))
		}
	case "message":
		if s, isString := value.(string); isString && len(s) > f.cfg.MaxButtonMessageSize {
			return apperrors.NewValidationError(fmt.Sprintf("message exceeds %d characters", f.cfg.MaxButtonMessageSize))
		}
	case "buttons":
		if list, listErr := buttonsValue(field, value); listErr == nil && len(list) > f.cfg.MaxButtonsPerNode {
			return apperrors.NewValidationError(fmt.Sprintf("a node holds at most %d buttons", f.cfg.MaxButtonsPerNode))
		}
	}
	if err := node.SetField(field, value, time.Now().UTC()); err != nil {
		return err
	}
	f.touch()
	return nil
}

// MoveNode places a node at a new position. Unknown ids are a no-op.
func (f *Flow) MoveNode(nodeID string, position Position) {
	node, ok := f.nodes[nodeID]
	if !ok {
		return
	}
	node.MoveTo(position, time.Now().UTC())
	f.touch()
}

// DuplicateNode deep-copies a node under a fresh id, offset on the
// canvas so the copy is visible. No edges are copied. Unknown ids
// return nil without error.
func (f *Flow) DuplicateNode(nodeID string) (*Node, error) {
	original, ok := f.nodes[nodeID]
	if !ok {
		return nil, nil
	}
	if len(f.nodes) >= f.cfg.MaxNodesPerFlow {
		return nil, apperrors.NewConflictError(fmt.Sprintf("flow holds at most %d nodes", f.cfg.MaxNodesPerFlow))
	}
	now := time.Now().UTC()
	id, err := NewNodeIDFromString(f.ids.NextID())
	if err != nil {
		return nil, apperrors.Wrap(err, "id source returned an invalid id")
	}
	position := original.Position().Offset(f.cfg.DuplicateOffsetX, f.cfg.DuplicateOffsetY)
	duplicate := original.clone(id, position, now)
	f.nodes[id.String()] = duplicate
	f.nodeOrder = append(f.nodeOrder, id.String())
	f.touch()
	f.addEvent(events.NewNodeAdded(f.id.String(), id.String(), string(duplicate.Type()), now))
	return duplicate, nil
}

// DeleteNode removes a node and every edge touching it in one
// operation, so no dangling edge is ever observable. Unknown ids are
// a no-op.
func (f *Flow) DeleteNode(nodeID string) {
	node, ok := f.nodes[nodeID]
	if !ok {
		return
	}
	removed := f.removeEdgesForNode(node.ID())
	delete(f.nodes, nodeID)
	f.nodeOrder = removeString(f.nodeOrder, nodeID)
	f.touch()
	f.addEvent(events.NewNodeRemoved(f.id.String(), nodeID, removed, time.Now().UTC()))
}

// Connect creates a directed edge between two existing nodes. Unlike
// the other mutations, rejection is observable: the canvas gives
// feedback when a connect gesture fails.
func (f *Flow) Connect(sourceID, targetID string) (*Edge, error) {
	source, ok := f.nodes[sourceID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("source node %s not found", sourceID))
	}
	target, ok := f.nodes[targetID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("target node %s not found", targetID))
	}
	if sourceID == targetID && !f.cfg.AllowSelfConnections {
		return nil, apperrors.NewValidationError("a node cannot connect to itself")
	}
	if !f.cfg.AllowDuplicateEdges {
		for _, id := range f.edgeOrder {
			e := f.edges[id]
			if e.Source().Equals(source.ID()) && e.Target().Equals(target.ID()) {
				return nil, apperrors.NewConflictError("these nodes are already connected")
			}
		}
	}
	if len(f.edges) >= f.cfg.MaxEdgesPerFlow {
		return nil, apperrors.NewConflictError(fmt.Sprintf("flow holds at most %d edges", f.cfg.MaxEdgesPerFlow))
	}
	now := time.Now().UTC()
	id, err := NewEdgeIDFromString(f.ids.NextID())
	if err != nil {
		return nil, apperrors.Wrap(err, "id source returned an invalid id")
	}
	edge := NewEdge(id, source.ID(), target.ID(), now)
	f.edges[id.String()] = edge
	f.edgeOrder = append(f.edgeOrder, id.String())
	f.touch()
	f.addEvent(events.NewNodesConnected(f.id.String(), id.String(), sourceID, targetID, now))
	return edge, nil
}

// RemoveEdge disconnects an edge. Unknown ids are a no-op.
func (f *Flow) RemoveEdge(edgeID string) {
	if _, ok := f.edges[edgeID]; !ok {
		return
	}
	delete(f.edges, edgeID)
	f.edgeOrder = removeString(f.edgeOrder, edgeID)
	f.touch()
	f.addEvent(events.NewEdgeRemoved(f.id.String(), edgeID, time.Now().UTC()))
}

// TagEdgeBranch marks an edge as the true or false exit of a condition
// node. Empty branch clears the tag. Unknown edge ids are a no-op;
// tagging an edge whose source is not a condition node is an error.
func (f *Flow) TagEdgeBranch(edgeID, branch string) error {
	edge, ok := f.edges[edgeID]
	if !ok {
		return nil
	}
	if branch != "" {
		source, exists := f.nodes[edge.Source().String()]
		if !exists || source.Type() != NodeTypeCondition {
			return apperrors.NewValidationError("only edges leaving a condition node carry a branch")
		}
	}
	if err := edge.setBranch(branch); err != nil {
		return err
	}
	f.touch()
	return nil
}

// AddNodeButton appends a button with an auto-generated label to a
// buttons node. Unknown node ids are a no-op.
func (f *Flow) AddNodeButton(nodeID string) (*Button, error) {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil, nil
	}
	cfg, ok := node.Config().(*buttonsConfig)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s nodes have no buttons", node.Type()))
	}
	id := f.ids.NextID()
	if err := cfg.AddButton(id, f.cfg.MaxButtonsPerNode); err != nil {
		return nil, err
	}
	f.touch()
	button := cfg.buttons[len(cfg.buttons)-1]
	return &button, nil
}

// RemoveNodeButton removes a button by id. Unknown node or button ids
// are a no-op.
func (f *Flow) RemoveNodeButton(nodeID, buttonID string) error {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil
	}
	cfg, ok := node.Config().(*buttonsConfig)
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("%s nodes have no buttons", node.Type()))
	}
	cfg.RemoveButton(buttonID)
	f.touch()
	return nil
}

// AddNodeHeader appends an empty header row to an api node. Unknown
// node ids are a no-op.
func (f *Flow) AddNodeHeader(nodeID string) (*Header, error) {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil, nil
	}
	cfg, ok := node.Config().(*apiConfig)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s nodes have no request headers", node.Type()))
	}
	cfg.AddHeader(f.ids.NextID())
	f.touch()
	header := cfg.headers[len(cfg.headers)-1]
	return &header, nil
}

// RemoveNodeHeader removes a header row by id. Unknown node or header
// ids are a no-op.
func (f *Flow) RemoveNodeHeader(nodeID, headerID string) error {
	node, ok := f.nodes[nodeID]
	if !ok {
		return nil
	}
	cfg, ok := node.Config().(*apiConfig)
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("%s nodes have no request headers", node.Type()))
	}
	cfg.RemoveHeader(headerID)
	f.touch()
	return nil
}

// Validate returns the flow's non-blocking problems: per-node
// configuration warnings plus graph-level checks. An empty slice means
// the flow is publishable.
func (f *Flow) Validate() []string {
	var warnings []string
	hasTrigger := false
	for _, id := range f.nodeOrder {
		node := f.nodes[id]
		if node.Type() == NodeTypeTrigger {
			hasTrigger = true
		}
		for _, w := range node.Warnings() {
			warnings = append(warnings, fmt.Sprintf("%s: %s", node.Label(), w))
		}
	}
	if !hasTrigger {
		warnings = append(warnings, "Fluxo sem nó de gatilho")
	}
	return warnings
}

// removeEdgesForNode is the cascade behind DeleteNode
func (f *Flow) removeEdgesForNode(nodeID NodeID) int {
	removed := 0
	kept := f.edgeOrder[:0]
	for _, id := range f.edgeOrder {
		edge := f.edges[id]
		if edge.Touches(nodeID) {
			delete(f.edges, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	f.edgeOrder = kept
	return removed
}

func (f *Flow) touch() {
	f.updatedAt = time.Now().UTC()
	f.version++
}

func (f *Flow) addEvent(event events.DomainEvent) {
	f.events = append(f.events, event)
}

// GetUncommittedEvents returns domain events raised since the last
// commit mark
func (f *Flow) GetUncommittedEvents() []events.DomainEvent {
	return f.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (f *Flow) MarkEventsAsCommitted() {
	f.events = nil
}

func removeString(list []string, value string) []string {
	kept := list[:0]
	for _, item := range list {
		if item != value {
			kept = append(kept, item)
		}
	}
	return kept
}
