package queries

import (
	"time"

	"fluxo-backend/domain/flow"
)

// NodeView is the wire shape of one node as the canvas consumes it
type NodeView struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Label    string                 `json:"label"`
	Position flow.Position          `json:"position"`
	Data     map[string]interface{} `json:"data"`
	Visual   flow.Visual            `json:"visual"`
	Warnings []string               `json:"warnings,omitempty"`
}

// EdgeView is the wire shape of one edge
type EdgeView struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Branch string `json:"branch,omitempty"`
}

// FlowView is the full editor payload for one flow
type FlowView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Nodes     []NodeView `json:"nodes"`
	Edges     []EdgeView `json:"edges"`
	Version   int        `json:"version"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PaletteEntry is one draggable node type
type PaletteEntry struct {
	Type   string      `json:"type"`
	Visual flow.Visual `json:"visual"`
}

// InspectorSchema is the form the inspector renders for one node
type InspectorSchema struct {
	NodeID   string           `json:"nodeId"`
	Type     string           `json:"type"`
	Fields   []flow.FieldSpec `json:"fields"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ValidationReport lists a flow's non-blocking problems
type ValidationReport struct {
	FlowID   string   `json:"flowId"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// BuildNodeView projects a domain node into its wire shape
func BuildNodeView(n *flow.Node) NodeView {
	return NodeView{
		ID:       n.ID().String(),
		Type:     string(n.Type()),
		Label:    n.Label(),
		Position: n.Position(),
		Data:     n.Data(),
		Visual:   n.Visual(),
		Warnings: n.Warnings(),
	}
}

// BuildEdgeView projects a domain edge into its wire shape
func BuildEdgeView(e *flow.Edge) EdgeView {
	return EdgeView{
		ID:     e.ID().String(),
		Source: e.Source().String(),
		Target: e.Target().String(),
		Branch: e.Branch(),
	}
}

// BuildFlowView projects a full flow into the editor payload
func BuildFlowView(f *flow.Flow) FlowView {
	nodes := make([]NodeView, 0, f.NodeCount())
	for _, n := range f.Nodes() {
		nodes = append(nodes, BuildNodeView(n))
	}
	edges := make([]EdgeView, 0, f.EdgeCount())
	for _, e := range f.Edges() {
		edges = append(edges, BuildEdgeView(e))
	}
	return FlowView{
		ID:        f.ID().String(),
		Name:      f.Name(),
		Nodes:     nodes,
		Edges:     edges,
		Version:   f.Version(),
		UpdatedAt: f.UpdatedAt(),
	}
}
