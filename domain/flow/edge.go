package flow

import (
	"time"

	apperrors "fluxo-backend/pkg/errors"
)

// Branch values an edge leaving a condition node may carry
const (
	BranchTrue  = "true"
	BranchFalse = "false"
)

// Edge is a directed connection between two nodes of the same flow.
// Both endpoints always exist: the store deletes incident edges in the
// same operation that deletes a node.
type Edge struct {
	id        EdgeID
	source    NodeID
	target    NodeID
	branch    string
	createdAt time.Time
}

// NewEdge creates an edge between two node ids
func NewEdge(id EdgeID, source, target NodeID, now time.Time) *Edge {
	return &Edge{id: id, source: source, target: target, createdAt: now}
}

// ReconstructEdge rebuilds an edge from persisted state
func ReconstructEdge(id EdgeID, source, target NodeID, branch string, createdAt time.Time) *Edge {
	return &Edge{id: id, source: source, target: target, branch: branch, createdAt: createdAt}
}

// ID returns the edge's identifier
func (e *Edge) ID() EdgeID { return e.id }

// Source returns the source node id
func (e *Edge) Source() NodeID { return e.source }

// Target returns the target node id
func (e *Edge) Target() NodeID { return e.target }

// Branch returns the condition branch tag, empty for untagged edges
func (e *Edge) Branch() string { return e.branch }

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time { return e.createdAt }

// Touches reports whether the edge has the given node as an endpoint
func (e *Edge) Touches(nodeID NodeID) bool {
	return e.source.Equals(nodeID) || e.target.Equals(nodeID)
}

// setBranch tags the edge with a condition branch. Empty clears the tag.
func (e *Edge) setBranch(branch string) error {
	switch branch {
	case "", BranchTrue, BranchFalse:
		e.branch = branch
		return nil
	default:
		return apperrors.NewValidationError("branch must be \"true\", \"false\" or empty")
	}
}
