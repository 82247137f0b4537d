package flow

import (
	"errors"

	"github.com/google/uuid"
)

// NodeID is a value object representing a unique node identifier.
// Ids are opaque: stable for the node's lifetime, unique within a flow.
type NodeID struct {
	value string
}

// NewNodeIDFromString creates a NodeID from an existing string
func NewNodeIDFromString(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	return NodeID{value: id}, nil
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("NodeID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// EdgeID is a value object representing a unique edge identifier
type EdgeID struct {
	value string
}

// NewEdgeIDFromString creates an EdgeID from an existing string
func NewEdgeIDFromString(id string) (EdgeID, error) {
	if id == "" {
		return EdgeID{}, errors.New("edge ID cannot be empty")
	}
	return EdgeID{value: id}, nil
}

// String returns the string representation of the EdgeID
func (id EdgeID) String() string {
	return id.value
}

// Equals checks if two EdgeIDs are equal
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// IsZero checks if the EdgeID is the zero value
func (id EdgeID) IsZero() bool {
	return id.value == ""
}

// FlowID identifies a flow aggregate
type FlowID string

// NewFlowID creates a new random FlowID
func NewFlowID() FlowID {
	return FlowID(uuid.New().String())
}

// String returns the string representation
func (id FlowID) String() string {
	return string(id)
}

// IDSource issues fresh ids for nodes, edges and nested list entries.
// The flow owns its source, so two open editors never collide and tests
// can inject a deterministic sequence.
type IDSource interface {
	NextID() string
}

// uuidSource is the production id source
type uuidSource struct{}

func (uuidSource) NextID() string {
	return uuid.New().String()
}

// NewUUIDSource returns an IDSource backed by random UUIDs
func NewUUIDSource() IDSource {
	return uuidSource{}
}
