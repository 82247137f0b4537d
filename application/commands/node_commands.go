package commands

import (
	apperrors "fluxo-backend/pkg/errors"
)

// AddNodeCommand drops a new node of a given type onto the canvas.
// The store issues the id; the response carries it back.
type AddNodeCommand struct {
	FlowID   string
	UserID   string
	NodeType string
	Label    string
	X        float64
	Y        float64
}

// Validate implements bus.Command
func (c AddNodeCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeType == "" {
		return apperrors.NewValidationError("node type is required")
	}
	return nil
}

// UpdateNodeDataCommand sets one field of a node's configuration
type UpdateNodeDataCommand struct {
	FlowID string
	UserID string
	NodeID string
	Field  string
	Value  interface{}
}

// Validate implements bus.Command
func (c UpdateNodeDataCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	if c.Field == "" {
		return apperrors.NewValidationError("field name is required")
	}
	return nil
}

// MoveNodeCommand records a node's new canvas position after a drag
type MoveNodeCommand struct {
	FlowID string
	UserID string
	NodeID string
	X      float64
	Y      float64
}

// Validate implements bus.Command
func (c MoveNodeCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// DuplicateNodeCommand deep-copies a node under a fresh id
type DuplicateNodeCommand struct {
	FlowID string
	UserID string
	NodeID string
}

// Validate implements bus.Command
func (c DuplicateNodeCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// DeleteNodeCommand removes a node and cascades its edges
type DeleteNodeCommand struct {
	FlowID string
	UserID string
	NodeID string
}

// Validate implements bus.Command
func (c DeleteNodeCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// AddButtonCommand appends a button to a buttons node
type AddButtonCommand struct {
	FlowID string
	UserID string
	NodeID string
}

// Validate implements bus.Command
func (c AddButtonCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// RemoveButtonCommand removes a button by id
type RemoveButtonCommand struct {
	FlowID   string
	UserID   string
	NodeID   string
	ButtonID string
}

// Validate implements bus.Command
func (c RemoveButtonCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	if c.ButtonID == "" {
		return apperrors.NewValidationError("button id is required")
	}
	return nil
}

// AddHeaderCommand appends an empty request header row to an api node
type AddHeaderCommand struct {
	FlowID string
	UserID string
	NodeID string
}

// Validate implements bus.Command
func (c AddHeaderCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	return nil
}

// RemoveHeaderCommand removes a request header row by id
type RemoveHeaderCommand struct {
	FlowID   string
	UserID   string
	NodeID   string
	HeaderID string
}

// Validate implements bus.Command
func (c RemoveHeaderCommand) Validate() error {
	if c.FlowID == "" {
		return apperrors.NewValidationError("flow id is required")
	}
	if c.NodeID == "" {
		return apperrors.NewValidationError("node id is required")
	}
	if c.HeaderID == "" {
		return apperrors.NewValidationError("header id is required")
	}
	return nil
}
