package flow

import (
	"time"

	apperrors "fluxo-backend/pkg/errors"
)

// Node is a single card on the canvas: an immutable type tag, the two
// universal fields (label, description), a position and a typed
// configuration. All mutation goes through the owning Flow.
type Node struct {
	id          NodeID
	nodeType    NodeType
	label       string
	description string
	position    Position
	config      NodeConfig
	createdAt   time.Time
	updatedAt   time.Time
}

// NewNode creates a node with a default-filled configuration for its
// type. Unknown type tags fall back to the default configuration, so
// creation never fails on the tag alone.
func NewNode(id NodeID, nodeType NodeType, label string, position Position, now time.Time) *Node {
	return &Node{
		id:          id,
		nodeType:    nodeType,
		label:       label,
		description: "Nova configuração",
		position:    position,
		config:      NewConfig(nodeType),
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructNode rebuilds a node from persisted state. Data keys the
// current schema no longer knows are dropped silently, which keeps old
// snapshots loadable after a field is retired.
func ReconstructNode(id NodeID, nodeType NodeType, label, description string, position Position, data map[string]interface{}, createdAt, updatedAt time.Time) *Node {
	cfg := NewConfig(nodeType)
	for field, value := range data {
		_ = cfg.Set(field, value)
	}
	return &Node{
		id:          id,
		nodeType:    nodeType,
		label:       label,
		description: description,
		position:    position,
		config:      cfg,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the node's identifier
func (n *Node) ID() NodeID { return n.id }

// Type returns the node's type tag. It never changes after creation.
func (n *Node) Type() NodeType { return n.nodeType }

// Label returns the display label
func (n *Node) Label() string { return n.label }

// Description returns the free-text description
func (n *Node) Description() string { return n.description }

// Position returns the canvas position
func (n *Node) Position() Position { return n.position }

// Config returns the typed configuration
func (n *Node) Config() NodeConfig { return n.config }

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns when the node was last modified
func (n *Node) UpdatedAt() time.Time { return n.updatedAt }

// SetField updates one field, routing the universal label and
// description directly and everything else through the configuration.
// Other fields are untouched.
func (n *Node) SetField(field string, value interface{}, now time.Time) error {
	switch field {
	case "label":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		n.label = s
	case "description":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		n.description = s
	case "type", "id":
		return apperrors.NewValidationError("field \"" + field + "\" is immutable")
	default:
		if err := n.config.Set(field, value); err != nil {
			return err
		}
	}
	n.updatedAt = now
	return nil
}

// MoveTo places the node at a new canvas position
func (n *Node) MoveTo(position Position, now time.Time) {
	n.position = position
	n.updatedAt = now
}

// Visual returns the icon and color for rendering
func (n *Node) Visual() Visual {
	return ResolveVisual(n.nodeType)
}

// Fields returns the inspector schema for this node: the universal
// fields first, then the type-specific ones.
func (n *Node) Fields(webhookBase string) []FieldSpec {
	ctx := FieldContext{NodeID: n.id.String(), WebhookBase: webhookBase}
	fields := []FieldSpec{
		{Name: "label", Label: "Nome", Kind: FieldText, Value: n.label},
		{Name: "description", Label: "Descrição", Kind: FieldText, Value: n.description},
	}
	return append(fields, n.config.Fields(ctx)...)
}

// Warnings returns the node's non-blocking configuration problems
func (n *Node) Warnings() []string {
	return n.config.Warnings()
}

// Data returns the flat field map for snapshots, universal fields
// included. Every schema field is present with its current value.
func (n *Node) Data() map[string]interface{} {
	data := n.config.Data()
	data["label"] = n.label
	data["description"] = n.description
	return data
}

// clone deep-copies the node under a fresh id, sharing no state
func (n *Node) clone(id NodeID, position Position, now time.Time) *Node {
	return &Node{
		id:          id,
		nodeType:    n.nodeType,
		label:       n.label,
		description: n.description,
		position:    position,
		config:      n.config.Clone(),
		createdAt:   now,
		updatedAt:   now,
	}
}
