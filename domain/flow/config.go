package flow

import (
	"fmt"

	apperrors "fluxo-backend/pkg/errors"
)

// FieldKind tells the inspector how to render a field
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldToggle   FieldKind = "toggle"
	FieldSelect   FieldKind = "select"
	FieldReadOnly FieldKind = "readonly"
	FieldButtons  FieldKind = "buttons"
	FieldHeaders  FieldKind = "headers"
)

// FieldSpec describes one editable field in the inspector form.
// The schema is a pure function of (type, current data): specs carry the
// current value so the client holds no field state of its own.
type FieldSpec struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Kind        FieldKind   `json:"kind"`
	Value       interface{} `json:"value"`
	Options     []string    `json:"options,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	Step        *float64    `json:"step,omitempty"`
	ReadOnly    bool        `json:"readOnly,omitempty"`
}

// FieldContext carries per-node context the schema needs, such as the
// derived webhook URL base.
type FieldContext struct {
	NodeID      string
	WebhookBase string
}

// NodeConfig is the typed configuration payload of a node: one variant
// per node type tag. Editing goes through Set, which validates values;
// Fields produces the inspector schema for the current state.
type NodeConfig interface {
	Type() NodeType

	// Set updates a single field, preserving all others. Unknown fields
	// and values of the wrong shape return a validation error.
	Set(field string, value interface{}) error

	// Fields returns the inspector schema for this configuration,
	// including only the fields meaningful in its current state.
	Fields(ctx FieldContext) []FieldSpec

	// Warnings reports non-blocking configuration problems, in the
	// user's language. An incomplete node still saves and runs nowhere.
	Warnings() []string

	// Clone returns a deep copy sharing no mutable state
	Clone() NodeConfig

	// Data returns the flat field map used by snapshots. Every field is
	// present, defaults included, so readers never see missing keys.
	Data() map[string]interface{}
}

// Button is one entry of a buttons node, ordered and capped at three
type Button struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Header is one entry of an api node's request header list
type Header struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// value coercion helpers shared by the Set implementations

func stringValue(field string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("field %q expects a string", field))
	}
	return s, nil
}

func boolValue(field string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, apperrors.NewValidationError(fmt.Sprintf("field %q expects a boolean", field))
	}
	return b, nil
}

func floatValue(field string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, apperrors.NewValidationError(fmt.Sprintf("field %q expects a number", field))
	}
}

func enumValue(field string, v interface{}, allowed []string) (string, error) {
	s, err := stringValue(field, v)
	if err != nil {
		return "", err
	}
	for _, option := range allowed {
		if s == option {
			return s, nil
		}
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("field %q does not accept %q", field, s))
}

func buttonsValue(field string, v interface{}) ([]Button, error) {
	switch list := v.(type) {
	case []Button:
		out := make([]Button, len(list))
		copy(out, list)
		return out, nil
	case []interface{}:
		out := make([]Button, 0, len(list))
		for _, item := range list {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, apperrors.NewValidationError(fmt.Sprintf("field %q expects a button list", field))
			}
			id, _ := entry["id"].(string)
			label, _ := entry["label"].(string)
			if id == "" {
				return nil, apperrors.NewValidationError(fmt.Sprintf("field %q has a button without id", field))
			}
			out = append(out, Button{ID: id, Label: label})
		}
		return out, nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("field %q expects a button list", field))
	}
}

func headersValue(field string, v interface{}) ([]Header, error) {
	switch list := v.(type) {
	case []Header:
		out := make([]Header, len(list))
		copy(out, list)
		return out, nil
	case []interface{}:
		out := make([]Header, 0, len(list))
		for _, item := range list {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, apperrors.NewValidationError(fmt.Sprintf("field %q expects a header list", field))
			}
			id, _ := entry["id"].(string)
			key, _ := entry["key"].(string)
			value, _ := entry["value"].(string)
			if id == "" {
				return nil, apperrors.NewValidationError(fmt.Sprintf("field %q has a header without id", field))
			}
			out = append(out, Header{ID: id, Key: key, Value: value})
		}
		return out, nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("field %q expects a header list", field))
	}
}

func unknownField(t NodeType, field string) error {
	return apperrors.NewValidationError(fmt.Sprintf("unknown field %q for %s node", field, t))
}

func floatPtr(v float64) *float64 {
	return &v
}

func buttonsAsData(buttons []Button) []interface{} {
	out := make([]interface{}, len(buttons))
	for i, b := range buttons {
		out[i] = map[string]interface{}{"id": b.ID, "label": b.Label}
	}
	return out
}

func headersAsData(headers []Header) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = map[string]interface{}{"id": h.ID, "key": h.Key, "value": h.Value}
	}
	return out
}
