package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryCoversEveryType(t *testing.T) {
	types := NodeTypes()
	assert.Len(t, types, 17)
	for _, nodeType := range types {
		assert.True(t, KnownType(nodeType))
		visual := ResolveVisual(nodeType)
		assert.NotEmpty(t, visual.Icon, "%s has no icon", nodeType)
		assert.NotEmpty(t, visual.Color, "%s has no color", nodeType)
		assert.Equal(t, nodeType, NewConfig(nodeType).Type())
	}
}

func TestUnknownTypeFallsBack(t *testing.T) {
	assert.False(t, KnownType(NodeType("quantum")))
	assert.Equal(t, ResolveVisual(NodeTypeDefault), ResolveVisual(NodeType("quantum")))
	assert.Equal(t, NodeTypeDefault, NewConfig(NodeType("quantum")).Type())
	assert.Equal(t, ResolveVisual(NodeTypeDefault), ResolveVisual(NodeType("")))
}

func TestButtonVariantsShareASchema(t *testing.T) {
	buttons := NewConfig(NodeTypeButtons)
	buttonMessage := NewConfig(NodeTypeButtonMessage)

	assert.Equal(t, NodeTypeButtons, buttons.Type())
	assert.Equal(t, NodeTypeButtonMessage, buttonMessage.Type())
	assert.Equal(t, buttons.Data(), buttonMessage.Data())
}
