package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fluxo-backend/pkg/errors"
)

func fieldByName(t *testing.T, fields []FieldSpec, name string) FieldSpec {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not in schema", name)
	return FieldSpec{}
}

func hasField(fields []FieldSpec, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func TestConfigDefaults(t *testing.T) {
	tests := []struct {
		nodeType NodeType
		field    string
		want     interface{}
	}{
		{NodeTypeTrigger, "triggerType", "keyword"},
		{NodeTypeAPI, "apiMethod", "GET"},
		{NodeTypeAIAgent, "prompt", "Você é um assistente útil."},
		{NodeTypeAIAgent, "useContext", true},
		{NodeTypeAIAgent, "temperature", 0.7},
		{NodeTypeCondition, "conditionOperator", "equals"},
		{NodeTypeDelay, "delayUnit", "minutes"},
		{NodeTypeInput, "variable", "name"},
		{NodeTypeInput, "validation", "none"},
		{NodeTypeMedia, "mediaType", "image"},
		{NodeTypeCTA, "ctaType", "url"},
	}
	for _, tt := range tests {
		data := NewConfig(tt.nodeType).Data()
		assert.Equal(t, tt.want, data[tt.field], "%s.%s", tt.nodeType, tt.field)
	}
}

func TestTriggerConfigGating(t *testing.T) {
	cfg := newTriggerConfig()
	ctx := FieldContext{NodeID: "node-7", WebhookBase: "https://app.fluxo.chat/api"}

	// keyword default shows the keywords field only
	fields := cfg.Fields(ctx)
	assert.True(t, hasField(fields, "keywords"))
	assert.False(t, hasField(fields, "eventType"))
	assert.False(t, hasField(fields, "webhookUrl"))

	require.NoError(t, cfg.Set("triggerType", "schedule"))
	fields = cfg.Fields(ctx)
	assert.True(t, hasField(fields, "scheduleFrequency"))
	assert.True(t, hasField(fields, "scheduleTime"))
	assert.False(t, hasField(fields, "keywords"))

	require.NoError(t, cfg.Set("triggerType", "webhook"))
	url := fieldByName(t, cfg.Fields(ctx), "webhookUrl")
	assert.True(t, url.ReadOnly)
	assert.Equal(t, "https://app.fluxo.chat/api/webhooks/node-7", url.Value)
}

func TestEnumFieldsRejectUnknownValues(t *testing.T) {
	tests := []struct {
		nodeType NodeType
		field    string
		value    interface{}
	}{
		{NodeTypeTrigger, "triggerType", "carrier_pigeon"},
		{NodeTypeAPI, "apiMethod", "FETCH"},
		{NodeTypeCondition, "conditionOperator", "vibes"},
		{NodeTypeCRM, "crmAction", "delete_everything"},
		{NodeTypeMessage, "simulateTyping", "yes"},
		{NodeTypeDelay, "delayTime", "soon"},
	}
	for _, tt := range tests {
		err := NewConfig(tt.nodeType).Set(tt.field, tt.value)
		assert.True(t, apperrors.IsValidation(err), "%s.%s=%v", tt.nodeType, tt.field, tt.value)
	}
}

func TestConditionValueGating(t *testing.T) {
	cfg := newConditionConfig()
	assert.True(t, hasField(cfg.Fields(FieldContext{}), "conditionValue"))

	require.NoError(t, cfg.Set("conditionOperator", "exists"))
	assert.False(t, hasField(cfg.Fields(FieldContext{}), "conditionValue"))
}

func TestInputCustomVariableGating(t *testing.T) {
	cfg := newInputConfig()
	assert.False(t, hasField(cfg.Fields(FieldContext{}), "customVariable"))

	require.NoError(t, cfg.Set("variable", "custom"))
	assert.True(t, hasField(cfg.Fields(FieldContext{}), "customVariable"))
	assert.Contains(t, cfg.Warnings(), "Variável personalizada sem nome")
}

func TestCRMActionGating(t *testing.T) {
	cfg := newCRMConfig()
	assert.True(t, hasField(cfg.Fields(FieldContext{}), "crmTag"))

	require.NoError(t, cfg.Set("crmAction", "update_field"))
	fields := cfg.Fields(FieldContext{})
	assert.True(t, hasField(fields, "crmField"))
	assert.True(t, hasField(fields, "crmFieldValue"))
	assert.False(t, hasField(fields, "crmTag"))

	require.NoError(t, cfg.Set("crmAction", "create_deal"))
	assert.Len(t, cfg.Fields(FieldContext{}), 1)
}

func TestCheckoutExpiryGating(t *testing.T) {
	cfg := newCheckoutConfig()
	assert.False(t, hasField(cfg.Fields(FieldContext{}), "checkoutExpiresHours"))

	require.NoError(t, cfg.Set("checkoutExpires", true))
	hours := fieldByName(t, cfg.Fields(FieldContext{}), "checkoutExpiresHours")
	assert.Equal(t, 24.0, hours.Value)
}

func TestAIAgentTemperatureBounds(t *testing.T) {
	cfg := newAIAgentConfig()
	assert.NoError(t, cfg.Set("temperature", 0))
	assert.NoError(t, cfg.Set("temperature", 2))
	assert.True(t, apperrors.IsValidation(cfg.Set("temperature", 2.1)))
	assert.True(t, apperrors.IsValidation(cfg.Set("temperature", -0.1)))
}

func TestButtonsWarnings(t *testing.T) {
	cfg := newButtonsConfig(NodeTypeButtons).(*buttonsConfig)
	assert.ElementsMatch(t, []string{"Mensagem vazia", "Nenhum botão configurado"}, cfg.Warnings())

	require.NoError(t, cfg.Set("message", "Escolha uma opção"))
	require.NoError(t, cfg.AddButton("b1", 3))
	assert.Empty(t, cfg.Warnings())
}

func TestCloneSharesNoState(t *testing.T) {
	for _, nodeType := range NodeTypes() {
		cfg := NewConfig(nodeType)
		clone := cfg.Clone()
		assert.Equal(t, cfg.Data(), clone.Data(), "%s", nodeType)
	}

	api := newAPIConfig().(*apiConfig)
	api.AddHeader("h1")
	clone := api.Clone().(*apiConfig)
	clone.headers[0].Key = "X-Changed"
	assert.Equal(t, "", api.headers[0].Key)
}
