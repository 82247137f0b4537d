package flow

import "fmt"

var (
	triggerTypes        = []string{"keyword", "manual", "event", "schedule", "webhook"}
	triggerEventTypes   = []string{"conversation_started", "tag_added", "form_submitted", "order_created"}
	scheduleFrequencies = []string{"daily", "weekly", "monthly"}
)

// triggerConfig is the entry point of a flow. The triggerType gates
// which sub-fields the inspector shows; all fields are always stored.
type triggerConfig struct {
	triggerType       string
	keywords          string
	eventType         string
	scheduleFrequency string
	scheduleTime      string
}

func newTriggerConfig() NodeConfig {
	return &triggerConfig{
		triggerType:       "keyword",
		eventType:         "conversation_started",
		scheduleFrequency: "daily",
		scheduleTime:      "09:00",
	}
}

func (c *triggerConfig) Type() NodeType { return NodeTypeTrigger }

func (c *triggerConfig) Set(field string, value interface{}) error {
	switch field {
	case "triggerType":
		s, err := enumValue(field, value, triggerTypes)
		if err != nil {
			return err
		}
		c.triggerType = s
	case "keywords":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.keywords = s
	case "eventType":
		s, err := enumValue(field, value, triggerEventTypes)
		if err != nil {
			return err
		}
		c.eventType = s
	case "scheduleFrequency":
		s, err := enumValue(field, value, scheduleFrequencies)
		if err != nil {
			return err
		}
		c.scheduleFrequency = s
	case "scheduleTime":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.scheduleTime = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *triggerConfig) Fields(ctx FieldContext) []FieldSpec {
	fields := []FieldSpec{
		{Name: "triggerType", Label: "Tipo de gatilho", Kind: FieldSelect, Value: c.triggerType, Options: triggerTypes},
	}
	switch c.triggerType {
	case "keyword":
		fields = append(fields, FieldSpec{
			Name: "keywords", Label: "Palavras-chave", Kind: FieldText,
			Value: c.keywords, Placeholder: "oi, olá, começar",
		})
	case "event":
		fields = append(fields, FieldSpec{
			Name: "eventType", Label: "Evento", Kind: FieldSelect,
			Value: c.eventType, Options: triggerEventTypes,
		})
	case "schedule":
		fields = append(fields,
			FieldSpec{Name: "scheduleFrequency", Label: "Frequência", Kind: FieldSelect, Value: c.scheduleFrequency, Options: scheduleFrequencies},
			FieldSpec{Name: "scheduleTime", Label: "Horário", Kind: FieldText, Value: c.scheduleTime, Placeholder: "09:00"},
		)
	case "webhook":
		fields = append(fields, FieldSpec{
			Name: "webhookUrl", Label: "URL do webhook", Kind: FieldReadOnly,
			Value: fmt.Sprintf("%s/webhooks/%s", ctx.WebhookBase, ctx.NodeID), ReadOnly: true,
		})
	}
	return fields
}

func (c *triggerConfig) Warnings() []string {
	if c.triggerType == "keyword" && c.keywords == "" {
		return []string{"Gatilho sem palavras-chave definidas"}
	}
	return nil
}

func (c *triggerConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *triggerConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"triggerType":       c.triggerType,
		"keywords":          c.keywords,
		"eventType":         c.eventType,
		"scheduleFrequency": c.scheduleFrequency,
		"scheduleTime":      c.scheduleTime,
	}
}

// webhookConfig is the outbound counterpart: the flow calls out to an
// external URL with a templated payload.
type webhookConfig struct {
	webhookUrl     string
	webhookPayload string
}

func newWebhookConfig() NodeConfig {
	return &webhookConfig{}
}

func (c *webhookConfig) Type() NodeType { return NodeTypeWebhook }

func (c *webhookConfig) Set(field string, value interface{}) error {
	switch field {
	case "webhookUrl":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.webhookUrl = s
	case "webhookPayload":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.webhookPayload = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *webhookConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "webhookUrl", Label: "URL de destino", Kind: FieldText, Value: c.webhookUrl, Placeholder: "https://exemplo.com/hook"},
		{Name: "webhookPayload", Label: "Payload", Kind: FieldTextarea, Value: c.webhookPayload, Placeholder: `{"contato": "{{nome}}"}`},
	}
}

func (c *webhookConfig) Warnings() []string {
	if c.webhookUrl == "" {
		return []string{"Webhook sem URL de destino"}
	}
	return nil
}

func (c *webhookConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *webhookConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"webhookUrl":     c.webhookUrl,
		"webhookPayload": c.webhookPayload,
	}
}
