package flow

import (
	"fmt"

	apperrors "fluxo-backend/pkg/errors"
)

var (
	ctaTypes   = []string{"url", "phone", "whatsapp"}
	mediaTypes = []string{"image", "video", "audio", "document"}
)

// messageConfig sends a plain text message
type messageConfig struct {
	message        string
	simulateTyping bool
}

func newMessageConfig() NodeConfig {
	return &messageConfig{}
}

func (c *messageConfig) Type() NodeType { return NodeTypeMessage }

func (c *messageConfig) Set(field string, value interface{}) error {
	switch field {
	case "message":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.message = s
	case "simulateTyping":
		b, err := boolValue(field, value)
		if err != nil {
			return err
		}
		c.simulateTyping = b
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *messageConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "message", Label: "Mensagem", Kind: FieldTextarea, Value: c.message, Placeholder: "Digite a mensagem..."},
		{Name: "simulateTyping", Label: "Simular digitação", Kind: FieldToggle, Value: c.simulateTyping},
	}
}

func (c *messageConfig) Warnings() []string {
	if c.message == "" {
		return []string{"Mensagem vazia"}
	}
	return nil
}

func (c *messageConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *messageConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"message":        c.message,
		"simulateTyping": c.simulateTyping,
	}
}

// buttonsConfig backs both the buttons and button_message types, which
// share one schema: a message plus an ordered button list capped at three.
type buttonsConfig struct {
	nodeType NodeType
	message  string
	buttons  []Button
}

func newButtonsConfig(t NodeType) NodeConfig {
	return &buttonsConfig{nodeType: t}
}

func (c *buttonsConfig) Type() NodeType { return c.nodeType }

func (c *buttonsConfig) Set(field string, value interface{}) error {
	switch field {
	case "message":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.message = s
	case "buttons":
		list, err := buttonsValue(field, value)
		if err != nil {
			return err
		}
		c.buttons = list
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

// AddButton appends a button with an auto-generated label. The cap
// comes from the flow's domain configuration; returns a conflict error
// once it is reached — the inspector hides the add control at that
// point, so hitting this means a stale client.
func (c *buttonsConfig) AddButton(id string, maxButtons int) error {
	if len(c.buttons) >= maxButtons {
		return apperrors.NewConflictError(fmt.Sprintf("a node holds at most %d buttons", maxButtons))
	}
	c.buttons = append(c.buttons, Button{ID: id, Label: fmt.Sprintf("Botão %d", len(c.buttons)+1)})
	return nil
}

// RemoveButton filters the list by id. Unknown ids are a no-op.
func (c *buttonsConfig) RemoveButton(id string) {
	kept := c.buttons[:0]
	for _, b := range c.buttons {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	c.buttons = kept
}

func (c *buttonsConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "message", Label: "Mensagem", Kind: FieldTextarea, Value: c.message, Placeholder: "Digite a mensagem..."},
		{Name: "buttons", Label: "Botões", Kind: FieldButtons, Value: buttonsAsData(c.buttons)},
	}
}

func (c *buttonsConfig) Warnings() []string {
	var warnings []string
	if c.message == "" {
		warnings = append(warnings, "Mensagem vazia")
	}
	if len(c.buttons) == 0 {
		warnings = append(warnings, "Nenhum botão configurado")
	}
	return warnings
}

func (c *buttonsConfig) Clone() NodeConfig {
	cp := *c
	cp.buttons = make([]Button, len(c.buttons))
	copy(cp.buttons, c.buttons)
	return &cp
}

func (c *buttonsConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"message": c.message,
		"buttons": buttonsAsData(c.buttons),
	}
}

// ctaConfig renders a single call-to-action button whose target kind
// changes the url field's meaning.
type ctaConfig struct {
	ctaType string
	ctaText string
	ctaUrl  string
}

func newCTAConfig() NodeConfig {
	return &ctaConfig{ctaType: "url"}
}

func (c *ctaConfig) Type() NodeType { return NodeTypeCTA }

func (c *ctaConfig) Set(field string, value interface{}) error {
	switch field {
	case "ctaType":
		s, err := enumValue(field, value, ctaTypes)
		if err != nil {
			return err
		}
		c.ctaType = s
	case "ctaText":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.ctaText = s
	case "ctaUrl":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.ctaUrl = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *ctaConfig) Fields(_ FieldContext) []FieldSpec {
	urlLabel, urlPlaceholder := "Link", "https://exemplo.com"
	switch c.ctaType {
	case "phone":
		urlLabel, urlPlaceholder = "Telefone", "+55 11 99999-0000"
	case "whatsapp":
		urlLabel, urlPlaceholder = "Número do WhatsApp", "5511999990000"
	}
	return []FieldSpec{
		{Name: "ctaType", Label: "Tipo de ação", Kind: FieldSelect, Value: c.ctaType, Options: ctaTypes},
		{Name: "ctaText", Label: "Texto do botão", Kind: FieldText, Value: c.ctaText, Placeholder: "Saiba mais"},
		{Name: "ctaUrl", Label: urlLabel, Kind: FieldText, Value: c.ctaUrl, Placeholder: urlPlaceholder},
	}
}

func (c *ctaConfig) Warnings() []string {
	if c.ctaUrl == "" {
		return []string{"Ação sem destino configurado"}
	}
	return nil
}

func (c *ctaConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *ctaConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"ctaType": c.ctaType,
		"ctaText": c.ctaText,
		"ctaUrl":  c.ctaUrl,
	}
}

// mediaConfig attaches an image, video, audio or document
type mediaConfig struct {
	mediaType    string
	mediaUrl     string
	mediaCaption string
}

func newMediaConfig() NodeConfig {
	return &mediaConfig{mediaType: "image"}
}

func (c *mediaConfig) Type() NodeType { return NodeTypeMedia }

func (c *mediaConfig) Set(field string, value interface{}) error {
	switch field {
	case "mediaType":
		s, err := enumValue(field, value, mediaTypes)
		if err != nil {
			return err
		}
		c.mediaType = s
	case "mediaUrl":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.mediaUrl = s
	case "mediaCaption":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.mediaCaption = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *mediaConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "mediaType", Label: "Tipo de mídia", Kind: FieldSelect, Value: c.mediaType, Options: mediaTypes},
		{Name: "mediaUrl", Label: "URL da mídia", Kind: FieldText, Value: c.mediaUrl, Placeholder: "https://exemplo.com/arquivo"},
		{Name: "mediaCaption", Label: "Legenda", Kind: FieldText, Value: c.mediaCaption},
	}
}

func (c *mediaConfig) Warnings() []string {
	if c.mediaUrl == "" {
		return []string{"Mídia sem URL configurada"}
	}
	return nil
}

func (c *mediaConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *mediaConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"mediaType":    c.mediaType,
		"mediaUrl":     c.mediaUrl,
		"mediaCaption": c.mediaCaption,
	}
}
