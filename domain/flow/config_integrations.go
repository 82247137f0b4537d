package flow

import (
	"fmt"

	apperrors "fluxo-backend/pkg/errors"
)

var (
	apiMethods       = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	crmActions       = []string{"add_tag", "remove_tag", "update_field", "create_deal", "move_stage", "add_note"}
	calendarActions  = []string{"schedule", "check_availability", "cancel"}
	calendarServices = []string{"consulta", "reuniao", "demonstracao"}
	checkoutProducts = []string{"plano-mensal", "plano-anual", "curso-completo"}
	aiModels         = []string{"gpt-4o", "gpt-4o-mini", "claude-3-5-sonnet", "llama-3"}
)

// apiConfig calls an external HTTP API with an ordered header list
type apiConfig struct {
	apiMethod           string
	apiUrl              string
	headers             []Header
	apiBody             string
	apiResponseVariable string
}

func newAPIConfig() NodeConfig {
	return &apiConfig{apiMethod: "GET"}
}

func (c *apiConfig) Type() NodeType { return NodeTypeAPI }

func (c *apiConfig) Set(field string, value interface{}) error {
	switch field {
	case "apiMethod":
		s, err := enumValue(field, value, apiMethods)
		if err != nil {
			return err
		}
		c.apiMethod = s
	case "apiUrl":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.apiUrl = s
	case "headers":
		list, err := headersValue(field, value)
		if err != nil {
			return err
		}
		c.headers = list
	case "apiBody":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.apiBody = s
	case "apiResponseVariable":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.apiResponseVariable = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

// AddHeader appends an empty header row
func (c *apiConfig) AddHeader(id string) {
	c.headers = append(c.headers, Header{ID: id})
}

// RemoveHeader filters the list by id. Unknown ids are a no-op.
func (c *apiConfig) RemoveHeader(id string) {
	kept := c.headers[:0]
	for _, h := range c.headers {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	c.headers = kept
}

func (c *apiConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "apiMethod", Label: "Método", Kind: FieldSelect, Value: c.apiMethod, Options: apiMethods},
		{Name: "apiUrl", Label: "URL", Kind: FieldText, Value: c.apiUrl, Placeholder: "https://api.exemplo.com/v1"},
		{Name: "headers", Label: "Cabeçalhos", Kind: FieldHeaders, Value: headersAsData(c.headers)},
		{Name: "apiBody", Label: "Corpo da requisição", Kind: FieldTextarea, Value: c.apiBody},
		{Name: "apiResponseVariable", Label: "Salvar resposta em", Kind: FieldText, Value: c.apiResponseVariable},
	}
}

func (c *apiConfig) Warnings() []string {
	if c.apiUrl == "" {
		return []string{"Requisição sem URL configurada"}
	}
	return nil
}

func (c *apiConfig) Clone() NodeConfig {
	cp := *c
	cp.headers = make([]Header, len(c.headers))
	copy(cp.headers, c.headers)
	return &cp
}

func (c *apiConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"apiMethod":           c.apiMethod,
		"apiUrl":              c.apiUrl,
		"headers":             headersAsData(c.headers),
		"apiBody":             c.apiBody,
		"apiResponseVariable": c.apiResponseVariable,
	}
}

// crmConfig applies a CRM side effect. The crmAction gates which of
// the detail fields the inspector shows.
type crmConfig struct {
	crmAction     string
	crmTag        string
	crmField      string
	crmFieldValue string
	crmStage      string
	crmNote       string
}

func newCRMConfig() NodeConfig {
	return &crmConfig{crmAction: "add_tag"}
}

func (c *crmConfig) Type() NodeType { return NodeTypeCRM }

func (c *crmConfig) Set(field string, value interface{}) error {
	switch field {
	case "crmAction":
		s, err := enumValue(field, value, crmActions)
		if err != nil {
			return err
		}
		c.crmAction = s
	case "crmTag":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.crmTag = s
	case "crmField":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.crmField = s
	case "crmFieldValue":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.crmFieldValue = s
	case "crmStage":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.crmStage = s
	case "crmNote":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.crmNote = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *crmConfig) Fields(_ FieldContext) []FieldSpec {
	fields := []FieldSpec{
		{Name: "crmAction", Label: "Ação no CRM", Kind: FieldSelect, Value: c.crmAction, Options: crmActions},
	}
	switch c.crmAction {
	case "add_tag", "remove_tag":
		fields = append(fields, FieldSpec{Name: "crmTag", Label: "Tag", Kind: FieldText, Value: c.crmTag})
	case "update_field":
		fields = append(fields,
			FieldSpec{Name: "crmField", Label: "Campo", Kind: FieldText, Value: c.crmField},
			FieldSpec{Name: "crmFieldValue", Label: "Valor", Kind: FieldText, Value: c.crmFieldValue},
		)
	case "move_stage":
		fields = append(fields, FieldSpec{Name: "crmStage", Label: "Etapa", Kind: FieldText, Value: c.crmStage})
	case "add_note":
		fields = append(fields, FieldSpec{Name: "crmNote", Label: "Anotação", Kind: FieldTextarea, Value: c.crmNote})
	}
	return fields
}

func (c *crmConfig) Warnings() []string {
	switch c.crmAction {
	case "add_tag", "remove_tag":
		if c.crmTag == "" {
			return []string{"Ação de tag sem tag definida"}
		}
	case "update_field":
		if c.crmField == "" {
			return []string{"Atualização sem campo definido"}
		}
	case "move_stage":
		if c.crmStage == "" {
			return []string{"Movimentação sem etapa definida"}
		}
	}
	return nil
}

func (c *crmConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *crmConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"crmAction":     c.crmAction,
		"crmTag":        c.crmTag,
		"crmField":      c.crmField,
		"crmFieldValue": c.crmFieldValue,
		"crmStage":      c.crmStage,
		"crmNote":       c.crmNote,
	}
}

// calendarConfig books or checks appointments against a service agenda
type calendarConfig struct {
	calendarAction string
	serviceId      string
	daysAhead      float64
}

func newCalendarConfig() NodeConfig {
	return &calendarConfig{calendarAction: "schedule", serviceId: "consulta", daysAhead: 7}
}

func (c *calendarConfig) Type() NodeType { return NodeTypeCalendar }

func (c *calendarConfig) Set(field string, value interface{}) error {
	switch field {
	case "calendarAction":
		s, err := enumValue(field, value, calendarActions)
		if err != nil {
			return err
		}
		c.calendarAction = s
	case "serviceId":
		s, err := enumValue(field, value, calendarServices)
		if err != nil {
			return err
		}
		c.serviceId = s
	case "daysAhead":
		n, err := floatValue(field, value)
		if err != nil {
			return err
		}
		c.daysAhead = n
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *calendarConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "calendarAction", Label: "Ação", Kind: FieldSelect, Value: c.calendarAction, Options: calendarActions},
		{Name: "serviceId", Label: "Serviço", Kind: FieldSelect, Value: c.serviceId, Options: calendarServices},
		{Name: "daysAhead", Label: "Dias de antecedência", Kind: FieldNumber, Value: c.daysAhead, Min: floatPtr(0)},
	}
}

func (c *calendarConfig) Warnings() []string { return nil }

func (c *calendarConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *calendarConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"calendarAction": c.calendarAction,
		"serviceId":      c.serviceId,
		"daysAhead":      c.daysAhead,
	}
}

// checkoutConfig sends a payment link, optionally with an expiry
type checkoutConfig struct {
	productId            string
	checkoutMessage      string
	checkoutExpires      bool
	checkoutExpiresHours float64
}

func newCheckoutConfig() NodeConfig {
	return &checkoutConfig{productId: "plano-mensal", checkoutExpiresHours: 24}
}

func (c *checkoutConfig) Type() NodeType { return NodeTypeCheckout }

func (c *checkoutConfig) Set(field string, value interface{}) error {
	switch field {
	case "productId":
		s, err := enumValue(field, value, checkoutProducts)
		if err != nil {
			return err
		}
		c.productId = s
	case "checkoutMessage":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.checkoutMessage = s
	case "checkoutExpires":
		b, err := boolValue(field, value)
		if err != nil {
			return err
		}
		c.checkoutExpires = b
	case "checkoutExpiresHours":
		n, err := floatValue(field, value)
		if err != nil {
			return err
		}
		c.checkoutExpiresHours = n
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *checkoutConfig) Fields(_ FieldContext) []FieldSpec {
	fields := []FieldSpec{
		{Name: "productId", Label: "Produto", Kind: FieldSelect, Value: c.productId, Options: checkoutProducts},
		{Name: "checkoutMessage", Label: "Mensagem", Kind: FieldTextarea, Value: c.checkoutMessage},
		{Name: "checkoutExpires", Label: "Link expira", Kind: FieldToggle, Value: c.checkoutExpires},
	}
	if c.checkoutExpires {
		fields = append(fields, FieldSpec{Name: "checkoutExpiresHours", Label: "Expira em (horas)", Kind: FieldNumber, Value: c.checkoutExpiresHours, Min: floatPtr(1)})
	}
	return fields
}

func (c *checkoutConfig) Warnings() []string { return nil }

func (c *checkoutConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *checkoutConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"productId":            c.productId,
		"checkoutMessage":      c.checkoutMessage,
		"checkoutExpires":      c.checkoutExpires,
		"checkoutExpiresHours": c.checkoutExpiresHours,
	}
}

// aiAgentConfig hands the conversation to an LLM agent
type aiAgentConfig struct {
	aiModel     string
	prompt      string
	temperature float64
	useContext  bool
	streaming   bool
}

func newAIAgentConfig() NodeConfig {
	return &aiAgentConfig{
		aiModel:     "gpt-4o-mini",
		prompt:      "Você é um assistente útil.",
		temperature: 0.7,
		useContext:  true,
	}
}

func (c *aiAgentConfig) Type() NodeType { return NodeTypeAIAgent }

func (c *aiAgentConfig) Set(field string, value interface{}) error {
	switch field {
	case "aiModel":
		s, err := enumValue(field, value, aiModels)
		if err != nil {
			return err
		}
		c.aiModel = s
	case "prompt":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.prompt = s
	case "temperature":
		n, err := floatValue(field, value)
		if err != nil {
			return err
		}
		if n < 0 || n > 2 {
			return apperrors.NewValidationError(fmt.Sprintf("temperature %v is outside [0, 2]", n))
		}
		c.temperature = n
	case "useContext":
		b, err := boolValue(field, value)
		if err != nil {
			return err
		}
		c.useContext = b
	case "streaming":
		b, err := boolValue(field, value)
		if err != nil {
			return err
		}
		c.streaming = b
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *aiAgentConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "aiModel", Label: "Modelo", Kind: FieldSelect, Value: c.aiModel, Options: aiModels},
		{Name: "prompt", Label: "Prompt do sistema", Kind: FieldTextarea, Value: c.prompt},
		{Name: "temperature", Label: "Temperatura", Kind: FieldNumber, Value: c.temperature, Min: floatPtr(0), Max: floatPtr(2), Step: floatPtr(0.1)},
		{Name: "useContext", Label: "Usar contexto da conversa", Kind: FieldToggle, Value: c.useContext},
		{Name: "streaming", Label: "Resposta em streaming", Kind: FieldToggle, Value: c.streaming},
	}
}

func (c *aiAgentConfig) Warnings() []string {
	if c.prompt == "" {
		return []string{"Agente sem prompt definido"}
	}
	return nil
}

func (c *aiAgentConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *aiAgentConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"aiModel":     c.aiModel,
		"prompt":      c.prompt,
		"temperature": c.temperature,
		"useContext":  c.useContext,
		"streaming":   c.streaming,
	}
}

// defaultConfig is the fallback for unrecognized type tags. It carries
// no type-specific fields; only the universal label and description
// remain editable.
type defaultConfig struct{}

func newDefaultConfig() NodeConfig {
	return &defaultConfig{}
}

func (c *defaultConfig) Type() NodeType { return NodeTypeDefault }

func (c *defaultConfig) Set(field string, _ interface{}) error {
	return unknownField(c.Type(), field)
}

func (c *defaultConfig) Fields(_ FieldContext) []FieldSpec { return nil }

func (c *defaultConfig) Warnings() []string { return nil }

func (c *defaultConfig) Clone() NodeConfig { return &defaultConfig{} }

func (c *defaultConfig) Data() map[string]interface{} { return map[string]interface{}{} }
