package flow

var (
	conditionVariables = []string{"last_message", "name", "email", "phone", "tag", "custom_field"}
	conditionOperators = []string{"equals", "contains", "starts_with", "ends_with", "exists", "not_exists", "greater_than", "less_than"}
	delayUnits         = []string{"seconds", "minutes", "hours", "days"}
	waitUnits          = []string{"seconds", "minutes", "hours"}
	inputVariables     = []string{"name", "email", "phone", "city", "custom"}
	inputValidations   = []string{"none", "email", "phone", "number"}
)

// conditionConfig branches the flow. The node has two outgoing
// semantics; edges leaving it carry a branch tag set via the store.
type conditionConfig struct {
	conditionVariable string
	conditionOperator string
	conditionValue    string
}

func newConditionConfig() NodeConfig {
	return &conditionConfig{
		conditionVariable: "last_message",
		conditionOperator: "equals",
	}
}

func (c *conditionConfig) Type() NodeType { return NodeTypeCondition }

func (c *conditionConfig) Set(field string, value interface{}) error {
	switch field {
	case "conditionVariable":
		s, err := enumValue(field, value, conditionVariables)
		if err != nil {
			return err
		}
		c.conditionVariable = s
	case "conditionOperator":
		s, err := enumValue(field, value, conditionOperators)
		if err != nil {
			return err
		}
		c.conditionOperator = s
	case "conditionValue":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.conditionValue = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *conditionConfig) Fields(_ FieldContext) []FieldSpec {
	fields := []FieldSpec{
		{Name: "conditionVariable", Label: "Variável", Kind: FieldSelect, Value: c.conditionVariable, Options: conditionVariables},
		{Name: "conditionOperator", Label: "Operador", Kind: FieldSelect, Value: c.conditionOperator, Options: conditionOperators},
	}
	// existence operators take no comparison value
	if c.conditionOperator != "exists" && c.conditionOperator != "not_exists" {
		fields = append(fields, FieldSpec{Name: "conditionValue", Label: "Valor", Kind: FieldText, Value: c.conditionValue})
	}
	return fields
}

func (c *conditionConfig) Warnings() []string {
	needsValue := c.conditionOperator != "exists" && c.conditionOperator != "not_exists"
	if needsValue && c.conditionValue == "" {
		return []string{"Condição sem valor de comparação"}
	}
	return nil
}

func (c *conditionConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *conditionConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"conditionVariable": c.conditionVariable,
		"conditionOperator": c.conditionOperator,
		"conditionValue":    c.conditionValue,
	}
}

// delayConfig pauses the flow for a fixed interval
type delayConfig struct {
	delayTime         float64
	delayUnit         string
	businessHoursOnly bool
}

func newDelayConfig() NodeConfig {
	return &delayConfig{delayTime: 1, delayUnit: "minutes"}
}

func (c *delayConfig) Type() NodeType { return NodeTypeDelay }

func (c *delayConfig) Set(field string, value interface{}) error {
	switch field {
	case "delayTime":
		n, err := floatValue(field, value)
		if err != nil {
			return err
		}
		c.delayTime = n
	case "delayUnit":
		s, err := enumValue(field, value, delayUnits)
		if err != nil {
			return err
		}
		c.delayUnit = s
	case "businessHoursOnly":
		b, err := boolValue(field, value)
		if err != nil {
			return err
		}
		c.businessHoursOnly = b
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *delayConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "delayTime", Label: "Tempo de espera", Kind: FieldNumber, Value: c.delayTime, Min: floatPtr(0)},
		{Name: "delayUnit", Label: "Unidade", Kind: FieldSelect, Value: c.delayUnit, Options: delayUnits},
		{Name: "businessHoursOnly", Label: "Somente horário comercial", Kind: FieldToggle, Value: c.businessHoursOnly},
	}
}

func (c *delayConfig) Warnings() []string { return nil }

func (c *delayConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *delayConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"delayTime":         c.delayTime,
		"delayUnit":         c.delayUnit,
		"businessHoursOnly": c.businessHoursOnly,
	}
}

// inputConfig asks the contact a question and stores the answer in a
// variable. Choosing the custom variable unlocks a free-text name.
type inputConfig struct {
	question       string
	variable       string
	customVariable string
	validation     string
}

func newInputConfig() NodeConfig {
	return &inputConfig{variable: "name", validation: "none"}
}

func (c *inputConfig) Type() NodeType { return NodeTypeInput }

func (c *inputConfig) Set(field string, value interface{}) error {
	switch field {
	case "question":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.question = s
	case "variable":
		s, err := enumValue(field, value, inputVariables)
		if err != nil {
			return err
		}
		c.variable = s
	case "customVariable":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.customVariable = s
	case "validation":
		s, err := enumValue(field, value, inputValidations)
		if err != nil {
			return err
		}
		c.validation = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *inputConfig) Fields(_ FieldContext) []FieldSpec {
	fields := []FieldSpec{
		{Name: "question", Label: "Pergunta", Kind: FieldTextarea, Value: c.question, Placeholder: "Qual é o seu nome?"},
		{Name: "variable", Label: "Salvar em", Kind: FieldSelect, Value: c.variable, Options: inputVariables},
	}
	if c.variable == "custom" {
		fields = append(fields, FieldSpec{Name: "customVariable", Label: "Nome da variável", Kind: FieldText, Value: c.customVariable})
	}
	fields = append(fields, FieldSpec{Name: "validation", Label: "Validação", Kind: FieldSelect, Value: c.validation, Options: inputValidations})
	return fields
}

func (c *inputConfig) Warnings() []string {
	var warnings []string
	if c.question == "" {
		warnings = append(warnings, "Pergunta vazia")
	}
	if c.variable == "custom" && c.customVariable == "" {
		warnings = append(warnings, "Variável personalizada sem nome")
	}
	return warnings
}

func (c *inputConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *inputConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"question":       c.question,
		"variable":       c.variable,
		"customVariable": c.customVariable,
		"validation":     c.validation,
	}
}

// waitInputConfig pauses until the contact replies or a timeout fires
type waitInputConfig struct {
	waitTime       float64
	waitUnit       string
	timeoutMessage string
}

func newWaitInputConfig() NodeConfig {
	return &waitInputConfig{waitTime: 5, waitUnit: "minutes"}
}

func (c *waitInputConfig) Type() NodeType { return NodeTypeWaitInput }

func (c *waitInputConfig) Set(field string, value interface{}) error {
	switch field {
	case "waitTime":
		n, err := floatValue(field, value)
		if err != nil {
			return err
		}
		c.waitTime = n
	case "waitUnit":
		s, err := enumValue(field, value, waitUnits)
		if err != nil {
			return err
		}
		c.waitUnit = s
	case "timeoutMessage":
		s, err := stringValue(field, value)
		if err != nil {
			return err
		}
		c.timeoutMessage = s
	default:
		return unknownField(c.Type(), field)
	}
	return nil
}

func (c *waitInputConfig) Fields(_ FieldContext) []FieldSpec {
	return []FieldSpec{
		{Name: "waitTime", Label: "Tempo limite", Kind: FieldNumber, Value: c.waitTime, Min: floatPtr(0)},
		{Name: "waitUnit", Label: "Unidade", Kind: FieldSelect, Value: c.waitUnit, Options: waitUnits},
		{Name: "timeoutMessage", Label: "Mensagem de timeout", Kind: FieldTextarea, Value: c.timeoutMessage},
	}
}

func (c *waitInputConfig) Warnings() []string { return nil }

func (c *waitInputConfig) Clone() NodeConfig {
	cp := *c
	return &cp
}

func (c *waitInputConfig) Data() map[string]interface{} {
	return map[string]interface{}{
		"waitTime":       c.waitTime,
		"waitUnit":       c.waitUnit,
		"timeoutMessage": c.timeoutMessage,
	}
}
