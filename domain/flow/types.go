package flow

// NodeType tags a node with its behavior in the automation flow.
// The set is closed: the registry below is the single source of truth
// for visuals and configuration constructors.
type NodeType string

const (
	NodeTypeTrigger       NodeType = "trigger"
	NodeTypeMessage       NodeType = "message"
	NodeTypeCondition     NodeType = "condition"
	NodeTypeDelay         NodeType = "delay"
	NodeTypeButtons       NodeType = "buttons"
	NodeTypeButtonMessage NodeType = "button_message"
	NodeTypeCTA           NodeType = "cta"
	NodeTypeInput         NodeType = "input"
	NodeTypeWaitInput     NodeType = "wait_input"
	NodeTypeAPI           NodeType = "api"
	NodeTypeWebhook       NodeType = "webhook"
	NodeTypeCRM           NodeType = "crm"
	NodeTypeMedia         NodeType = "media"
	NodeTypeCalendar      NodeType = "calendar"
	NodeTypeCheckout      NodeType = "checkout"
	NodeTypeAIAgent       NodeType = "ai_agent"
	NodeTypeDefault       NodeType = "default"
)

// Visual describes how the canvas renders a node card
type Visual struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type typeEntry struct {
	visual    Visual
	newConfig func() NodeConfig
}

var registry = map[NodeType]typeEntry{
	NodeTypeTrigger: {
		visual:    Visual{Icon: "zap", Color: "bg-amber-500"},
		newConfig: newTriggerConfig,
	},
	NodeTypeMessage: {
		visual:    Visual{Icon: "message-circle", Color: "bg-emerald-500"},
		newConfig: newMessageConfig,
	},
	NodeTypeCondition: {
		visual:    Visual{Icon: "git-branch", Color: "bg-violet-500"},
		newConfig: newConditionConfig,
	},
	NodeTypeDelay: {
		visual:    Visual{Icon: "clock", Color: "bg-slate-500"},
		newConfig: newDelayConfig,
	},
	NodeTypeButtons: {
		visual:    Visual{Icon: "list", Color: "bg-sky-500"},
		newConfig: func() NodeConfig { return newButtonsConfig(NodeTypeButtons) },
	},
	NodeTypeButtonMessage: {
		visual:    Visual{Icon: "list-checks", Color: "bg-sky-600"},
		newConfig: func() NodeConfig { return newButtonsConfig(NodeTypeButtonMessage) },
	},
	NodeTypeCTA: {
		visual:    Visual{Icon: "external-link", Color: "bg-blue-500"},
		newConfig: newCTAConfig,
	},
	NodeTypeInput: {
		visual:    Visual{Icon: "text-cursor-input", Color: "bg-teal-500"},
		newConfig: newInputConfig,
	},
	NodeTypeWaitInput: {
		visual:    Visual{Icon: "hourglass", Color: "bg-teal-600"},
		newConfig: newWaitInputConfig,
	},
	NodeTypeAPI: {
		visual:    Visual{Icon: "globe", Color: "bg-indigo-500"},
		newConfig: newAPIConfig,
	},
	NodeTypeWebhook: {
		visual:    Visual{Icon: "webhook", Color: "bg-indigo-600"},
		newConfig: newWebhookConfig,
	},
	NodeTypeCRM: {
		visual:    Visual{Icon: "users", Color: "bg-rose-500"},
		newConfig: newCRMConfig,
	},
	NodeTypeMedia: {
		visual:    Visual{Icon: "image", Color: "bg-fuchsia-500"},
		newConfig: newMediaConfig,
	},
	NodeTypeCalendar: {
		visual:    Visual{Icon: "calendar", Color: "bg-orange-500"},
		newConfig: newCalendarConfig,
	},
	NodeTypeCheckout: {
		visual:    Visual{Icon: "shopping-cart", Color: "bg-green-600"},
		newConfig: newCheckoutConfig,
	},
	NodeTypeAIAgent: {
		visual:    Visual{Icon: "bot", Color: "bg-purple-600"},
		newConfig: newAIAgentConfig,
	},
	NodeTypeDefault: {
		visual:    Visual{Icon: "box", Color: "bg-gray-400"},
		newConfig: newDefaultConfig,
	},
}

// paletteOrder fixes the order node types are listed to clients
var paletteOrder = []NodeType{
	NodeTypeTrigger,
	NodeTypeMessage,
	NodeTypeButtons,
	NodeTypeButtonMessage,
	NodeTypeCTA,
	NodeTypeInput,
	NodeTypeWaitInput,
	NodeTypeCondition,
	NodeTypeDelay,
	NodeTypeMedia,
	NodeTypeCalendar,
	NodeTypeCheckout,
	NodeTypeAPI,
	NodeTypeWebhook,
	NodeTypeCRM,
	NodeTypeAIAgent,
	NodeTypeDefault,
}

// ResolveVisual returns the icon and color class for a node type.
// Unknown or empty types fall back to the default entry, never an error.
func ResolveVisual(t NodeType) Visual {
	if entry, ok := registry[t]; ok {
		return entry.visual
	}
	return registry[NodeTypeDefault].visual
}

// NewConfig builds a default-filled configuration for a node type.
// Unknown types get the default (empty) configuration.
func NewConfig(t NodeType) NodeConfig {
	if entry, ok := registry[t]; ok {
		return entry.newConfig()
	}
	return registry[NodeTypeDefault].newConfig()
}

// KnownType reports whether t is part of the closed type set
func KnownType(t NodeType) bool {
	_, ok := registry[t]
	return ok
}

// NodeTypes returns every registered node type in palette order
func NodeTypes() []NodeType {
	out := make([]NodeType, len(paletteOrder))
	copy(out, paletteOrder)
	return out
}
