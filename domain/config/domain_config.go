package config

// DomainConfig holds all configurable editing rules and constraints
type DomainConfig struct {
	// Flow constraints
	MaxNodesPerFlow int
	MaxEdgesPerFlow int
	DefaultFlowName string

	// Node constraints
	MaxLabelLength       int
	MaxButtonsPerNode    int
	MaxButtonMessageSize int
	DuplicateOffsetX     float64
	DuplicateOffsetY     float64

	// Edge constraints
	AllowSelfConnections bool
	AllowDuplicateEdges  bool

	// Webhook trigger URL shown read-only in the inspector
	WebhookBaseURL string
}

// DefaultDomainConfig returns the default editing configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerFlow: 500,
		MaxEdgesPerFlow: 2000,
		DefaultFlowName: "Novo fluxo",

		MaxLabelLength:       200,
		MaxButtonsPerNode:    3,
		MaxButtonMessageSize: 1024,
		DuplicateOffsetX:     50,
		DuplicateOffsetY:     50,

		AllowSelfConnections: false,
		AllowDuplicateEdges:  true,

		WebhookBaseURL: "https://app.fluxo.chat/api",
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	cfg.MaxNodesPerFlow = 300
	cfg.MaxEdgesPerFlow = 1000

	return cfg
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	cfg.MaxNodesPerFlow = 5000
	cfg.MaxEdgesPerFlow = 20000
	cfg.AllowSelfConnections = true

	return cfg
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
