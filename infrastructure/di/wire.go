//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"fluxo-backend/infrastructure/config"
	"fluxo-backend/interfaces/http/rest"
	"fluxo-backend/interfaces/http/rest/handlers"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideIDSource,
	ProvidePgxPool,
	ProvideFlowRepository,
	ProvideRedisClient,
	ProvideEventBus,
	ProvideMetrics,
	ProvideInMemoryCache,
	ProvideJWTValidator,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideSessionManager,
	handlers.NewFlowHandler,
	handlers.NewNodeHandler,
	handlers.NewEdgeHandler,
	handlers.NewCanvasHandler,
	rest.NewRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
