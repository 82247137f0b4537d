package di

import (
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fluxo-backend/application/commands/bus"
	"fluxo-backend/application/ports"
	querybus "fluxo-backend/application/queries/bus"
	"fluxo-backend/application/services"
	"fluxo-backend/infrastructure/config"
	"fluxo-backend/interfaces/http/rest"
	"fluxo-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Pool       *pgxpool.Pool
	Redis      *goredis.Client
	FlowRepo   ports.FlowRepository
	EventBus   ports.EventBus
	Cache      ports.Cache
	Metrics    *observability.Metrics
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Sessions   *services.SessionManager
	Router     *rest.Router
}

// Close releases the container's external connections
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	_ = c.Logger.Sync()
}
