package di

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fluxo-backend/application/commands"
	"fluxo-backend/application/commands/bus"
	cmdhandlers "fluxo-backend/application/commands/handlers"
	"fluxo-backend/application/ports"
	"fluxo-backend/application/queries"
	querybus "fluxo-backend/application/queries/bus"
	queryhandlers "fluxo-backend/application/queries/handlers"
	"fluxo-backend/application/services"
	domaincfg "fluxo-backend/domain/config"
	"fluxo-backend/domain/flow"
	"fluxo-backend/infrastructure/config"
	redismsg "fluxo-backend/infrastructure/messaging/redis"
	"fluxo-backend/infrastructure/persistence/memory"
	"fluxo-backend/infrastructure/persistence/postgres"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideDomainConfig picks the graph limits for the environment
func ProvideDomainConfig(cfg *config.Config) domaincfg.DomainConfig {
	dc := domaincfg.LoadDomainConfig(cfg.Environment)
	if cfg.WebhookBaseURL != "" {
		dc.WebhookBaseURL = cfg.WebhookBaseURL
	}
	return *dc
}

// ProvideIDSource creates the id generator all new nodes, edges and
// flows draw from
func ProvideIDSource() flow.IDSource {
	return flow.NewUUIDSource()
}

// ProvidePgxPool opens the Postgres connection pool. Returns nil when
// no DATABASE_URL is configured; the repository provider falls back to
// memory in that case.
func ProvidePgxPool(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("no DATABASE_URL configured, flows will not survive restarts")
		return nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ProvideFlowRepository creates the flow store
func ProvideFlowRepository(
	pool *pgxpool.Pool,
	ids flow.IDSource,
	domainCfg domaincfg.DomainConfig,
	logger *zap.Logger,
) ports.FlowRepository {
	if pool == nil {
		return memory.NewFlowRepository(ids, domainCfg)
	}
	return postgres.NewFlowRepository(pool, ids, domainCfg, logger)
}

// ProvideRedisClient creates the Redis client, or nil when no address
// is configured
func ProvideRedisClient(cfg *config.Config) *goredis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// ProvideEventBus creates the domain event publisher
func ProvideEventBus(client *goredis.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if client == nil {
		return redismsg.NoopPublisher{}
	}
	return redismsg.NewPublisher(client, cfg.EventChannel, logger)
}

// ProvideMetrics creates metrics registered on the default registry
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.DefaultRegisterer)
}

// ProvideInMemoryCache creates the query-side cache
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideJWTValidator creates the token validator. Development gets a
// fixed secret so local tooling can mint tokens without setup.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "fluxo-dev-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideCommandBus creates a command bus with every editor command
// registered behind the logging and metrics pipeline
func ProvideCommandBus(
	repo ports.FlowRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
	ids flow.IDSource,
	domainCfg domaincfg.DomainConfig,
) (*bus.CommandBus, error) {
	deps := cmdhandlers.Deps{
		Repo:      repo,
		Events:    eventBus,
		Metrics:   metrics,
		Logger:    logger,
		IDs:       ids,
		DomainCfg: domainCfg,
	}

	pipeline := bus.NewPipeline(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	commandBus := bus.NewCommandBus()
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateFlowCommand{}, cmdhandlers.NewCreateFlowHandler(deps)},
		{commands.RenameFlowCommand{}, cmdhandlers.NewRenameFlowHandler(deps)},
		{commands.DeleteFlowCommand{}, cmdhandlers.NewDeleteFlowHandler(deps)},
		{commands.ImportFlowCommand{}, cmdhandlers.NewImportFlowHandler(deps)},
		{commands.AddNodeCommand{}, cmdhandlers.NewAddNodeHandler(deps)},
		{commands.UpdateNodeDataCommand{}, cmdhandlers.NewUpdateNodeDataHandler(deps)},
		{commands.MoveNodeCommand{}, cmdhandlers.NewMoveNodeHandler(deps)},
		{commands.DuplicateNodeCommand{}, cmdhandlers.NewDuplicateNodeHandler(deps)},
		{commands.DeleteNodeCommand{}, cmdhandlers.NewDeleteNodeHandler(deps)},
		{commands.AddButtonCommand{}, cmdhandlers.NewAddButtonHandler(deps)},
		{commands.RemoveButtonCommand{}, cmdhandlers.NewRemoveButtonHandler(deps)},
		{commands.AddHeaderCommand{}, cmdhandlers.NewAddHeaderHandler(deps)},
		{commands.RemoveHeaderCommand{}, cmdhandlers.NewRemoveHeaderHandler(deps)},
		{commands.ConnectNodesCommand{}, cmdhandlers.NewConnectNodesHandler(deps)},
		{commands.RemoveEdgeCommand{}, cmdhandlers.NewRemoveEdgeHandler(deps)},
		{commands.TagEdgeBranchCommand{}, cmdhandlers.NewTagEdgeBranchHandler(deps)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, pipeline.Execute(reg.handler)); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers. The
// palette never changes at runtime, so its handler sits behind the
// cache.
func ProvideQueryBus(
	repo ports.FlowRepository,
	cache ports.Cache,
	cfg *config.Config,
	domainCfg domaincfg.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	deps := queryhandlers.Deps{
		Repo:        repo,
		WebhookBase: domainCfg.WebhookBaseURL,
	}

	pipeline := querybus.NewPipeline(
		querybus.LoggingMiddleware(logger),
		querybus.MetricsMiddleware(metrics),
	)
	cached := querybus.CachingMiddleware(cache, time.Duration(cfg.CacheTTL)*time.Second)

	queryBus := querybus.NewQueryBus()
	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetFlowQuery{}, queryhandlers.NewGetFlowHandler(deps)},
		{queries.ListFlowsQuery{}, queryhandlers.NewListFlowsHandler(deps)},
		{queries.GetNodeSchemaQuery{}, queryhandlers.NewGetNodeSchemaHandler(deps)},
		{queries.GetPaletteQuery{}, cached(queryhandlers.NewGetPaletteHandler())},
		{queries.ExportFlowQuery{}, queryhandlers.NewExportFlowHandler(deps)},
		{queries.ValidateFlowQuery{}, queryhandlers.NewValidateFlowHandler(deps)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, pipeline.Execute(reg.handler)); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideSessionManager creates the canvas session manager
func ProvideSessionManager(commandBus *bus.CommandBus, metrics *observability.Metrics, logger *zap.Logger) *services.SessionManager {
	return services.NewSessionManager(commandBus, metrics, logger)
}
