package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fluxo-backend/infrastructure/config"
	"fluxo-backend/interfaces/http/rest/handlers"
	"fluxo-backend/interfaces/http/rest/middleware"
	"fluxo-backend/pkg/auth"
	"fluxo-backend/pkg/common"
)

// Router wires the HTTP surface of the editor backend
type Router struct {
	flows  *handlers.FlowHandler
	nodes  *handlers.NodeHandler
	edges  *handlers.EdgeHandler
	canvas *handlers.CanvasHandler

	validator *auth.JWTValidator
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates the router
func NewRouter(
	flows *handlers.FlowHandler,
	nodes *handlers.NodeHandler,
	edges *handlers.EdgeHandler,
	canvas *handlers.CanvasHandler,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		flows:     flows,
		nodes:     nodes,
		edges:     edges,
		canvas:    canvas,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Handler builds the chi mux
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	if rt.cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		r.Get("/palette", rt.flows.GetPalette)

		r.Route("/flows", func(r chi.Router) {
			r.Get("/", rt.flows.ListFlows)
			r.Post("/", rt.flows.CreateFlow)
			r.Post("/import", rt.flows.ImportFlow)

			r.Route("/{flowID}", func(r chi.Router) {
				r.Get("/", rt.flows.GetFlow)
				r.Put("/", rt.flows.RenameFlow)
				r.Delete("/", rt.flows.DeleteFlow)
				r.Get("/export", rt.flows.ExportFlow)
				r.Get("/validate", rt.flows.ValidateFlow)

				r.Route("/nodes", func(r chi.Router) {
					r.Post("/", rt.nodes.AddNode)

					r.Route("/{nodeID}", func(r chi.Router) {
						r.Patch("/", rt.nodes.UpdateNodeField)
						r.Delete("/", rt.nodes.DeleteNode)
						r.Put("/position", rt.nodes.MoveNode)
						r.Post("/duplicate", rt.nodes.DuplicateNode)
						r.Get("/schema", rt.nodes.GetNodeSchema)
						r.Post("/buttons", rt.nodes.AddButton)
						r.Delete("/buttons/{buttonID}", rt.nodes.RemoveButton)
						r.Post("/headers", rt.nodes.AddHeader)
						r.Delete("/headers/{headerID}", rt.nodes.RemoveHeader)
					})
				})

				r.Route("/edges", func(r chi.Router) {
					r.Post("/", rt.edges.ConnectNodes)
					r.Delete("/{edgeID}", rt.edges.RemoveEdge)
					r.Put("/{edgeID}/branch", rt.edges.TagEdgeBranch)
				})

				r.Route("/canvas", func(r chi.Router) {
					r.Post("/session", rt.canvas.OpenSession)
					r.Delete("/session", rt.canvas.CloseSession)
					r.Post("/drop", rt.canvas.DropNode)
					r.Post("/connect", rt.canvas.ConnectGesture)
					r.Put("/selection", rt.canvas.SelectNode)
					r.Delete("/selection", rt.canvas.ClearSelection)
					r.Put("/viewport", rt.canvas.SetViewport)
					r.Post("/nodes/{nodeID}/collapse", rt.canvas.ToggleCollapse)
				})
			})
		})
	})

	return r
}
