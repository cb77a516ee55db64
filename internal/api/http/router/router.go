package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/mizutanik/kokoro_backend/config"
	"github.com/mizutanik/kokoro_backend/internal/api/http/handler"
	"github.com/mizutanik/kokoro_backend/internal/api/http/middleware"
	"github.com/mizutanik/kokoro_backend/internal/catalog"
	"github.com/mizutanik/kokoro_backend/internal/service/diagnosis"
	"github.com/mizutanik/kokoro_backend/internal/service/persona"
	pasetotoken "github.com/mizutanik/kokoro_backend/pkg/paseto"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg          *config.Config
	Redis        *redis.Client
	Catalog      *catalog.Catalog
	DiagnosisSvc diagnosis.Service
	PersonaSvc   persona.Service
	PasetoMgr    *pasetotoken.Manager
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.Redis)

	diagnosisH := handler.NewDiagnosisHandler(r.p.DiagnosisSvc, r.p.Catalog)
	personaH := handler.NewPersonaHandler(r.p.PersonaSvc)

	api := app.Group("/api/v1")

	r.registerDiagnosisRoutes(api, diagnosisH, authRequired)
	r.registerPersonaRoutes(api, personaH, authRequired)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
