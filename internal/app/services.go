package app

import (
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/mizutanik/kokoro_backend/config"
	"github.com/mizutanik/kokoro_backend/internal/catalog"
	"github.com/mizutanik/kokoro_backend/internal/service/diagnosis"
	"github.com/mizutanik/kokoro_backend/internal/service/persona"
	"github.com/mizutanik/kokoro_backend/internal/store"
	"github.com/mizutanik/kokoro_backend/pkg/database"
	pasetotoken "github.com/mizutanik/kokoro_backend/pkg/paseto"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideCatalog,
		ProvideStore,
		ProvideDiagnosisStore,
		ProvidePersonaStore,
		ProvideDiagnosisService,
		ProvidePersonaService,
		ProvidePasetoManager,
	),
)

func ProvideCatalog(cfg *config.Config) *catalog.Catalog {
	return catalog.New(catalog.Locale(cfg.Catalog.DefaultLocale))
}

func ProvideStore(db *database.DB) *store.Postgres {
	return store.NewPostgres(db)
}

func ProvideDiagnosisStore(pg *store.Postgres) store.DiagnosisStore { return pg }

func ProvidePersonaStore(pg *store.Postgres) store.PersonaStore { return pg }

func ProvideDiagnosisService(
	st store.DiagnosisStore,
	cat *catalog.Catalog,
	nc *nats.Conn,
) diagnosis.Service {
	return diagnosis.New(st, cat, nc, slog.Default())
}

func ProvidePersonaService(
	personas store.PersonaStore,
	diagnoses store.DiagnosisStore,
	rdb *redis.Client,
) persona.Service {
	return persona.New(personas, diagnoses, rdb, slog.Default())
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
