package app

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/mizutanik/kokoro_backend/config"
	"github.com/mizutanik/kokoro_backend/internal/service/diagnosis"
	"github.com/mizutanik/kokoro_backend/internal/service/persona"
	"github.com/mizutanik/kokoro_backend/pkg/email"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	NC         *nats.Conn
	Email      *email.Client
	PersonaSvc persona.Service
}

func RegisterWorkers(p WorkerParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startDiagnosisWorker(p.NC, p.Cfg, p.Email, p.PersonaSvc)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// diagnosis_worker
// ---------------------------------------------------------------------------

// startDiagnosisWorker reacts to completed diagnoses: it emails the
// user their result, drops any cached recommendations left over from a
// previous diagnosis, and rewarms the cache so the first
// recommendations request after completion is served from Redis.
func startDiagnosisWorker(nc *nats.Conn, cfg *config.Config, emailCli *email.Client, personaSvc persona.Service) {
	_, err := nc.Subscribe(diagnosis.EventSubjectPrefix+".*", func(msg *nats.Msg) {
		var event diagnosis.CompletedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.Warn("diagnosis_worker: bad event payload", "subject", msg.Subject, "err", err)
			return
		}

		ctx := context.Background()

		if emailCli.IsEnabled() && event.Email != "" {
			m := email.BuildResultEmail(email.ResultEmailData{
				Email:      event.Email,
				MBTIType:   event.MBTIType.String(),
				Confidence: event.Confidence,
				BaseURL:    "https://" + cfg.Server.Domain,
			})
			if err := emailCli.Send(ctx, m); err != nil {
				slog.Warn("diagnosis_worker: result email failed",
					"user_id", event.UserID, "err", err)
			}
		}

		personaSvc.InvalidateRecommendations(ctx, event.UserID)
		if _, err := personaSvc.Recommend(ctx, event.UserID); err != nil {
			slog.Warn("diagnosis_worker: cache warm failed",
				"user_id", event.UserID, "err", err)
		}
	})
	if err != nil {
		slog.Error("diagnosis_worker: subscribe failed", "err", err)
		return
	}

	slog.Info("diagnosis_worker: started")
}
