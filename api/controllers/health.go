package controllers

import (
	"context"
	"net/http"

	"github.com/kestrelgear/dealerdesk-backend/api/responses"
	"github.com/kestrelgear/dealerdesk-backend/pkg/config"
	pkgerrors "github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
)

// Pinger is the health surface a datasource exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DealerDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the datasources before reporting ready. A nil
// pinger is skipped so workers can share the handler with fewer deps.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DealerDesk-Env", cfg.App.Env)

		for name, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
