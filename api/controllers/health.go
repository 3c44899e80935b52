package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/talentconnect-backend/api/responses"
	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is any dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Success   bool              `json:"success"`
	Timestamp time.Time         `json:"timestamp"`
	Message   string            `json:"message"`
	Env       string            `json:"env,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, healthResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
			Message:   "TalentConnect API is running",
			Env:       cfg.App.Env,
		})
	}
}

// HealthReady pings every named dependency; nil entries are reported as disabled.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "disabled"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				healthy = false
				checks[name] = "unavailable"
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.dependency_failed", err)
				}
				continue
			}
			checks[name] = "ok"
		}

		status := http.StatusOK
		msg := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			msg = "dependency unavailable"
		}
		responses.WriteJSON(w, status, healthResponse{
			Success:   healthy,
			Timestamp: time.Now().UTC(),
			Message:   msg,
			Env:       cfg.App.Env,
			Checks:    checks,
		})
	}
}
