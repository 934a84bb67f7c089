package app

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/pkg/router"
)

const healthTimeout = 2 * time.Second

var errUnavailable = goerror.NewBusiness("Service unavailable", goerror.CodeUnavailable)

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (HealthResponse) Message() string {
	return "healthy"
}

// healthHandler reports 503 while draining or when any dependency fails its ping.
func healthHandler(draining *atomic.Bool, checks []healthCheck) router.Handler {
	return func(r *router.Request) (any, error) {
		if draining.Load() {
			return nil, errUnavailable
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			if err := c.ping(ctx); err != nil {
				slog.WarnContext(ctx, "health check failed", "name", c.name, "error", err)
				return nil, errUnavailable
			}
			resp.Checks[c.name] = "ok"
		}

		return resp, nil
	}
}
