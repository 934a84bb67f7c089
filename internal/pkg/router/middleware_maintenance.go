package router

import (
	"net/http"
	"slices"
	"strings"

	"github.com/shandysiswandi/twofa/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed under
// app.maintenance.endpoints. The list is read on every request so a
// config file reload takes effect without a restart. "*" blocks every route.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		if cfg == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			blocked := slices.ContainsFunc(cfg.GetArray("app.maintenance.endpoints"), func(e string) bool {
				e = strings.TrimSpace(e)
				return e == "*" || e == route
			})
			if blocked {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
