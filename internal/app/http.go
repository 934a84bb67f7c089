package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/samber/lo"

	"github.com/shandysiswandi/twofa/internal/pkg/router"
)

const defaultHTTPAddress = ":8017"

func (a *App) initHTTPServer(context.Context) error {
	welcome := a.config.GetString("modules.twofa.service_name")
	if welcome == "" {
		welcome = a.serviceName()
	}

	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Welcome:    "Hello " + welcome,
	})
	a.router.GET("/health", healthHandler(&a.draining, []healthCheck{
		{name: "postgres", ping: a.dbConn.Ping},
		{name: "redis", ping: func(ctx context.Context) error { return a.cacheConn.Ping(ctx).Err() }},
	}))

	handler := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins(a.config.GetArray("app.server.cors")),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}).Handler(a.router)

	addr := a.config.GetString("app.server.http.address")
	if addr == "" {
		addr = defaultHTTPAddress
	}

	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
	return nil
}

// corsOrigins drops blank and duplicate entries from the configured list.
func corsOrigins(origins []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(origins, func(o string, _ int) string {
		return strings.TrimSpace(o)
	})))
}
