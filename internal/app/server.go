package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Run serves HTTP until ctx is done or the listener fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		a.close(context.WithoutCancel(ctx))
		return err
	}

	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "address", ln.Addr().String())
		serveErr <- a.httpServer.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
		slog.Info("shutdown requested", "cause", context.Cause(ctx))
	case err = <-serveErr:
		slog.Error("http server stopped", "error", err)
	}

	timeout := a.config.GetSecond("app.server.shutdown_timeout_seconds")
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	a.Stop(stopCtx)

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop fails health checks first so the load balancer stops routing here,
// drains HTTP, waits for background event publishing and closes resources.
func (a *App) Stop(ctx context.Context) {
	a.draining.Store(true)

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shut down http server", "error", err)
	}
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background tasks returned errors", "error", err)
	}

	a.close(ctx)
	slog.InfoContext(ctx, "application stopped")
}
