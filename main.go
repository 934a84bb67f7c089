package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shandysiswandi/twofa/internal/app"
)

// @title           TwoFA API
// @version         1.0
// @description     Session-bound TOTP two-factor authentication. Verification state is tracked per user and device.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8017
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
