// Package app builds every dependency of the service from config, serves
// HTTP until the context ends and tears everything down in reverse order.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/twofa/internal/pkg/clock"
	"github.com/shandysiswandi/twofa/internal/pkg/config"
	"github.com/shandysiswandi/twofa/internal/pkg/goroutine"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/messaging"
	"github.com/shandysiswandi/twofa/internal/pkg/mfa"
	"github.com/shandysiswandi/twofa/internal/pkg/otp"
	"github.com/shandysiswandi/twofa/internal/pkg/router"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
	"github.com/shandysiswandi/twofa/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App owns the service's long lived resources.
type App struct {
	config config.Config
	ins    instrument.Instrumentation

	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	hmac         hash.Hash
	bcrypt       hash.Hash
	uid          uid.NumberID
	uuid         uid.StringID
	totp         otp.OTP
	mfaEncryptor mfa.Encryptor

	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	messaging messaging.Publisher

	router     *router.Router
	httpServer *http.Server
	draining   atomic.Bool

	// released last-in first-out
	closers []closer
}

// New runs the init steps in order. When one fails, whatever was already
// opened is closed again before the error is returned.
func New(ctx context.Context) (*App, error) {
	a := &App{}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"config", a.initConfig},
		{"instrument", a.initInstrument},
		{"libraries", a.initLibraries},
		{"database", a.initDatabase},
		{"migrations", a.initMigrations},
		{"cache", a.initCache},
		{"messaging", a.initMessaging},
		{"http server", a.initHTTPServer},
		{"modules", a.initModules},
	}

	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			a.close(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("init %s: %w", s.name, err)
		}
	}

	return a, nil
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *App) close(ctx context.Context) {
	for _, c := range slices.Backward(a.closers) {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}
	a.closers = nil
}
