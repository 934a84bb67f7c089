package app

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/twofa"
)

func (a *App) initModules(ctx context.Context) error {
	if !a.config.GetBool("modules.twofa.enabled") {
		slog.WarnContext(ctx, "module twofa is disabled, only health endpoints are served")
		return nil
	}

	return twofa.New(twofa.Dependency{
		DBConn:       a.dbConn,
		CacheConn:    a.cacheConn,
		Goroutine:    a.goroutine,
		Router:       a.router,
		Messaging:    a.messaging,
		Config:       a.config,
		Instrument:   a.ins,
		UID:          a.uid,
		HMAC:         a.hmac,
		Bcrypt:       a.bcrypt,
		MFAEncryptor: a.mfaEncryptor,
		Clock:        a.clock,
		Totp:         a.totp,
		Validator:    a.validator,
	})
}
