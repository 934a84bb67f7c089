package usecase

import (
	"context"
	"log/slog"
)

// Events are fire-and-forget: they run after the response on the shared
// goroutine manager and a failed publish is only logged.

func (s *Usecase) publishTwoFAEnabled(ctx context.Context, msg TwoFAEnabledEvent) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishTwoFAEnabled(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to publish twofa enabled", "user_id", msg.UserID, "error", err)
		}
		return nil
	})
}

func (s *Usecase) publishSessionVerified(ctx context.Context, msg SessionVerifiedEvent) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishSessionVerified(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to publish session verified", "user_id", msg.UserID, "error", err)
		}
		return nil
	})
}
