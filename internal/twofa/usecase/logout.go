package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
)

type LogoutInput struct {
	UserID   int64
	DeviceID string `validate:"required,max=512"`
}

// Logout ends the session of the calling device. Logging out without a
// session succeeds.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.findUser(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := s.deleteSessions(ctx, user.ID, in.DeviceID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete sessions", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
