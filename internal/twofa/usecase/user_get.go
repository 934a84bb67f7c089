package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
)

type GetUserInput struct {
	UserID   int64
	DeviceID string `validate:"required,max=512"`
}

// GetUser returns the user and the verification state of the calling device.
// Without a session the verification fields stay nil.
func (s *Usecase) GetUser(ctx context.Context, in GetUserInput) (*UserOutput, error) {
	ctx, span := s.startSpan(ctx, "GetUser")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.findUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	sess, err := s.findSession(ctx, user.ID, in.DeviceID)
	if errors.Is(err, goerror.ErrNotFound) {
		return newUserOutput(user, nil), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return newUserOutput(user, sess), nil
}
