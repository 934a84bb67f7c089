package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	DeviceID string `validate:"required,max=512"`
}

// Login checks the credentials and opens (or reuses) the session of the
// calling device. A new session starts unverified.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*UserOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, errWrongPassword
	}

	// existence is decided by the store; a cached row may outlive a logout
	sess, err := s.createSession(ctx, user.ID, in.DeviceID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return newUserOutput(user, sess), nil
}
