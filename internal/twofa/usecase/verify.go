package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

type Verify2FAInput struct {
	UserID   int64
	DeviceID string `validate:"required,max=512"`
	OTPToken string `validate:"required,otp"`
}

// Verify2FA marks the calling device's session verified when the code
// matches. It never changes require_2fa.
func (s *Usecase) Verify2FA(ctx context.Context, in Verify2FAInput) (*UserOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify2FA")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.checkCode(ctx, in.UserID, in.DeviceID, in.OTPToken)
	if err != nil {
		return nil, err
	}

	sess, err := s.verifySession(ctx, user.ID, in.DeviceID)
	if err != nil {
		return nil, err
	}

	s.publishSessionVerified(ctx, SessionVerifiedEvent{
		UserID:    user.ID,
		DeviceID:  sess.DeviceID,
		LastLogin: sess.LastLogin,
	})

	return newUserOutput(user, sess), nil
}

// checkCode loads the user, requires a provisioned secret and an open
// session, and validates the code. Nothing is written.
func (s *Usecase) checkCode(ctx context.Context, userID int64, deviceID, code string) (*entity.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	secret, err := s.getSecret(ctx, user.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "totp secret not provisioned", "user_id", user.ID)
		return nil, errSecretNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get totp secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(code, secret, s.clock.Now()) {
		slog.WarnContext(ctx, "totp code not match", "user_id", user.ID)
		return nil, errInvalidOTP
	}

	if _, err := s.repoDB.GetSession(ctx, user.ID, deviceID); errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session not found for device", "user_id", user.ID)
		return nil, errSessionNotFound
	} else if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

func (s *Usecase) verifySession(ctx context.Context, userID int64, deviceID string) (*entity.Session, error) {
	sess, err := s.markVerified(ctx, userID, deviceID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session removed before verification", "user_id", userID)
		return nil, errSessionNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark session verified", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return sess, nil
}
