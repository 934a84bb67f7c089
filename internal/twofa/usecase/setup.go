package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
)

type Setup2FAInput struct {
	UserID   int64
	DeviceID string `validate:"required,max=512"`
	OTPToken string `validate:"required,otp"`
}

// Setup2FA confirms the user scanned the QR code: on a matching code it turns
// on require_2fa and marks the calling device's session verified. A wrong code
// changes nothing.
func (s *Usecase) Setup2FA(ctx context.Context, in Setup2FAInput) (*UserOutput, error) {
	ctx, span := s.startSpan(ctx, "Setup2FA")
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

	if !user.Require2FA {
		if err := s.repoDB.EnableUserRequire2FA(ctx, user.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo enable require 2fa", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		user.Require2FA = true

		s.publishTwoFAEnabled(ctx, TwoFAEnabledEvent{
			UserID:   user.ID,
			Email:    user.Email,
			Username: user.Username,
		})
	}

	s.publishSessionVerified(ctx, SessionVerifiedEvent{
		UserID:    user.ID,
		DeviceID:  sess.DeviceID,
		Setup:     true,
		LastLogin: sess.LastLogin,
	})

	return newUserOutput(user, sess), nil
}
