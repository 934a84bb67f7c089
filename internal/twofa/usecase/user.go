package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

var (
	errUserNotFound    = goerror.NewBusiness("User not found!", goerror.CodeNotFound)
	errSecretNotFound  = goerror.NewBusiness("2FA secret not found!", goerror.CodeNotFound)
	errSessionNotFound = goerror.NewBusiness("Session not found!", goerror.CodeBadRequest)
	errWrongPassword   = goerror.NewBusiness("Wrong password!", goerror.CodeNotAcceptable)
	errInvalidOTP      = goerror.NewBusiness("Invalid 2FA code!", goerror.CodeNotAcceptable)
)

func (s *Usecase) findUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repoDB.GetUserByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", id)
		return nil, errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
