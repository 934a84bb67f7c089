package db

import (
	"context"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

const selectUser = `SELECT id, email, username, password, require_2fa FROM twofa_users`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	err = s.conn.QueryRow(ctx, selectUser+` WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Require2FA)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	err = s.conn.QueryRow(ctx, selectUser+` WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Require2FA)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) EnableUserRequire2FA(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "EnableUserRequire2FA")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE twofa_users SET require_2fa = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) CreateUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO twofa_users (id, email, username, password, require_2fa) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Username, u.Password, u.Require2FA)

	return s.mapError(err)
}
