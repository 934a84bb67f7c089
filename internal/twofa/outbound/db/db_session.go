package db

import (
	"context"

	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

const sessionColumns = `id, user_id, device_id, is_2fa_verified, last_login`

func (s *DB) GetSession(ctx context.Context, userID int64, deviceID string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "GetSession")
	defer func() { s.endSpan(span, err) }()

	var sess entity.Session
	err = s.conn.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM twofa_sessions WHERE user_id = $1 AND device_id = $2`,
		userID, deviceID).
		Scan(&sess.ID, &sess.UserID, &sess.DeviceID, &sess.Is2FAVerified, &sess.LastLogin)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sess, nil
}

// CreateSessionIfAbsent inserts sess unless (user_id, device_id) already has a row.
func (s *DB) CreateSessionIfAbsent(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSessionIfAbsent")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO twofa_sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, device_id) DO NOTHING`,
		sess.ID, sess.UserID, sess.DeviceID, sess.Is2FAVerified, sess.LastLogin)

	return s.mapError(err)
}

func (s *DB) MarkSessionVerified(ctx context.Context, userID int64, deviceID string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "MarkSessionVerified")
	defer func() { s.endSpan(span, err) }()

	var sess entity.Session
	err = s.conn.QueryRow(ctx,
		`UPDATE twofa_sessions SET is_2fa_verified = TRUE WHERE user_id = $1 AND device_id = $2
		RETURNING `+sessionColumns,
		userID, deviceID).
		Scan(&sess.ID, &sess.UserID, &sess.DeviceID, &sess.Is2FAVerified, &sess.LastLogin)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sess, nil
}

func (s *DB) DeleteSessions(ctx context.Context, userID int64, deviceID string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSessions")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`DELETE FROM twofa_sessions WHERE user_id = $1 AND device_id = $2`, userID, deviceID)

	return s.mapError(err)
}
