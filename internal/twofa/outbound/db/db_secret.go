package db

import (
	"context"

	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

func (s *DB) GetSecretByUserID(ctx context.Context, userID int64) (_ *entity.Secret, err error) {
	ctx, span := s.startSpan(ctx, "GetSecretByUserID")
	defer func() { s.endSpan(span, err) }()

	var sec entity.Secret
	err = s.conn.QueryRow(ctx,
		`SELECT id, user_id, secret, key_version FROM twofa_secrets WHERE user_id = $1`, userID).
		Scan(&sec.ID, &sec.UserID, &sec.Secret, &sec.KeyVersion)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sec, nil
}

// CreateSecretIfAbsent stores sec unless the user already has a secret; the
// existing row always wins.
func (s *DB) CreateSecretIfAbsent(ctx context.Context, sec entity.Secret) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSecretIfAbsent")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO twofa_secrets (id, user_id, secret, key_version) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING`,
		sec.ID, sec.UserID, sec.Secret, sec.KeyVersion)

	return s.mapError(err)
}
