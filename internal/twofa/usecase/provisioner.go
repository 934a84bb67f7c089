package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/pkg/mfa"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

// getSecret returns the plain base32 secret of a user, or goerror.ErrNotFound
// when none was provisioned yet.
func (s *Usecase) getSecret(ctx context.Context, userID int64) (string, error) {
	sec, err := s.repoDB.GetSecretByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	return s.openSecret(sec)
}

// getOrCreateSecret returns the user's secret, provisioning one on first use.
// Concurrent first calls race on the unique user_id index; the loser's insert
// is dropped and both read back the winner's row.
func (s *Usecase) getOrCreateSecret(ctx context.Context, userID int64) (string, error) {
	plain, err := s.getSecret(ctx, userID)
	if err == nil {
		return plain, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		return "", err
	}

	generated, err := s.totp.GenerateSecret()
	if err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}

	sealed, err := s.mfaEncryptor.Encrypt([]byte(generated), secretScope(userID))
	if err != nil {
		return "", fmt.Errorf("encrypt totp secret: %w", err)
	}

	if err := s.repoDB.CreateSecretIfAbsent(ctx, entity.Secret{
		ID:         s.uid.Generate(),
		UserID:     userID,
		Secret:     sealed,
		KeyVersion: secretKeyVersion,
	}); err != nil {
		return "", err
	}

	return s.getSecret(ctx, userID)
}

func (s *Usecase) openSecret(sec *entity.Secret) (string, error) {
	plain, err := s.mfaEncryptor.Decrypt(sec.Secret, secretScope(sec.UserID))
	if err != nil {
		return "", fmt.Errorf("decrypt totp secret: %w", err)
	}

	return string(plain), nil
}

func secretScope(userID int64) mfa.Scope {
	return mfa.Scope{UserID: userID, Purpose: mfa.PurposeOTPSeed}
}
