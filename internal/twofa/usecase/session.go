package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

// The store is the source of truth for sessions. The cache only shortens
// reads; every cache failure is logged and otherwise ignored.

// findSession returns the session of (userID, deviceID) or goerror.ErrNotFound.
func (s *Usecase) findSession(ctx context.Context, userID int64, deviceID string) (*entity.Session, error) {
	sess, err := s.repoCache.GetSession(ctx, userID, deviceID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "failed to cache get session", "user_id", userID, "error", err)
	}

	sess, err = s.repoDB.GetSession(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	s.cacheSession(ctx, *sess)
	return sess, nil
}

// createSession inserts an unverified session unless one exists, then returns
// whichever row is stored. Concurrent logins from one device converge on a
// single row through the (user_id, device_id) unique index.
func (s *Usecase) createSession(ctx context.Context, userID int64, deviceID string) (*entity.Session, error) {
	if err := s.repoDB.CreateSessionIfAbsent(ctx, entity.Session{
		ID:            s.uid.Generate(),
		UserID:        userID,
		DeviceID:      deviceID,
		Is2FAVerified: false,
		LastLogin:     s.clock.Now().UnixMilli(),
	}); err != nil {
		return nil, err
	}

	sess, err := s.repoDB.GetSession(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	s.cacheSession(ctx, *sess)
	return sess, nil
}

// markVerified flags the session as verified and keeps last_login. It
// returns goerror.ErrNotFound when the device has no session.
func (s *Usecase) markVerified(ctx context.Context, userID int64, deviceID string) (*entity.Session, error) {
	sess, err := s.repoDB.MarkSessionVerified(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	s.cacheSession(ctx, *sess)
	return sess, nil
}

// deleteSessions removes every session of (userID, deviceID); none is not an
// error. The cache is evicted before the row goes, so a failed eviction leaves
// the session in place instead of a cached ghost. The second eviction catches
// a concurrent read that repopulated the key in between.
func (s *Usecase) deleteSessions(ctx context.Context, userID int64, deviceID string) error {
	if err := s.repoCache.DeleteSession(ctx, userID, deviceID); err != nil {
		return fmt.Errorf("evict cached session: %w", err)
	}

	if err := s.repoDB.DeleteSessions(ctx, userID, deviceID); err != nil {
		return err
	}

	if err := s.repoCache.DeleteSession(ctx, userID, deviceID); err != nil {
		slog.WarnContext(ctx, "failed to cache delete session", "user_id", userID, "error", err)
	}

	return nil
}

func (s *Usecase) cacheSession(ctx context.Context, sess entity.Session) {
	if err := s.repoCache.SetSession(ctx, sess); err != nil {
		slog.WarnContext(ctx, "failed to cache set session", "user_id", sess.UserID, "error", err)
	}
}
