package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

type sessionKey struct {
	userID   int64
	deviceID string
}

// fakeDB is an in-memory repoDB with per-method error injection.
type fakeDB struct {
	mu       sync.Mutex
	users    map[int64]entity.User
	secrets  map[int64]entity.Secret
	sessions map[sessionKey]entity.Session
	errs     map[string]error
	calls    map[string]int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[int64]entity.User{},
		secrets:  map[int64]entity.Secret{},
		sessions: map[sessionKey]entity.Session{},
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeDB) hit(name string) error {
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetUserByEmail"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetUserByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDB) EnableUserRequire2FA(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("EnableUserRequire2FA"); err != nil {
		return err
	}
	u, ok := f.users[id]
	if !ok {
		return goerror.ErrNotFound
	}
	u.Require2FA = true
	f.users[id] = u
	return nil
}

func (f *fakeDB) GetSecretByUserID(_ context.Context, userID int64) (*entity.Secret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetSecretByUserID"); err != nil {
		return nil, err
	}
	sec, ok := f.secrets[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sec, nil
}

func (f *fakeDB) CreateSecretIfAbsent(_ context.Context, sec entity.Secret) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("CreateSecretIfAbsent"); err != nil {
		return err
	}
	if _, ok := f.secrets[sec.UserID]; !ok {
		f.secrets[sec.UserID] = sec
	}
	return nil
}

func (f *fakeDB) GetSession(_ context.Context, userID int64, deviceID string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("GetSession"); err != nil {
		return nil, err
	}
	sess, ok := f.sessions[sessionKey{userID, deviceID}]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (f *fakeDB) CreateSessionIfAbsent(_ context.Context, sess entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("CreateSessionIfAbsent"); err != nil {
		return err
	}
	k := sessionKey{sess.UserID, sess.DeviceID}
	if _, ok := f.sessions[k]; !ok {
		f.sessions[k] = sess
	}
	return nil
}

func (f *fakeDB) MarkSessionVerified(_ context.Context, userID int64, deviceID string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("MarkSessionVerified"); err != nil {
		return nil, err
	}
	k := sessionKey{userID, deviceID}
	sess, ok := f.sessions[k]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	sess.Is2FAVerified = true
	f.sessions[k] = sess
	return &sess, nil
}

func (f *fakeDB) DeleteSessions(_ context.Context, userID int64, deviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.hit("DeleteSessions"); err != nil {
		return err
	}
	delete(f.sessions, sessionKey{userID, deviceID})
	return nil
}

func (f *fakeDB) sessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// fakeCache behaves like redis; err makes every call fail, deleteErr fails
// the next DeleteSession only.
type fakeCache struct {
	mu        sync.Mutex
	sessions  map[sessionKey]entity.Session
	err       error
	deleteErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{sessions: map[sessionKey]entity.Session{}}
}

func (f *fakeCache) GetSession(_ context.Context, userID int64, deviceID string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[sessionKey{userID, deviceID}]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (f *fakeCache) SetSession(_ context.Context, sess entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[sessionKey{sess.UserID, sess.DeviceID}] = sess
	return nil
}

func (f *fakeCache) DeleteSession(_ context.Context, userID int64, deviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := f.deleteErr; err != nil {
		f.deleteErr = nil
		return err
	}
	delete(f.sessions, sessionKey{userID, deviceID})
	return nil
}

type fakeMessaging struct {
	mu       sync.Mutex
	enabled  []TwoFAEnabledEvent
	verified []SessionVerifiedEvent
	err      error
}

func (f *fakeMessaging) PublishTwoFAEnabled(_ context.Context, msg TwoFAEnabledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.enabled = append(f.enabled, msg)
	return nil
}

func (f *fakeMessaging) PublishSessionVerified(_ context.Context, msg SessionVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.verified = append(f.verified, msg)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}
