package usecase

import (
	"context"

	"github.com/shandysiswandi/twofa/internal/pkg/clock"
	"github.com/shandysiswandi/twofa/internal/pkg/config"
	"github.com/shandysiswandi/twofa/internal/pkg/goroutine"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/mfa"
	"github.com/shandysiswandi/twofa/internal/pkg/otp"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
	"github.com/shandysiswandi/twofa/internal/pkg/validator"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceName = "2FA - TwoFA"
	defaultQRCodeSize  = 256
	secretKeyVersion   = 1
)

type TwoFAEnabledEvent struct {
	UserID   int64
	Email    string
	Username string
}

type SessionVerifiedEvent struct {
	UserID    int64
	DeviceID  string
	Setup     bool
	LastLogin int64
}

type repoMessaging interface {
	PublishTwoFAEnabled(ctx context.Context, msg TwoFAEnabledEvent) error
	PublishSessionVerified(ctx context.Context, msg SessionVerifiedEvent) error
}

type repoCache interface {
	GetSession(ctx context.Context, userID int64, deviceID string) (*entity.Session, error)
	SetSession(ctx context.Context, sess entity.Session) error
	DeleteSession(ctx context.Context, userID int64, deviceID string) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	EnableUserRequire2FA(ctx context.Context, id int64) error

	GetSecretByUserID(ctx context.Context, userID int64) (*entity.Secret, error)
	CreateSecretIfAbsent(ctx context.Context, sec entity.Secret) error

	GetSession(ctx context.Context, userID int64, deviceID string) (*entity.Session, error)
	CreateSessionIfAbsent(ctx context.Context, sess entity.Session) error
	MarkSessionVerified(ctx context.Context, userID int64, deviceID string) (*entity.Session, error)
	DeleteSessions(ctx context.Context, userID int64, deviceID string) error
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	mfaEncryptor  mfa.Encryptor
	uid           uid.NumberID
	totp          otp.OTP
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	MFAEncryptor  mfa.Encryptor
	UID           uid.NumberID
	Totp          otp.OTP
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		mfaEncryptor:  dep.MFAEncryptor,
		uid:           dep.UID,
		totp:          dep.Totp,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("twofa.usecase").Start(ctx, name)
}

// serviceName is the issuer label shown by authenticator apps.
func (s *Usecase) serviceName() string {
	if v := s.cfg.GetString("modules.twofa.service_name"); v != "" {
		return v
	}
	if v := s.cfg.GetString("mfa.totp.issuer"); v != "" {
		return v
	}
	return defaultServiceName
}

func (s *Usecase) qrcodeSize() int {
	if v := s.cfg.GetInt("modules.twofa.qrcode_size"); v > 0 {
		return v
	}
	return defaultQRCodeSize
}
