package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	libotp "github.com/pquerna/otp"

	"github.com/shandysiswandi/twofa/internal/pkg/clock"
	"github.com/shandysiswandi/twofa/internal/pkg/config"
	"github.com/shandysiswandi/twofa/internal/pkg/goroutine"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/mfa"
	"github.com/shandysiswandi/twofa/internal/pkg/otp"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
	"github.com/shandysiswandi/twofa/internal/pkg/validator"
)

const defaultServiceName = "2FA - TwoFA"

// configPath honours CONFIG_PATH, then LOCAL=true for a checkout, then the
// container mount.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig(context.Context) error {
	path := configPath()
	cfg, err := config.NewViper(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if tz := cfg.GetString("app.tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("app.tz: %w", err)
		}
		time.Local = loc
	}

	a.config = cfg
	a.onClose("config", func(context.Context) error { return cfg.Close() })
	return nil
}

func (a *App) serviceName() string {
	if name := a.config.GetString("instrument.service_name"); name != "" {
		return name
	}
	return defaultServiceName
}

func (a *App) initInstrument(ctx context.Context) error {
	ins, err := instrument.New(ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.serviceName(),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		return err
	}

	a.ins = ins
	a.onClose("instrument", ins.Shutdown)
	return nil
}

func (a *App) initLibraries(context.Context) error {
	var err error

	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.hmac = hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))
	a.totp = otp.NewTOTP(a.config.GetUint("mfa.totp.period"), a.config.GetUint("mfa.totp.skew"), libotp.DigitsSix)

	if a.validator, err = validator.NewV10Validator(); err != nil {
		return fmt.Errorf("validator: %w", err)
	}
	if a.uid, err = uid.NewSnowflake(); err != nil {
		return fmt.Errorf("snowflake: %w", err)
	}
	if a.mfaEncryptor, err = newMFAEncryptor(a.config.GetString("mfa.secret")); err != nil {
		return fmt.Errorf("mfa.secret: %w", err)
	}

	return nil
}

// newMFAEncryptor decodes a base64 AES-256 key.
func newMFAEncryptor(secret string) (*mfa.AESGCMEncryptor, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(secret))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, mfa.ErrInvalidKeyLength
	}

	return mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key}), nil
}
