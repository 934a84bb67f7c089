// Package otp issues TOTP secrets, provisioning URIs and codes for
// authenticator apps.
package otp

import (
	"crypto/rand"
	"encoding/base32"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// secretSize is the RFC 4226/6238 recommended seed length in bytes.
const secretSize = 20

var b32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// OTP defines the contract for TOTP operations.
type OTP interface {
	// GenerateSecret returns a new random base32 secret.
	GenerateSecret() (string, error)
	// URI builds an otpauth provisioning URI for the account label, issuer and secret.
	URI(accountLabel, issuer, secret string) string
	// Validate checks whether a code is valid at the given time.
	Validate(code, secret string, at time.Time) bool
	// GenerateCode creates a TOTP code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
}

// TOTP implements OTP using the Time-based One-Time Password algorithm.
type TOTP struct {
	period uint
	skew   uint
	digits otp.Digits
}

// NewTOTP constructs a TOTP instance with sensible defaults.
//
// If digits is not 6 or 8, it falls back to 6 digits. If period is 0, it uses
// the common 30-second period. A zero skew means one step on either side.
func NewTOTP(period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	if period == 0 {
		period = 30
	}

	if skew == 0 {
		skew = 1
	}

	return &TOTP{
		period: period,
		skew:   skew,
		digits: digits,
	}
}

// GenerateSecret returns a new random base32 secret without padding.
func (o *TOTP) GenerateSecret() (string, error) {
	raw := make([]byte, secretSize)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return b32NoPadding.EncodeToString(raw), nil
}

// URI builds an otpauth provisioning URI.
//
// The output depends only on its arguments and the codec settings, so the same
// secret always yields the same URI.
func (o *TOTP) URI(accountLabel, issuer, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("algorithm", otp.AlgorithmSHA1.String())
	v.Set("digits", o.digits.String())
	v.Set("period", strconv.FormatUint(uint64(o.period), 10))

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + issuer + ":" + accountLabel,
		RawQuery: encodeQuery(v),
	}

	return u.String()
}

// Validate checks whether a code is valid at the given time.
func (o *TOTP) Validate(code, secret string, at time.Time) bool {
	code = strings.TrimSpace(code)
	if code == "" || secret == "" {
		return false
	}

	rv, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	})

	return rv && err == nil
}

// GenerateCode creates a TOTP code for the given secret and time.
func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    o.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}

// encodeQuery mirrors url.Values.Encode but escapes spaces as %20, which
// authenticator apps render correctly in the issuer field.
func encodeQuery(v url.Values) string {
	return strings.ReplaceAll(v.Encode(), "+", "%20")
}
