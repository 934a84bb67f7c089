package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type codeInput struct {
	UserID   int64  `validate:"required"`
	OTPToken string `validate:"required,otp"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(loginInput{Email: "u1@example.com", Password: "x"}))
	assert.NoError(t, v.Validate(codeInput{UserID: 1, OTPToken: "012345"}))

	err = v.Validate(loginInput{Email: "nope"})
	var verr V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Values(), "email")
	assert.Contains(t, verr.Values(), "password")
}

func TestV10Validator_OTP(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	for _, code := range []string{"12345", "1234567", "12a456", " 123456", "١٢٣٤٥٦"} {
		err := v.Validate(codeInput{UserID: 1, OTPToken: code})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr, code)
		assert.Equal(t, "otp_token must be a 6 digit code", verr.Values()["otp_token"], code)
	}
}

func TestV10ValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.JSONEq(t, `{"a":"b"}`, V10ValidationError{"a": "b"}.Error())
}

func TestV10Validator_Messages(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	err = v.Validate(codeInput{})
	var verr V10ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "user_id is a required field", verr.Values()["user_id"])
	assert.Equal(t, "otp_token is a required field", verr.Values()["otp_token"])

	assert.Error(t, v.Validate("not a struct"))
}
