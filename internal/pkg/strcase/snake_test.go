package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"Email":         "email",
		"OTPToken":      "otp_token",
		"UserID":        "user_id",
		"DeviceID2":     "device_id2",
		"HTTPServer":    "http_server",
		"already_snake": "already_snake",
		"Require2FA":    "require2_fa",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
