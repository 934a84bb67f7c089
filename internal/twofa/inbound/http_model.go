package inbound

import "github.com/shandysiswandi/twofa/internal/twofa/usecase"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	OTPToken string `json:"otpToken"`
}

// UserResponse never carries the password. is_2fa_verified and last_login
// are null when the calling device has no session.
type UserResponse struct {
	ID            int64  `json:"id,string"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Require2FA    bool   `json:"require_2fa"`
	Is2FAVerified *bool  `json:"is_2fa_verified"`
	LastLogin     *int64 `json:"last_login"`
}

func newUserResponse(out *usecase.UserOutput) UserResponse {
	return UserResponse{
		ID:            out.ID,
		Email:         out.Email,
		Username:      out.Username,
		Require2FA:    out.Require2FA,
		Is2FAVerified: out.Is2FAVerified,
		LastLogin:     out.LastLogin,
	}
}

type LogoutResponse struct {
	LoggedOut bool `json:"loggedOut"`
}

func (LogoutResponse) Message() string {
	return "Logged out"
}

type QRCodeResponse struct {
	QRCode string `json:"qrcode"`
}
