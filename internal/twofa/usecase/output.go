package usecase

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
)

// UserOutput is a user without credentials, joined with the verification
// state of the calling device. Is2FAVerified and LastLogin are nil when the
// device has no session.
type UserOutput struct {
	ID            int64
	Email         string
	Username      string
	Require2FA    bool
	Is2FAVerified *bool
	LastLogin     *int64
}

func newUserOutput(user *entity.User, sess *entity.Session) *UserOutput {
	out := &UserOutput{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Require2FA: user.Require2FA,
	}

	if sess != nil {
		out.Is2FAVerified = lo.ToPtr(sess.Is2FAVerified)
		out.LastLogin = lo.ToPtr(sess.LastLogin)
	}

	return out
}
