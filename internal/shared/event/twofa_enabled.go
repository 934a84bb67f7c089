package event

const TwoFAEnabledDestination string = "twofa_enabled"

type TwoFAEnabledMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
