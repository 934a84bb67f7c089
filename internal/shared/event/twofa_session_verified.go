package event

const TwoFASessionVerifiedDestination string = "twofa_session_verified"

// TwoFASessionVerifiedMessage is published whenever a device session passes a
// code check. Setup is true when the check came from the setup flow.
type TwoFASessionVerifiedMessage struct {
	UserID    int64  `json:"user_id"`
	DeviceID  string `json:"device_id"`
	Setup     bool   `json:"setup"`
	LastLogin int64  `json:"last_login"`
}
