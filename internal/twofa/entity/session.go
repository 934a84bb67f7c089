package entity

// DeviceUnknown is the device id used when a client sends no device header.
const DeviceUnknown = "unknown"

// Session is the login state of one user on one device.
//
// It exists from login until logout and moves from unverified to verified
// exactly once, through a successful 2FA setup or verify.
type Session struct {
	ID            int64
	UserID        int64
	DeviceID      string
	Is2FAVerified bool
	LastLogin     int64 // unix milliseconds
}
