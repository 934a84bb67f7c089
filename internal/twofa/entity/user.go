package entity

// User is an account that can log in with email and password.
type User struct {
	ID         int64
	Email      string
	Username   string
	Password   string // bcrypt hash
	Require2FA bool
}

// Secret is the TOTP shared secret of a user. At most one exists per user and
// it is never rotated.
type Secret struct {
	ID         int64
	UserID     int64
	Secret     []byte // AES-GCM ciphertext of the base32 secret
	KeyVersion int16
}
