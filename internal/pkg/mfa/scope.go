package mfa

// Purpose identifies what a ciphertext protects.
type Purpose string

// PurposeOTPSeed scopes encryption to TOTP shared secrets.
const PurposeOTPSeed Purpose = "otp_seed"

// Scope binds a ciphertext to its owner. It is fed to AES-GCM as AAD, so a
// ciphertext copied to another user's row fails to decrypt.
type Scope struct {
	UserID  int64
	Purpose Purpose
}
