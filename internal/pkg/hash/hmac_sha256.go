package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 keys SHA-256 with a server secret and returns lowercase hex.
type HMACSHA256 struct {
	key []byte
}

// NewHMACSHA256 returns a keyed hasher.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{key: []byte(secret)}
}

// Hash never fails; the error is part of the Hash interface.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(str))
	return hex.AppendEncode(nil, mac.Sum(nil)), nil
}

// Verify compares in constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	want, _ := s.Hash(str)
	return hmac.Equal([]byte(hashed), want)
}
