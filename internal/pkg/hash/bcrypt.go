package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned when password plus pepper exceeds the 72 bytes
// bcrypt looks at. Hashing it anyway would silently ignore the tail.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Bcrypt hashes login passwords. The pepper is appended before hashing and
// lives in config, never next to the hash.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt uses bcrypt.DefaultCost for a zero cost and clamps the rest into
// the accepted range.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	cost = min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrTooLong
	}
	return hashed, err
}

// Verify reports whether plaintext matches hashed. A malformed hash is a
// mismatch.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}
