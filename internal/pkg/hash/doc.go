// Package hash provides one-way hashing behind a small interface.
//
// Bcrypt stores login passwords. HMACSHA256 derives stable, non-reversible
// keys from client-supplied values such as device fingerprints so they can be
// used in cache keys without storing the raw value.
package hash
