package uid

import "github.com/google/uuid"

// UUID produces version 7 UUID strings, which sort by creation time and
// therefore group log lines of one request window together.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() UUID { return UUID{} }

// Generate returns a v7 UUID, or a random v4 if the v7 clock read fails.
func (UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
