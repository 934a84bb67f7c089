// Package config reads service settings from a YAML file with environment
// overrides. Missing keys yield the zero value so callers apply defaults.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of settings the service depends on.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetUint(key string) uint
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetArray accepts either a YAML list or a comma separated string and
	// returns the trimmed non-empty elements.
	GetArray(key string) []string
}
