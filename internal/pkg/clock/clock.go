// Package clock lets code that compares against "now" run on a fake time in
// tests.
package clock

import "time"

// Clocker reports the current time.
type Clocker interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// New returns the wall clock.
func New() System { return System{} }

// Now returns time.Now.
func (System) Now() time.Time { return time.Now() }
