// Package strcase converts Go identifiers for use in API error payloads.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a Go field name to snake_case keeping initialisms
// together: "OTPToken" becomes "otp_token" and "UserID" becomes "user_id".
func ToLowerSnake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) && startsWord(rs, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// startsWord reports whether the upper-case rune at i begins a new word.
func startsWord(rs []rune, i int) bool {
	prev := rs[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// last capital of an initialism followed by a lower-case word: HTTPServer
	return unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
}
