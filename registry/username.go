package registry

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinUsernameLength is the shortest valid username, in runes
	MinUsernameLength = 3
	// MaxUsernameLength is the longest valid username, in runes
	MaxUsernameLength = 20
)

// ValidUsername checks username syntax: 3-20 characters drawn from
// [A-Za-z0-9_]. Case is not folded
func ValidUsername(raw string) bool {
	n := utf8.RuneCountInString(raw)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Normalize lower-cases a username or owner address for storage & comparison
func Normalize(s string) string {
	return strings.ToLower(s)
}

// RegistrationMessage is the exact string a client signs to claim username.
// username must be the original, non-normalized value the client submitted
func RegistrationMessage(username string) string {
	return "Register username: " + username
}
