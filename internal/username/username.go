// Package username canonicalizes and validates forum usernames and formats
// the identity label shown next to posts, comments and notifications.
package username

import (
	"fmt"
	"strings"
)

// MinLength is the shortest username accepted for registration.
const MinLength = 3

// Normalize lower-cases input and drops every byte outside [a-z0-9_].
// It never fails: an empty result simply means nothing usable was typed.
func Normalize(input string) string {
	var builder strings.Builder
	builder.Grow(len(input))
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if ch >= 'A' && ch <= 'Z' {
			ch = ch - 'A' + 'a'
		}
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' {
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

// Canonicalize normalizes input and enforces the minimum length.
func Canonicalize(input string) (string, error) {
	canonical := Normalize(input)
	if canonical == "" {
		return "", fmt.Errorf("username is required")
	}
	if len(canonical) < MinLength {
		return "", fmt.Errorf("username must be at least %d characters", MinLength)
	}
	return canonical, nil
}

// FormatIdentity derives a short label from an email: its first four
// characters upper-cased, or ANON when there is no email.
func FormatIdentity(email string) string {
	if email == "" {
		return "ANON"
	}
	r := []rune(email)
	if len(r) > 4 {
		r = r[:4]
	}
	return strings.ToUpper(string(r))
}

// Display prefers the username and falls back to FormatIdentity.
func Display(name, email string) string {
	if name != "" {
		return name
	}
	return FormatIdentity(email)
}
