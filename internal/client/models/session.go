// Package models defines the values the terminal client works with.
package models

import (
	"time"

	"github.com/dmitrijs2005/loopin/internal/username"
)

// Session is the signed-in identity. It is replaced as a whole on login
// and on token refresh, never mutated in place.
type Session struct {
	UserID       string
	Email        string
	Username     string
	AccessToken  string
	RefreshToken string
	SavedAt      time.Time
}

// Display is the name shown in the prompt.
func (s *Session) Display() string {
	if s == nil {
		return ""
	}
	return username.Display(s.Username, s.Email)
}

// WithTokens returns a copy of s carrying a rotated token pair.
func (s *Session) WithTokens(access, refresh string) *Session {
	cp := *s
	cp.AccessToken = access
	cp.RefreshToken = refresh
	return &cp
}
