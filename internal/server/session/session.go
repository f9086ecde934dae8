// Package session carries the authenticated caller through a request
// context. A Session is immutable once placed in a context.
package session

import (
	"context"
	"time"
)

type Session struct {
	UserID    string
	ExpiresAt time.Time
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session and whether the request was authenticated.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.UserID != ""
}

// UserID returns the caller's id or "" for anonymous requests.
func UserID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.UserID
}
