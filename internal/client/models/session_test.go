package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Display(t *testing.T) {
	var nilSession *Session
	assert.Equal(t, "", nilSession.Display())
	assert.Equal(t, "alice", (&Session{Username: "alice", Email: "al@x.io"}).Display())
	assert.Equal(t, "BOB@", (&Session{Email: "bob@x.io"}).Display())
	assert.Equal(t, "ANON", (&Session{}).Display())
}

func TestSession_WithTokensCopies(t *testing.T) {
	orig := &Session{UserID: "u1", AccessToken: "a1", RefreshToken: "r1"}
	next := orig.WithTokens("a2", "r2")

	assert.Equal(t, "a1", orig.AccessToken)
	assert.Equal(t, "r1", orig.RefreshToken)
	assert.Equal(t, "u1", next.UserID)
	assert.Equal(t, "a2", next.AccessToken)
	assert.Equal(t, "r2", next.RefreshToken)
}
