// Package models defines the rows the server persists in PostgreSQL.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	PasswordSalt []byte
	CreatedAt    time.Time
}

// Profile is the public face of a user. Username is unique and canonical.
type Profile struct {
	UserID    string
	Username  string
	Email     string
	CreatedAt time.Time
}

// Author is the identity attached to posts, comments and notifications.
type Author struct {
	UserID   string
	Username string
	Email    string
}
