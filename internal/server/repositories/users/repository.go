// Package users stores accounts and their public profiles.
package users

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in its ID.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail returns common.ErrorNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// UsernameExists is an exact match on the canonical username.
	UsernameExists(ctx context.Context, username string) (bool, error)
}
