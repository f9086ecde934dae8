// Package session persists the signed-in identity in the client's local
// SQLite database so a restarted client can resume without a password.
package session

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/client/models"
)

// Repository stores at most one session. Access tokens are never written.
type Repository interface {
	Save(ctx context.Context, s *models.Session) error
	// Load returns common.ErrorNotFound when nothing is stored.
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}
