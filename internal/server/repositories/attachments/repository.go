// Package attachments stores metadata for files kept in object storage.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error)
	Get(ctx context.Context, id string) (*models.Attachment, error)
	MarkUploaded(ctx context.Context, id string) error
	// ListUploaded returns the confirmed attachments of a post, oldest first.
	ListUploaded(ctx context.Context, postID string) ([]*models.Attachment, error)
}
