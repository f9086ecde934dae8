// Package posts stores forum posts together with their comments and likes.
package posts

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// Get returns the post with author and counters, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Post, error)
	// List returns at most limit posts, newest first.
	List(ctx context.Context, limit int) ([]*models.Post, error)
	UpdateTitle(ctx context.Context, id, title string) (*models.Post, error)
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error)
	// Comments returns a post's comments oldest first.
	Comments(ctx context.Context, postID string) ([]*models.Comment, error)

	// AddLike reports false when the like already existed.
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	// RemoveLike reports false when there was nothing to remove.
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	LikeStatus(ctx context.Context, postID, userID string) (*models.LikeStatus, error)
}
