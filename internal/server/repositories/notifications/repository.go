// Package notifications stores like and comment notifications addressed to
// post owners.
package notifications

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	// ListForRecipient returns at most limit notifications, newest first.
	ListForRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead only touches rows addressed to recipientID; otherwise it
	// returns common.ErrorNotFound.
	MarkRead(ctx context.Context, id, recipientID string) error
}
