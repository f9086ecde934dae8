package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/repomanager"
)

const MaxNotificationLimit = 20

type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{db: db, repomanager: m}
}

// List returns the newest notifications of userID and the unread total.
// A limit outside 1..20 means 20.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]*models.Notification, int64, error) {
	if limit <= 0 || limit > MaxNotificationLimit {
		limit = MaxNotificationLimit
	}
	repo := s.repomanager.Notifications(s.db)
	items, err := repo.ListForRecipient(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repomanager.Notifications(s.db).MarkRead(ctx, id, userID)
}
