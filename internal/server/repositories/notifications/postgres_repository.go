package notifications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	query :=
		`INSERT INTO notifications (recipient_id, actor_id, type, post_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, n.RecipientID, n.ActorID, n.Type, n.PostID).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	query :=
		`SELECT n.id, n.recipient_id, n.actor_id, n.type, n.post_id, COALESCE(p.title, ''),
		        n.read, n.created_at, COALESCE(pr.username, ''), COALESCE(pr.email, '')
		 FROM notifications n
		 LEFT JOIN posts p ON p.id = n.post_id
		 LEFT JOIN profiles pr ON pr.user_id = n.actor_id
		 WHERE n.recipient_id = $1
		 ORDER BY n.created_at DESC
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	var result []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(&n.ID, &n.RecipientID, &n.ActorID, &n.Type, &n.PostID, &n.PostTitle,
			&n.Read, &n.CreatedAt, &n.Actor.Username, &n.Actor.Email)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Actor.UserID = n.ActorID
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT read`, recipientID).Scan(&n)
	if err != nil {
		return 0, dbx.Wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return dbx.Wrap(err)
	}
	return dbx.RequireAffected(res)
}
