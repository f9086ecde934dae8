package attachments

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

func (r *PostgresRepository) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	query :=
		`INSERT INTO attachments (post_id, user_id, storage_key, file_name, content_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.PostID, a.UserID, a.StorageKey, a.FileName, a.ContentType).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Attachment, error) {
	query :=
		`SELECT id, post_id, user_id, storage_key, file_name, content_type, uploaded, created_at
		 FROM attachments WHERE id = $1`

	a := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.PostID, &a.UserID, &a.StorageKey, &a.FileName, &a.ContentType, &a.Uploaded, &a.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return a, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE attachments SET uploaded = true WHERE id = $1`, id)
	if err != nil {
		return dbx.Wrap(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) ListUploaded(ctx context.Context, postID string) ([]*models.Attachment, error) {
	query :=
		`SELECT id, post_id, user_id, storage_key, file_name, content_type, uploaded, created_at
		 FROM attachments WHERE post_id = $1 AND uploaded
		 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		a := &models.Attachment{}
		if err := rows.Scan(&a.ID, &a.PostID, &a.UserID, &a.StorageKey, &a.FileName, &a.ContentType, &a.Uploaded, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}
	return result, nil
}
