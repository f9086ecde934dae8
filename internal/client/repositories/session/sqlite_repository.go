package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/loopin/internal/client/models"
	"github.com/dmitrijs2005/loopin/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, email, username, refresh_token, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			username = excluded.username,
			refresh_token = excluded.refresh_token,
			saved_at = excluded.saved_at
	`, s.UserID, s.Email, s.Username, s.RefreshToken, r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, email, username, refresh_token, saved_at FROM session WHERE id = 1`,
	).Scan(&s.UserID, &s.Email, &s.Username, &s.RefreshToken, &s.SavedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
