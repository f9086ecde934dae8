package posts

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

const selectPost = `
	SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at,
	       COALESCE(pr.username, ''), COALESCE(pr.email, ''),
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	LEFT JOIN profiles pr ON pr.user_id = p.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	p := &models.Post{}
	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.Username, &p.Author.Email, &p.LikeCount, &p.CommentCount)
	if err != nil {
		return nil, err
	}
	p.Author.UserID = p.UserID
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	var id string
	if err := r.db.QueryRowContext(ctx, query, post.UserID, post.Title, post.Content).Scan(&id); err != nil {
		return nil, dbx.Wrap(err)
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPost+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, selectPost+` ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateTitle(ctx context.Context, id, title string) (*models.Post, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET title = $2, updated_at = now() WHERE id = $1`, id, title)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	if err := dbx.RequireAffected(res); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return dbx.Wrap(err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) AddComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (post_id, user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, c.PostID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, dbx.Wrap(err)
	}
	c.Author.UserID = c.UserID
	return c, nil
}

func (r *PostgresRepository) Comments(ctx context.Context, postID string) ([]*models.Comment, error) {
	query :=
		`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
		        COALESCE(pr.username, ''), COALESCE(pr.email, '')
		 FROM comments c
		 LEFT JOIN profiles pr ON pr.user_id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	defer rows.Close()

	var result []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.Author.Username, &c.Author.Email); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Author.UserID = c.UserID
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID)
	if err != nil {
		return false, dbx.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbx.Wrap(err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, dbx.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbx.Wrap(err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) LikeStatus(ctx context.Context, postID, userID string) (*models.LikeStatus, error) {
	query :=
		`SELECT COUNT(*), COALESCE(bool_or(user_id = $2), false)
		 FROM likes WHERE post_id = $1`

	s := &models.LikeStatus{PostID: postID}
	if err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&s.Count, &s.Liked); err != nil {
		return nil, dbx.Wrap(err)
	}
	return s, nil
}
