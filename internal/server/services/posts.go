package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/posts"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/repomanager"
)

const (
	DefaultPostLimit = 50
	MaxPostLimit     = 200
	MaxTitleLength   = 200
)

// PostDetails is a post together with everything the detail view shows.
type PostDetails struct {
	Post        *models.Post
	Comments    []*models.Comment
	Attachments []*models.Attachment
}

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *PostService {
	return &PostService{db: db, repomanager: m, logger: l.With("module", "post_service")}
}

func (s *PostService) List(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	limit = min(limit, MaxPostLimit)
	return s.repomanager.Posts(s.db).List(ctx, limit)
}

func (s *PostService) Get(ctx context.Context, id string) (*PostDetails, error) {
	repo := s.repomanager.Posts(s.db)
	post, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := repo.Comments(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.repomanager.Attachments(s.db).ListUploaded(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostDetails{Post: post, Comments: comments, Attachments: attachments}, nil
}

func (s *PostService) Create(ctx context.Context, userID, title, content string) (*models.Post, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	post, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{UserID: userID, Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "post created", "post_id", post.ID, "user_id", userID)
	return post, nil
}

func (s *PostService) UpdateTitle(ctx context.Context, userID, id, title string) (*models.Post, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Post, error) {
		repo := s.repomanager.Posts(tx)
		if err := requireOwner(ctx, repo, id, userID); err != nil {
			return nil, err
		}
		return repo.UpdateTitle(ctx, id, title)
	})
}

func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)
		if err := requireOwner(ctx, repo, id, userID); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "post deleted", "post_id", id, "user_id", userID)
	return nil
}

// AddComment stores the comment and, unless the author comments on their own
// post, a notification for the post owner.
func (s *PostService) AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", common.ErrorValidation)
	}

	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Comment, error) {
		repo := s.repomanager.Posts(tx)
		post, err := repo.Get(ctx, postID)
		if err != nil {
			return nil, err
		}
		c, err := repo.AddComment(ctx, &models.Comment{PostID: postID, UserID: userID, Content: content})
		if err != nil {
			return nil, err
		}
		if err := s.notifyOwner(ctx, tx, post, userID, models.NotificationComment); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// ToggleLike flips the caller's like on a post and returns the new state.
// Only a newly added like notifies the owner.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*models.LikeStatus, error) {
	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.LikeStatus, error) {
		repo := s.repomanager.Posts(tx)
		post, err := repo.Get(ctx, postID)
		if err != nil {
			return nil, err
		}

		removed, err := repo.RemoveLike(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		if !removed {
			added, err := repo.AddLike(ctx, postID, userID)
			if err != nil {
				return nil, err
			}
			if added {
				if err := s.notifyOwner(ctx, tx, post, userID, models.NotificationLike); err != nil {
					return nil, err
				}
			}
		}
		return repo.LikeStatus(ctx, postID, userID)
	})
}

func (s *PostService) LikeStatus(ctx context.Context, userID, postID string) (*models.LikeStatus, error) {
	repo := s.repomanager.Posts(s.db)
	if _, err := repo.Get(ctx, postID); err != nil {
		return nil, err
	}
	return repo.LikeStatus(ctx, postID, userID)
}

func (s *PostService) notifyOwner(ctx context.Context, tx dbx.DBTX, post *models.Post, actorID, kind string) error {
	if post.UserID == actorID {
		return nil
	}
	_, err := s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
		RecipientID: post.UserID,
		ActorID:     actorID,
		Type:        kind,
		PostID:      post.ID,
	})
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func requireOwner(ctx context.Context, repo posts.Repository, id, userID string) error {
	post, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return common.ErrorForbidden
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if len([]rune(title)) > MaxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", common.ErrorValidation, MaxTitleLength)
	}
	return title, nil
}
