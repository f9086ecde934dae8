package client

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/client/models"
)

// Client is the surface of the Loopin server the terminal client uses.
type Client interface {
	Ping(ctx context.Context) error
	Close() error

	Register(ctx context.Context, email, password, username string) (string, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Resume(ctx context.Context, stored *models.Session) (*models.Session, error)
	Logout()
	Session() *models.Session
	OnSessionChange(fn func(*models.Session))

	CheckUsername(ctx context.Context, username string) (bool, error)
	Me(ctx context.Context) (*models.Author, error)

	ListPosts(ctx context.Context, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.PostDetails, error)
	CreatePost(ctx context.Context, title, content string) (*models.Post, error)
	UpdatePostTitle(ctx context.Context, id, title string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID, content string) (*models.Comment, error)
	ToggleLike(ctx context.Context, postID string) (*models.LikeStatus, error)
	LikeStatus(ctx context.Context, postID string) (*models.LikeStatus, error)

	ListNotifications(ctx context.Context, limit int) (*models.Inbox, error)
	MarkNotificationRead(ctx context.Context, id string) error

	CreateUpload(ctx context.Context, postID, fileName, contentType string) (*models.Upload, error)
	MarkUploaded(ctx context.Context, attachmentID string) error
	AttachmentURL(ctx context.Context, attachmentID string) (string, error)

	Watch(ctx context.Context, collection, key string, fn func(models.Change)) error
}

var _ Client = (*GRPCClient)(nil)
