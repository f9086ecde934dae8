package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/client/models"
	"github.com/dmitrijs2005/loopin/internal/filex"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/netx"
	pb "github.com/dmitrijs2005/loopin/internal/proto"
)

// FeedLimit is how many posts the feed shows.
const FeedLimit = 20

var uploadFile = netx.UploadToPresignedURL

// PostView is a post as the show command prints it.
type PostView struct {
	models.PostDetails
	// Liked is false for anonymous viewers.
	Liked bool
}

type ForumService interface {
	Feed(ctx context.Context) ([]models.Post, error)
	Show(ctx context.Context, id string) (*PostView, error)
	Publish(ctx context.Context, title, content string) (*models.Post, error)
	Retitle(ctx context.Context, id, title string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	Comment(ctx context.Context, postID, content string) (*models.Comment, error)
	ToggleLike(ctx context.Context, postID string) (*models.LikeStatus, error)
	Notifications(ctx context.Context) (*models.Inbox, error)
	MarkRead(ctx context.Context, id string) error
	Attach(ctx context.Context, postID, path string) (string, error)
	AttachmentURL(ctx context.Context, id string) (string, error)
	WatchComments(ctx context.Context, postID string, fn func(models.Comment)) error
	WatchInbox(ctx context.Context, fn func(models.Notification)) error
}

type forumService struct {
	client client.Client
	logger logging.Logger
}

func NewForumService(c client.Client, l logging.Logger) ForumService {
	return &forumService{client: c, logger: l.With("module", "forum")}
}

func (s *forumService) requireSession() error {
	if s.client.Session() == nil {
		return client.ErrNotLoggedIn
	}
	return nil
}

func (s *forumService) Feed(ctx context.Context) ([]models.Post, error) {
	return s.client.ListPosts(ctx, FeedLimit)
}

func (s *forumService) Show(ctx context.Context, id string) (*PostView, error) {
	d, err := s.client.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	v := &PostView{PostDetails: *d}
	if s.client.Session() == nil {
		return v, nil
	}

	st, err := s.client.LikeStatus(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "like status unavailable", "post_id", id, "error", err)
		return v, nil
	}
	v.Liked = st.Liked
	v.Post.Likes = st.Count
	return v, nil
}

func (s *forumService) Publish(ctx context.Context, title, content string) (*models.Post, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.client.CreatePost(ctx, title, content)
}

func (s *forumService) Retitle(ctx context.Context, id, title string) (*models.Post, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.client.UpdatePostTitle(ctx, id, title)
}

func (s *forumService) Delete(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.client.DeletePost(ctx, id)
}

func (s *forumService) Comment(ctx context.Context, postID, content string) (*models.Comment, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.client.AddComment(ctx, postID, content)
}

func (s *forumService) ToggleLike(ctx context.Context, postID string) (*models.LikeStatus, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.client.ToggleLike(ctx, postID)
}

func (s *forumService) Notifications(ctx context.Context) (*models.Inbox, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	return s.client.ListNotifications(ctx, 0)
}

func (s *forumService) MarkRead(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.client.MarkNotificationRead(ctx, id)
}

// Attach uploads the file at path to postID and returns the attachment id.
// The bytes go straight to object storage through a presigned URL; the
// server only records the attachment and confirms it afterwards.
func (s *forumService) Attach(ctx context.Context, postID, path string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}

	f, size, err := filex.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))

	up, err := s.client.CreateUpload(ctx, postID, name, contentType)
	if err != nil {
		return "", err
	}
	if err := uploadFile(ctx, up.URL, contentType, f, size); err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	if err := s.client.MarkUploaded(ctx, up.AttachmentID); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "attachment uploaded", "post_id", postID, "attachment_id", up.AttachmentID, "size", size)
	return up.AttachmentID, nil
}

func (s *forumService) AttachmentURL(ctx context.Context, id string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	return s.client.AttachmentURL(ctx, id)
}

// WatchComments calls fn for every comment added to postID until ctx is
// done. Change events carry ids only, so each one triggers a refetch.
func (s *forumService) WatchComments(ctx context.Context, postID string, fn func(models.Comment)) error {
	return s.client.Watch(ctx, pb.CollectionComments, postID, func(ch models.Change) {
		d, err := s.client.GetPost(ctx, postID)
		if err != nil {
			s.logger.Warn(ctx, "refetch failed", "post_id", postID, "error", err)
			return
		}
		for _, c := range d.Comments {
			if c.ID == ch.RowID {
				fn(c)
				return
			}
		}
	})
}

// WatchInbox calls fn for every notification delivered to the signed-in
// user until ctx is done.
func (s *forumService) WatchInbox(ctx context.Context, fn func(models.Notification)) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.client.Watch(ctx, pb.CollectionNotifications, "", func(ch models.Change) {
		inbox, err := s.client.ListNotifications(ctx, 0)
		if err != nil {
			s.logger.Warn(ctx, "refetch failed", "error", err)
			return
		}
		for _, n := range inbox.Notifications {
			if n.ID == ch.RowID {
				fn(n)
				return
			}
		}
	})
}

// IsOffline reports errors that mean the server could not be reached.
func IsOffline(err error) bool {
	return errors.Is(err, client.ErrUnavailable)
}
