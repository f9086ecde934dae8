package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/client/models"
	"github.com/dmitrijs2005/loopin/internal/common"
)

// fakeClient implements client.Client for service tests. Methods not set
// up by a test panic through the embedded nil interface.
type fakeClient struct {
	client.Client

	mu       sync.Mutex
	session  *models.Session
	onChange func(*models.Session)

	loginErr  error
	resumeErr error
	pingErr   error
	pings     int

	checkTaken map[string]bool
	checkErr   error
	checks     int

	posts    map[string]*models.PostDetails
	liked    map[string]bool
	likeErr  error
	inbox    *models.Inbox
	created  []string
	deleted  []string
	comments []string

	upload      *models.Upload
	uploadErr   error
	markedIDs   []string
	changes     []models.Change
	watchErr    error
	watchedKeys []string
}

func (f *fakeClient) OnSessionChange(fn func(*models.Session)) { f.onChange = fn }

func (f *fakeClient) setSession(s *models.Session) {
	f.mu.Lock()
	f.session = s
	f.mu.Unlock()
	if f.onChange != nil {
		f.onChange(s)
	}
}

func (f *fakeClient) Session() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	s := &models.Session{UserID: "u1", Email: email, AccessToken: "a", RefreshToken: "r"}
	f.setSession(s)
	return s, nil
}

func (f *fakeClient) Resume(_ context.Context, stored *models.Session) (*models.Session, error) {
	if f.resumeErr != nil {
		return nil, f.resumeErr
	}
	s := stored.WithTokens("a2", "r2")
	f.setSession(s)
	return s, nil
}

func (f *fakeClient) Logout() { f.setSession(nil) }

func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) CheckUsername(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.checkTaken[name], nil
}

func (f *fakeClient) ListPosts(context.Context, int) ([]models.Post, error) {
	var out []models.Post
	for _, d := range f.posts {
		out = append(out, d.Post)
	}
	return out, nil
}

func (f *fakeClient) GetPost(_ context.Context, id string) (*models.PostDetails, error) {
	d, ok := f.posts[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeClient) LikeStatus(_ context.Context, id string) (*models.LikeStatus, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	return &models.LikeStatus{PostID: id, Liked: f.liked[id], Count: 7}, nil
}

func (f *fakeClient) ToggleLike(_ context.Context, id string) (*models.LikeStatus, error) {
	if f.liked == nil {
		f.liked = map[string]bool{}
	}
	f.liked[id] = !f.liked[id]
	return &models.LikeStatus{PostID: id, Liked: f.liked[id]}, nil
}

func (f *fakeClient) CreatePost(_ context.Context, title, _ string) (*models.Post, error) {
	f.created = append(f.created, title)
	return &models.Post{ID: "p-new", Title: title}, nil
}

func (f *fakeClient) DeletePost(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) AddComment(_ context.Context, postID, content string) (*models.Comment, error) {
	f.comments = append(f.comments, content)
	return &models.Comment{ID: "c-new", PostID: postID, Content: content}, nil
}

func (f *fakeClient) ListNotifications(context.Context, int) (*models.Inbox, error) {
	if f.inbox == nil {
		return &models.Inbox{}, nil
	}
	return f.inbox, nil
}

func (f *fakeClient) CreateUpload(_ context.Context, postID, fileName, contentType string) (*models.Upload, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.upload, nil
}

func (f *fakeClient) MarkUploaded(_ context.Context, id string) error {
	f.markedIDs = append(f.markedIDs, id)
	return nil
}

func (f *fakeClient) Watch(_ context.Context, _, key string, fn func(models.Change)) error {
	f.watchedKeys = append(f.watchedKeys, key)
	for _, ch := range f.changes {
		fn(ch)
	}
	return f.watchErr
}

// fakeSessionRepo is an in-memory session.Repository.
type fakeSessionRepo struct {
	mu      sync.Mutex
	stored  *models.Session
	saves   int
	clears  int
	saveErr error
}

func (r *fakeSessionRepo) Save(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *s
	cp.AccessToken = ""
	r.stored = &cp
	r.saves++
	return nil
}

func (r *fakeSessionRepo) Load(context.Context) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return nil, common.ErrorNotFound
	}
	cp := *r.stored
	return &cp, nil
}

func (r *fakeSessionRepo) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = nil
	r.clears++
	return nil
}
