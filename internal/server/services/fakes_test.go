package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/attachments"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/posts"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore backs every fake repository. One instance plays the whole
// database; repositories ignore the DBTX they are built with.
type memStore struct {
	mu  sync.Mutex
	seq int

	users         map[string]*models.User
	profiles      map[string]*models.Profile
	tokens        map[string]*models.RefreshToken
	posts         map[string]*models.Post
	comments      []*models.Comment
	likes         map[[2]string]bool
	notifications []*models.Notification
	attachments   map[string]*models.Attachment

	usernameLookups int
	lookupDelay     time.Duration
	failWith        error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]*models.User{},
		profiles:    map[string]*models.Profile{},
		tokens:      map[string]*models.RefreshToken{},
		posts:       map[string]*models.Post{},
		likes:       map[[2]string]bool{},
		attachments: map[string]*models.Attachment{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

type fakeRepoManager struct{ s *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return (*fakeUsers)(f.s) }
func (f *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return (*fakeTokens)(f.s)
}
func (f *fakeRepoManager) Posts(dbx.DBTX) posts.Repository { return (*fakePosts)(f.s) }
func (f *fakeRepoManager) Notifications(dbx.DBTX) notifications.Repository {
	return (*fakeNotifications)(f.s)
}
func (f *fakeRepoManager) Attachments(dbx.DBTX) attachments.Repository {
	return (*fakeAttachments)(f.s)
}

type fakeUsers memStore

func (r *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("%w: users_email_key", common.ErrorAlreadyExists)
		}
	}
	cp := *u
	cp.ID = (*memStore)(r).nextID("u")
	r.users[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsers) CreateProfile(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.Username == p.Username {
			return fmt.Errorf("%w: profiles_username_key", common.ErrorAlreadyExists)
		}
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeUsers) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakeUsers) UsernameExists(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	r.usernameLookups++
	delay, fail := r.lookupDelay, r.failWith
	r.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if fail != nil {
		return false, fail
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Username == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokens memStore

func (r *fakeTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r *fakeTokens) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokens) DeleteForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakePosts memStore

func (r *fakePosts) decorate(p *models.Post) *models.Post {
	cp := *p
	cp.Author = models.Author{UserID: p.UserID}
	if pr, ok := r.profiles[p.UserID]; ok {
		cp.Author.Username = pr.Username
		cp.Author.Email = pr.Email
	}
	cp.LikeCount, cp.CommentCount = 0, 0
	for k := range r.likes {
		if k[0] == p.ID {
			cp.LikeCount++
		}
	}
	for _, c := range r.comments {
		if c.PostID == p.ID {
			cp.CommentCount++
		}
	}
	return &cp
}

func (r *fakePosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.ID = (*memStore)(r).nextID("p")
	cp.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cp.UpdatedAt = cp.CreatedAt
	r.posts[cp.ID] = &cp
	return r.decorate(&cp), nil
}

func (r *fakePosts) Get(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.decorate(p), nil
}

func (r *fakePosts) List(_ context.Context, limit int) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, r.decorate(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePosts) UpdateTitle(_ context.Context, id, title string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Title = title
	return r.decorate(p), nil
}

func (r *fakePosts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePosts) AddComment(_ context.Context, c *models.Comment) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.ID = (*memStore)(r).nextID("c")
	r.comments = append(r.comments, &cp)
	return &cp, nil
}

func (r *fakePosts) Comments(_ context.Context, postID string) ([]*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakePosts) AddLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{postID, userID}
	if r.likes[k] {
		return false, nil
	}
	r.likes[k] = true
	return true, nil
}

func (r *fakePosts) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := [2]string{postID, userID}
	if !r.likes[k] {
		return false, nil
	}
	delete(r.likes, k)
	return true, nil
}

func (r *fakePosts) LikeStatus(_ context.Context, postID, userID string) (*models.LikeStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := &models.LikeStatus{PostID: postID, Liked: r.likes[[2]string{postID, userID}]}
	for k := range r.likes {
		if k[0] == postID {
			st.Count++
		}
	}
	return st, nil
}

type fakeNotifications memStore

func (r *fakeNotifications) Create(_ context.Context, n *models.Notification) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	cp.ID = (*memStore)(r).nextID("n")
	r.notifications = append(r.notifications, &cp)
	return &cp, nil
}

func (r *fakeNotifications) ListForRecipient(_ context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if n := r.notifications[i]; n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotifications) CountUnread(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, x := range r.notifications {
		if x.RecipientID == recipientID && !x.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotifications) MarkRead(_ context.Context, id, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.notifications {
		if x.ID == id && x.RecipientID == recipientID {
			x.Read = true
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeAttachments memStore

func (r *fakeAttachments) Create(_ context.Context, a *models.Attachment) (*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	cp.ID = (*memStore)(r).nextID("a")
	r.attachments[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeAttachments) Get(_ context.Context, id string) (*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attachments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttachments) MarkUploaded(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attachments[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.Uploaded = true
	return nil
}

func (r *fakeAttachments) ListUploaded(_ context.Context, postID string) ([]*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Attachment
	for _, a := range r.attachments {
		if a.PostID == postID && a.Uploaded {
			out = append(out, a)
		}
	}
	return out, nil
}
