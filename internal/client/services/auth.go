package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/client/models"
	"github.com/dmitrijs2005/loopin/internal/client/repositories/session"
	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/logging"
)

// persistTimeout bounds the save that follows a token rotation.
var persistTimeout = 5 * time.Second

// AuthService defines authentication operations for the CLI.
//
// Login and every later token rotation are written to the local store;
// Resume restores the stored session after a restart; Logout clears it.
type AuthService interface {
	Register(ctx context.Context, email, password, username string) (string, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Resume(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Session() *models.Session
	Ping(ctx context.Context) error
	Close() error
}

type authService struct {
	client client.Client
	repo   session.Repository
	logger logging.Logger
}

// NewAuthService binds the API client to the local session store. It
// registers itself as the client's session-change callback.
func NewAuthService(c client.Client, repo session.Repository, l logging.Logger) AuthService {
	a := &authService{client: c, repo: repo, logger: l.With("module", "auth")}
	c.OnSessionChange(a.persist)
	return a
}

func (a *authService) persist(s *models.Session) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := a.repo.Save(ctx, s); err != nil {
		a.logger.Error(ctx, "session save failed", "error", err)
	}
}

func (a *authService) Register(ctx context.Context, email, password, username string) (string, error) {
	return a.client.Register(ctx, email, password, username)
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return a.client.Login(ctx, email, password)
}

// Resume returns (nil, nil) when nothing is stored. A stored session the
// server no longer accepts is cleared; one that cannot be checked because
// the server is down is kept for the next attempt.
func (a *authService) Resume(ctx context.Context) (*models.Session, error) {
	stored, err := a.repo.Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s, err := a.client.Resume(ctx, stored)
	if errors.Is(err, client.ErrUnauthorized) {
		a.logger.Info(ctx, "stored session rejected", "user_id", stored.UserID)
		if cerr := a.repo.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return a.repo.Clear(ctx)
}

func (a *authService) Session() *models.Session {
	return a.client.Session()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close() error {
	return a.client.Close()
}
