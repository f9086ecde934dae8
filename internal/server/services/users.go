// Package services holds the server's business logic. Services receive the
// connection pool and a RepositoryManager and decide per call whether the
// repositories run on the pool or inside a transaction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/cryptox"
	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/logging"
	"github.com/dmitrijs2005/loopin/internal/server/auth"
	"github.com/dmitrijs2005/loopin/internal/server/config"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loopin/internal/username"
	"golang.org/x/sync/singleflight"
)

// MinPasswordLength matches the registration form rule.
const MinPasswordLength = 6

// usernameLookupTimeout bounds a coalesced availability query.
var usernameLookupTimeout = 5 * time.Second

// TokenPair bundles a short-lived access token and a rotating refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	lookups                      singleflight.Group
	logger                       logging.Logger
	now                          func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       l.With("module", "user_service"),
		now:                          time.Now,
	}
}

// Register creates the account and its profile in one transaction. The
// username goes through the same canonicalisation as the availability check.
func (s *UserService) Register(ctx context.Context, email, password, rawUsername string) (*models.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is invalid", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	name, err := username.Canonicalize(rawUsername)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, err.Error())
	}

	hash, salt := cryptox.HashPassword(password)

	profile := &models.Profile{Username: name, Email: email}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{Email: email, PasswordHash: hash, PasswordSalt: salt})
		if err != nil {
			return err
		}
		profile.UserID = user.ID
		return s.repomanager.Users(tx).CreateProfile(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", profile.UserID, "username", profile.Username)
	return profile, nil
}

// Login verifies the password and mints a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, *models.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !cryptox.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, nil, common.ErrorUnauthorized
	}

	profile, err := repo.GetProfile(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		profile = &models.Profile{UserID: user.ID, Email: user.Email}
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return pair, profile, nil
}

// RefreshToken rotates a refresh token: the old one is deleted and a new
// pair issued in the same transaction.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		return s.generateTokenPair(ctx, token.UserID, tx)
	})
}

// CheckUsername reports whether the canonical form of name is held by a
// profile. Concurrent checks for the same name share one query.
func (s *UserService) CheckUsername(ctx context.Context, name string) (string, bool, error) {
	canonical := username.Normalize(name)
	if len(canonical) < username.MinLength {
		return canonical, false, fmt.Errorf("%w: username must be at least %d characters", common.ErrorValidation, username.MinLength)
	}

	ch := s.lookups.DoChan(canonical, func() (any, error) {
		// the query outlives any single caller's cancellation
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usernameLookupTimeout)
		defer cancel()
		return s.repomanager.Users(s.db).UsernameExists(qctx, canonical)
	})

	select {
	case <-ctx.Done():
		return canonical, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return canonical, false, fmt.Errorf("%w: %w", common.ErrorInternal, res.Err)
		}
		if res.Shared {
			s.logger.Debug(ctx, "username lookup coalesced", "username", canonical)
		}
		return canonical, res.Val.(bool), nil
	}
}

// Me returns the caller's profile.
func (s *UserService) Me(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repomanager.Users(s.db).GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
