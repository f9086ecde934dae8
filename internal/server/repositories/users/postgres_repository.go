package users

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/dbx"
	"github.com/dmitrijs2005/loopin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, password_hash, password_salt)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.PasswordSalt).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, password_salt, created_at FROM users
		 WHERE email = $1`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.PasswordSalt, &user.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	return user, nil
}

func (r *PostgresRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	query :=
		`INSERT INTO profiles (user_id, username, email)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, profile.UserID, profile.Username, profile.Email).
		Scan(&profile.CreatedAt)
	if err != nil {
		return dbx.Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query :=
		`SELECT user_id, username, email, created_at FROM profiles
		 WHERE user_id = $1`

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Username, &p.Email, &p.CreatedAt)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return p, nil
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`

	var found bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&found); err != nil {
		return false, dbx.Wrap(err)
	}
	return found, nil
}
