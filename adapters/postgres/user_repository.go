package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"qiming/domain/user"
	"qiming/internal/errors"
	"qiming/ports"
)

// UserRepository stores accounts in postgres.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*user.User, error) {
	now := time.Now().UTC()
	var id int64
	err := r.db.GetContext(ctx, &id, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		username, passwordHash, now)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, errors.ValidationError("用户名已存在")
		}
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "creating user")
	}
	return &user.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1`, username)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "looking up user")
	}
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
