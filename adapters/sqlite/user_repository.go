package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"qiming/domain/user"
	"qiming/internal/errors"
	"qiming/ports"
)

// UserRepository stores accounts in sqlite.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*user.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)`,
		username, passwordHash, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.ValidationError("用户名已存在")
		}
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "creating user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "reading new user id")
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
		FROM users WHERE username = ?`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "looking up user")
	}
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
