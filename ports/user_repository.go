package ports

import (
	"context"

	"qiming/domain/user"
)

// UserRepository stores accounts. GetByUsername returns (nil, nil) for an
// unknown username.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}
