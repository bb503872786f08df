package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qiming/internal/errors"
)

func TestCreateAndGetUser(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	u, err := repo.Create(ctx, "小明", "hash-1")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "小明", u.Username)

	got, err := repo.GetByUsername(ctx, "小明")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash-1", got.PasswordHash)
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "小明", "hash-1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "小明", "hash-2")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestGetByUsernameAbsent(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	got, err := repo.GetByUsername(context.Background(), "不存在")
	require.NoError(t, err)
	assert.Nil(t, got)
}
