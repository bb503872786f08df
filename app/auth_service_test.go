package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qiming/domain/user"
	"qiming/internal/errors"
)

// memUserRepo keeps users in a map keyed by username.
type memUserRepo struct {
	users  map[string]*user.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (r *memUserRepo) Create(_ context.Context, username, passwordHash string) (*user.User, error) {
	if _, exists := r.users[username]; exists {
		return nil, errors.ValidationError("用户名已存在")
	}
	r.nextID++
	u := &user.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[username] = u
	return u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return r.users[username], nil
}

// migrateCountingRepo overrides Migrate to report claimed rows.
type migrateCountingRepo struct {
	memNameRepo
	claimed    int64
	migrateErr error

	lastSession string
	lastUserID  int64
}

func (r *migrateCountingRepo) Migrate(_ context.Context, sessionID string, userID int64) (int64, error) {
	r.lastSession = sessionID
	r.lastUserID = userID
	if r.migrateErr != nil {
		return 0, r.migrateErr
	}
	return r.claimed, nil
}

func newAuthService(names *migrateCountingRepo) (*AuthService, *memUserRepo) {
	users := newMemUserRepo()
	return NewAuthService(users, names, "test-secret", time.Hour, nil), users
}

func TestLoginRegistersNewUser(t *testing.T) {
	names := &migrateCountingRepo{claimed: 3}
	svc, _ := newAuthService(names)

	result, err := svc.Login(context.Background(), "小明", "secret99", "sess-1")
	require.NoError(t, err)

	assert.True(t, result.Registered)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(3), result.MigratedCount)
	assert.Equal(t, "sess-1", names.lastSession)
	assert.Equal(t, result.User.ID, names.lastUserID)
}

func TestLoginVerifiesExistingUser(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})

	first, err := svc.Login(context.Background(), "小明", "secret99", "")
	require.NoError(t, err)

	second, err := svc.Login(context.Background(), "小明", "secret99", "")
	require.NoError(t, err)

	assert.False(t, second.Registered)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})

	_, err := svc.Login(context.Background(), "小明", "secret99", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "小明", "wrong-password", "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})

	_, err := svc.Login(context.Background(), "x", "secret99", "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, err = svc.Login(context.Background(), "小明", "short", "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestLoginSurvivesMigrationFailure(t *testing.T) {
	names := &migrateCountingRepo{migrateErr: fmt.Errorf("db down")}
	svc, _ := newAuthService(names)

	result, err := svc.Login(context.Background(), "小明", "secret99", "sess-1")
	require.NoError(t, err)
	assert.Zero(t, result.MigratedCount)
	assert.NotEmpty(t, result.Token)
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})

	result, err := svc.Login(context.Background(), "小明", "secret99", "")
	require.NoError(t, err)

	id, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, id)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})

	result, err := svc.Login(context.Background(), "小明", "secret99", "")
	require.NoError(t, err)

	_, err = svc.VerifyToken(result.Token + "x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))

	other := NewAuthService(newMemUserRepo(), &migrateCountingRepo{}, "different-secret", time.Hour, nil)
	_, err = other.VerifyToken(result.Token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(&migrateCountingRepo{})
	_, err := svc.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))
}
