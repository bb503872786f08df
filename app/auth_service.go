package app

import (
	"context"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"qiming/domain/user"
	"qiming/internal/errors"
	"qiming/internal/logging"
	"qiming/ports"
)

// AuthService implements combined register-or-login: unknown usernames
// are created, known ones verified. A successful login with a session id
// claims that session's unowned history rows.
type AuthService struct {
	users  ports.UserRepository
	names  ports.NameRepository
	secret []byte
	ttl    time.Duration
	logger *logging.Logger
}

func NewAuthService(users ports.UserRepository, names ports.NameRepository, secret string, ttl time.Duration, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &AuthService{
		users:  users,
		names:  names,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// AuthResult is the outcome of a successful login.
type AuthResult struct {
	User          *user.User `json:"user"`
	Token         string     `json:"token"`
	MigratedCount int64      `json:"migratedCount"`
	Registered    bool       `json:"registered"`
}

// Login registers or verifies the user and migrates the session's rows.
func (s *AuthService) Login(ctx context.Context, username, password, sessionID string) (*AuthResult, error) {
	if utf8.RuneCountInString(username) < 2 {
		return nil, errors.ValidationError("用户名至少2个字符")
	}
	if len(password) < 6 {
		return nil, errors.ValidationError("密码至少6个字符")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var u *user.User
	registered := false
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "hashing password")
		}
		u, err = s.users.Create(ctx, username, string(hash))
		if err != nil {
			return nil, err
		}
		registered = true
		s.logger.Info("registered user %s (id=%d)", username, u.ID)
	} else {
		if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)); err != nil {
			return nil, errors.Unauthorized("用户名或密码错误")
		}
		u = existing
	}

	var migrated int64
	if sessionID != "" {
		migrated, err = s.names.Migrate(ctx, sessionID, u.ID)
		if err != nil {
			// Claiming old rows is not worth failing the login over.
			s.logger.Warn("migrating session %s to user %d failed: %v", sessionID, u.ID, err)
			migrated = 0
		}
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:          u,
		Token:         token,
		MigratedCount: migrated,
		Registered:    registered,
	}, nil
}

func (s *AuthService) issueToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing auth token")
	}
	return signed, nil
}

// VerifyToken parses a bearer token and returns the user id it names.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.Unauthorized("无效的登录凭证")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, errors.Unauthorized("无效的登录凭证")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Unauthorized("无效的登录凭证")
	}
	return id, nil
}
