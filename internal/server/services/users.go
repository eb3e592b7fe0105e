package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/server/auth"
	"github.com/dmitrijs2005/finkeeper/internal/server/config"
	"github.com/dmitrijs2005/finkeeper/internal/server/models"
	"github.com/dmitrijs2005/finkeeper/internal/server/repositories/repomanager"
)

// Token is an issued bearer token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserService provides authentication-related operations:
// - Register: create users with an argon2id password hash
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer token to a user id
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. A taken user name yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrorBadRequest)
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		UserName:     username,
		Salt:         salt,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("user %q: %w", username, err)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and returns a fresh access token. Unknown
// users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, expires, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Token{AccessToken: token, ExpiresAt: expires}, nil
}

// Authenticate returns the user id carried by a valid access token.
func (s *UserService) Authenticate(_ context.Context, token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
