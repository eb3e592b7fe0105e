package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
)

// Metadata keys of the stored session.
const (
	MetaAccessToken = "access_token"
	MetaUsername    = "username"
)

// AuthClient is the subset of the API client the auth service needs.
type AuthClient interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: authenticate and persist the bearer token locally.
//   - Logout: forget the stored session; queued sync work is kept.
//   - AccessToken: the stored token, or "" when signed out.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	AccessToken(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client AuthClient
	db     *dbx.Handle
}

// NewAuthService constructs an AuthService bound to the given API client and
// local database.
func NewAuthService(client AuthClient, db *dbx.Handle) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		return fmt.Errorf("username and password are required: %w", common.ErrorBadRequest)
	}
	return a.client.Register(ctx, username, string(password))
}

// Login authenticates against the server and stores the issued token and the
// user name in one transaction.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if token == "" {
		return fmt.Errorf("login error: empty token: %w", common.ErrInvalidToken)
	}

	return a.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Put(ctx, map[string]string{
			MetaUsername:    username,
			MetaAccessToken: token,
		})
	})
}

func (a *authService) Logout(ctx context.Context) error {
	return a.db.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, MetaAccessToken, MetaUsername)
	})
}

func (a *authService) AccessToken(ctx context.Context) (string, error) {
	return a.get(ctx, MetaAccessToken)
}

func (a *authService) Username(ctx context.Context) (string, error) {
	return a.get(ctx, MetaUsername)
}

func (a *authService) get(ctx context.Context, key string) (string, error) {
	return metadata.NewSQLiteRepository(a.db.Reader()).Get(ctx, key)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
