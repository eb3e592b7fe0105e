package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/apiv1"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	json "github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// maxResponseBytes caps how much of a response body is decoded.
const maxResponseBytes = 4 << 20

// TokenSource yields the bearer token of the current session, or "" when
// nobody is signed in.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) AccessToken(ctx context.Context) (string, error) { return f(ctx) }

type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	tokens  TokenSource

	healthConn *grpc.ClientConn
	health     healthpb.HealthClient
}

// NewHTTPClient builds a client for the API at baseURL. healthAddr is the
// host:port of the gRPC health endpoint; an empty value disables Ping.
// timeout bounds every single request.
func NewHTTPClient(baseURL, healthAddr string, timeout time.Duration, tokens TokenSource) (*HTTPClient, error) {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
		tokens:  tokens,
	}

	if healthAddr != "" {
		conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("health client: %w", err)
		}
		c.healthConn = conn
		c.health = healthpb.NewHealthClient(conn)
	}

	return c, nil
}

func (c *HTTPClient) Close() error {
	if c.healthConn != nil {
		return c.healthConn.Close()
	}
	return nil
}

// Ping asks the gRPC health service whether the server is serving.
func (c *HTTPClient) Ping(ctx context.Context) error {
	if c.health == nil {
		return mapError(0, "", fmt.Errorf("health endpoint not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return mapError(0, "", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return mapError(http.StatusServiceUnavailable, resp.GetStatus().String(), nil)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	_, err := call[any](ctx, c, http.MethodPost, apiv1.RegisterPath,
		apiv1.CredentialsRequest{Username: username, Password: password}, false)
	return err
}

// Login returns the access token issued for the credentials.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := call[apiv1.LoginResponse](ctx, c, http.MethodPost, apiv1.LoginPath,
		apiv1.CredentialsRequest{Username: username, Password: password}, false)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// call performs one request and unwraps the envelope. Methods cannot carry
// type parameters, hence the free function.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any, protected bool) (T, error) {
	var zero T

	var token string
	if protected {
		tok, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return zero, err
		}
		if tok == "" {
			return zero, models.ErrNoSession
		}
		token = tok
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiv1.BasePath+path, reader)
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, mapError(0, "", err)
	}
	defer resp.Body.Close()

	var env apiv1.Envelope[T]
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		return zero, mapError(resp.StatusCode, "malformed response", err)
	}

	if !env.Success {
		status := env.Status
		if status == 0 {
			status = resp.StatusCode
		}
		return zero, mapError(status, env.Message, nil)
	}

	return env.Data, nil
}
