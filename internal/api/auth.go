package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/leilabk/shelfctl/internal/models"
	"github.com/leilabk/shelfctl/internal/shared"
)

const (
	authPath  = "/api/auth"
	usersPath = "/api/users"
)

// AuthService handles login and registration. Both endpoints are the only
// ones reachable without a token.
type AuthService struct {
	client *Client
}

// NewAuthService creates an AuthService over the given client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a session token and persists it. The server
// returns the token as the raw response body.
func (s *AuthService) Login(ctx context.Context, creds models.UserLogin) (string, error) {
	resp, err := s.client.do(ctx, http.MethodPost, authPath, creds)
	if err != nil {
		return "", err
	}

	token := strings.Trim(strings.TrimSpace(string(resp.body)), `"`)
	if token == "" {
		return "", fmt.Errorf("%w: server returned an empty token", shared.ErrAuthFailed)
	}

	if err := s.client.session.Login(token); err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// Register creates a new user account. The issued token arrives in the
// response's x-auth-token header and is persisted like a login.
func (s *AuthService) Register(ctx context.Context, user models.UserRegister) error {
	resp, err := s.client.do(ctx, http.MethodPost, usersPath, user)
	if err != nil {
		return err
	}

	token := resp.header.Get("x-auth-token")
	if token == "" {
		return fmt.Errorf("%w: response carried no x-auth-token header", shared.ErrAuthFailed)
	}

	if err := s.client.session.Login(token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	return nil
}
