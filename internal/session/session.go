// package session holds the persisted auth token and the user decoded from it
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leilabk/shelfctl/internal/models"
)

// Store persists the opaque session token under a single slot. Implementations
// must treat a missing token as the empty string, not an error.
type Store interface {
	Token() string
	Save(token string) error
	Clear() error
}

// FileStore persists the token in a file, standing in for the browser's
// localStorage slot.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	token string
}

func NewMemStore(token string) *MemStore { return &MemStore{token: token} }

func (s *MemStore) Token() string           { return s.token }
func (s *MemStore) Save(token string) error { s.token = token; return nil }
func (s *MemStore) Clear() error            { s.token = ""; return nil }

// DecodeToken decodes the payload segment of a self-contained token into a
// [models.User] without verifying the signature. The client never holds the
// signing key; the server re-validates the token on every request.
func DecodeToken(token string) (models.User, error) {
	var user models.User

	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return user, fmt.Errorf("malformed token: expected at least 2 segments, got %d", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return user, fmt.Errorf("failed to decode token payload: %w", err)
	}

	if err := json.Unmarshal(payload, &user); err != nil {
		return user, fmt.Errorf("failed to parse token payload: %w", err)
	}

	return user, nil
}

// Session exposes the current user derived from the stored token. It is an
// explicit value handed to the API client and the UI, so tests can substitute
// a [MemStore] without touching the filesystem.
type Session struct {
	store Store
}

// New creates a Session backed by the given store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the raw stored token, or the empty string when logged out.
func (s *Session) Token() string {
	return s.store.Token()
}

// Login persists a freshly issued token.
func (s *Session) Login(token string) error {
	return s.store.Save(token)
}

// Logout discards the stored token.
func (s *Session) Logout() error {
	return s.store.Clear()
}

// CurrentUser returns the user decoded from the stored token. A missing token
// yields ok=false; a corrupt token is treated the same way and is cleared so
// subsequent requests go out unauthenticated rather than repeatedly failing.
func (s *Session) CurrentUser() (models.User, bool) {
	token := s.store.Token()
	if token == "" {
		return models.User{}, false
	}

	user, err := DecodeToken(token)
	if err != nil {
		s.store.Clear()
		return models.User{}, false
	}

	return user, true
}
