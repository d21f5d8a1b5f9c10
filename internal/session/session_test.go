package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leilabk/shelfctl/internal/models"
)

// tokenFor builds an unsigned token whose payload segment encodes user.
func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestDecodeToken(t *testing.T) {
	t.Run("Valid Token", func(t *testing.T) {
		want := models.User{ID: "u1", Name: "Leila", Username: "leila", IsAdmin: true}
		user, err := DecodeToken(tokenFor(t, want))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user != want {
			t.Errorf("expected %+v, got %+v", want, user)
		}
	})

	t.Run("Too Few Segments", func(t *testing.T) {
		if _, err := DecodeToken("justonesegment"); err == nil {
			t.Error("expected error for single-segment token")
		}
	})

	t.Run("Bad Base64", func(t *testing.T) {
		if _, err := DecodeToken("a.!!!.c"); err == nil {
			t.Error("expected error for invalid base64 payload")
		}
	})

	t.Run("Bad JSON", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
		if _, err := DecodeToken("a." + payload + ".c"); err == nil {
			t.Error("expected error for non-JSON payload")
		}
	})
}

func TestSession(t *testing.T) {
	t.Run("No Token", func(t *testing.T) {
		s := New(NewMemStore(""))
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no current user without a token")
		}
	})

	t.Run("Login And Logout", func(t *testing.T) {
		s := New(NewMemStore(""))
		token := tokenFor(t, models.User{ID: "u1", Username: "leila"})

		if err := s.Login(token); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		user, ok := s.CurrentUser()
		if !ok || user.Username != "leila" {
			t.Errorf("expected logged-in user leila, got %+v ok=%v", user, ok)
		}
		if s.Token() != token {
			t.Errorf("expected raw token to round-trip")
		}

		if err := s.Logout(); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if _, ok := s.CurrentUser(); ok {
			t.Error("expected no current user after logout")
		}
	})

	t.Run("Corrupt Token Cleared Silently", func(t *testing.T) {
		store := NewMemStore("garbage-token")
		s := New(store)

		if _, ok := s.CurrentUser(); ok {
			t.Error("expected corrupt token to yield no user")
		}
		if store.Token() != "" {
			t.Error("expected corrupt token to be cleared from the store")
		}
	})
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	if store.Token() != "" {
		t.Error("expected empty token before save")
	}

	if err := store.Save("abc.def.ghi"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := store.Token(); got != "abc.def.ghi" {
		t.Errorf("expected saved token, got %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected token file mode 0600, got %v", info.Mode().Perm())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected empty token after clear")
	}

	// Clearing an already-missing token is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("expected idempotent clear, got %v", err)
	}
}
