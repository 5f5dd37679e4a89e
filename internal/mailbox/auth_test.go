package mailbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database"
	"golang.org/x/oauth2"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func testStore(t *testing.T) *TokenStore {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	return NewTokenStore(db)
}

func TestTokenStoreEmpty(t *testing.T) {
	store := testStore(t)

	_, err := store.Load()
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := testStore(t)

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if err := store.Save(token); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.AccessToken != "access" || loaded.RefreshToken != "refresh" {
		t.Errorf("unexpected token: %+v", loaded)
	}
}

func TestTokenStoreOverwrites(t *testing.T) {
	store := testStore(t)

	first := &oauth2.Token{AccessToken: "old", TokenType: "Bearer"}
	second := &oauth2.Token{AccessToken: "new", TokenType: "Bearer"}
	if err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.AccessToken != "new" {
		t.Errorf("token not overwritten: %+v", loaded)
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	a := NewAuthenticator(filepath.Join(t.TempDir(), "missing.json"), testStore(t))

	_, err := a.Authenticate(context.Background())
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestAuthenticateNeedsConsent(t *testing.T) {
	credentials := `{
		"installed": {
			"client_id": "test-client.apps.googleusercontent.com",
			"client_secret": "shhh",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"redirect_uris": ["http://localhost"]
		}
	}`
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := writeTestFile(path, credentials); err != nil {
		t.Fatalf("failed to write credentials: %v", err)
	}

	a := NewAuthenticator(path, testStore(t))

	state, err := a.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if state.Status != StatusNeedsConsent {
		t.Errorf("expected needs_consent, got %q", state.Status)
	}
	if !strings.Contains(state.AuthURL, "test-client.apps.googleusercontent.com") {
		t.Errorf("authorization URL missing client id: %q", state.AuthURL)
	}
	if !strings.Contains(state.AuthURL, "access_type=offline") {
		t.Errorf("authorization URL missing offline access: %q", state.AuthURL)
	}
}

func TestAuthenticateWithCachedToken(t *testing.T) {
	credentials := `{
		"installed": {
			"client_id": "test-client.apps.googleusercontent.com",
			"client_secret": "shhh",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"redirect_uris": ["http://localhost"]
		}
	}`
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := writeTestFile(path, credentials); err != nil {
		t.Fatalf("failed to write credentials: %v", err)
	}

	store := testStore(t)
	if err := store.Save(&oauth2.Token{AccessToken: "cached", TokenType: "Bearer"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	a := NewAuthenticator(path, store)
	state, err := a.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if state.Status != StatusAuthenticated {
		t.Errorf("expected authenticated, got %q", state.Status)
	}
	if state.AuthURL != "" {
		t.Errorf("unexpected auth URL: %q", state.AuthURL)
	}
}
