// Package mailbox wraps the Gmail API behind the simple synchronous
// contracts the triage core consumes: list unread, fetch attachments, send,
// mark read. No retry discipline lives here; backoff policy belongs to the
// generator gateway alone.
package mailbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Jainil-Desai/Email-AI-Agent-App/internal/database/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

var (
	// ErrNotAuthenticated indicates no cached mailbox token exists
	ErrNotAuthenticated = errors.New("not authenticated with mailbox")
	// ErrNoCredentials indicates the OAuth client credentials file is missing
	ErrNoCredentials = errors.New("mailbox credentials not configured")
)

// Scopes requested for the mailbox session
var Scopes = []string{gmail.GmailModifyScope}

// AuthStatus is the outcome of an authentication check
type AuthStatus string

const (
	// StatusAuthenticated indicates a usable mailbox session exists
	StatusAuthenticated AuthStatus = "authenticated"
	// StatusNeedsConsent indicates the user must visit the authorization URL
	StatusNeedsConsent AuthStatus = "needs_consent"
)

// AuthState is the typed authentication result: callers branch on Status
// instead of parsing error text. AuthURL is set only for StatusNeedsConsent.
type AuthState struct {
	Status  AuthStatus `json:"status"`
	AuthURL string     `json:"auth_url,omitempty"`
}

// TokenStore persists the single mailbox session token in sqlite
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a new TokenStore instance
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Load returns the cached token, or ErrNotAuthenticated when none exists
func (s *TokenStore) Load() (*oauth2.Token, error) {
	var row models.MailboxToken
	if err := s.db.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	return &oauth2.Token{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		TokenType:    row.TokenType,
		Expiry:       row.Expiry,
	}, nil
}

// Save writes the token back, replacing any previous session
func (s *TokenStore) Save(token *oauth2.Token) error {
	row := models.MailboxToken{
		ID:           1,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
		UpdatedAt:    time.Now(),
	}
	return s.db.Save(&row).Error
}

// Authenticator manages the OAuth consent flow and session construction
type Authenticator struct {
	credentialsPath string
	store           *TokenStore
}

// NewAuthenticator creates a new Authenticator instance
func NewAuthenticator(credentialsPath string, store *TokenStore) *Authenticator {
	return &Authenticator{credentialsPath: credentialsPath, store: store}
}

// oauthConfig loads the OAuth client config from the credentials file
func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(a.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return config, nil
}

// Authenticate checks for a usable session. With a cached token it returns
// StatusAuthenticated; otherwise StatusNeedsConsent with the authorization
// URL the user must visit.
func (a *Authenticator) Authenticate(ctx context.Context) (AuthState, error) {
	config, err := a.oauthConfig()
	if err != nil {
		return AuthState{}, err
	}

	if _, err := a.store.Load(); err == nil {
		return AuthState{Status: StatusAuthenticated}, nil
	} else if !errors.Is(err, ErrNotAuthenticated) {
		return AuthState{}, err
	}

	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return AuthState{Status: StatusNeedsConsent, AuthURL: url}, nil
}

// CompleteAuth exchanges an authorization code for a token and caches it
func (a *Authenticator) CompleteAuth(ctx context.Context, code string) error {
	config, err := a.oauthConfig()
	if err != nil {
		return err
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return a.store.Save(token)
}

// Service builds an authenticated Gmail service from the cached token.
// Refreshed tokens are written back to the store.
func (a *Authenticator) Service(ctx context.Context) (*gmail.Service, error) {
	config, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	token, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	ts := config.TokenSource(ctx, token)
	fresh, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if fresh.AccessToken != token.AccessToken {
		if err := a.store.Save(fresh); err != nil {
			return nil, fmt.Errorf("save refreshed token: %w", err)
		}
	}

	return gmail.NewService(ctx, option.WithTokenSource(ts))
}
