// Package session keeps the admin token between visits.
package session

import (
	"context"
	"errors"
	"sync"

	"dstclan/pkg/client"
)

// StorageKey fixed key the token is stored under
const StorageKey = "admin_token"

// GenericLoginError shown when the server gave no usable message
const GenericLoginError = "login failed, please try again"

// TokenStore persists the admin token. Load returns "" when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Authenticator exchanges credentials for a token
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginError a rejected login, carrying the message to show
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// Gate decides whether the admin console is reachable. There is no expiry:
// holding a token is being authenticated.
type Gate struct {
	mu    sync.RWMutex
	store TokenStore
	auth  Authenticator
	token string
}

// NewGate restores the stored token, so a new process keeps the session
func NewGate(store TokenStore, auth Authenticator) (*Gate, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Gate{store: store, auth: auth, token: token}, nil
}

// IsAuthenticated reports whether a token is held
func (g *Gate) IsAuthenticated() bool {
	return g.Token() != ""
}

// Token returns the held token, "" when logged out
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Login authenticates and stores the token. Failures come back as *LoginError
// with the server's message, or a generic one for transport failures.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	token, err := g.auth.Login(ctx, username, password)
	if err != nil {
		msg := GenericLoginError
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return &LoginError{Message: msg, Err: err}
	}
	if token == "" {
		return &LoginError{Message: GenericLoginError, Err: errors.New("empty token")}
	}

	if err := g.store.Save(token); err != nil {
		return err
	}
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	return nil
}

// Logout forgets the token locally; the server is not told
func (g *Gate) Logout() error {
	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()
	return g.store.Clear()
}
