// Package session is the client's credential store. It holds the bearer token
// returned by the login mutation, decodes it (without verifying the
// signature, which is the server's job) to learn who is logged in and until
// when, and persists it so a restarted client stays logged in.
//
// A Store is passed explicitly to the services and controllers that need it;
// there is no package-level state. Load restores the token at startup and
// Logout is the teardown.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload the backend signs into its tokens.
type Claims struct {
	Data struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"data"`
	jwt.RegisteredClaims
}

// Identity is what the client knows about the logged-in user from the token.
type Identity struct {
	ID        string
	Username  string
	Email     string
	ExpiresAt time.Time // zero when the token carries no exp claim
}

func (i Identity) expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Decode parses token without checking its signature.
func Decode(token string) (Identity, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{
		ID:       claims.Data.ID,
		Username: claims.Data.Username,
		Email:    claims.Data.Email,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Store holds the current credentials.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity Identity

	repo      metadata.Repository
	logger    logging.Logger
	now       func() time.Time
	listeners []func(loggedIn bool)
}

type Option func(*Store)

// WithClock overrides time.Now, for expiry checks in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRepository persists the token in repo.
func WithRepository(repo metadata.Repository) Option {
	return func(s *Store) { s.repo = repo }
}

// NewStore returns an empty store. Without WithRepository nothing is persisted.
func NewStore(logger logging.Logger, opts ...Option) *Store {
	s := &Store{logger: logger.With("module", "session"), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers fn to be called after every login and logout. The
// controllers use it to navigate between screens.
func (s *Store) OnChange(fn func(loggedIn bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load restores a persisted token. An expired or undecodable token is
// discarded; Load only fails when the repository does.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	raw, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	token := string(raw)
	id, err := Decode(token)
	if err != nil || id.expired(s.now()) {
		s.logger.Info(ctx, "discarding stored token", "reason", reason(err))
		return s.repo.Delete(ctx, common.TokenMetadataKey)
	}

	s.set(token, id)
	s.logger.Info(ctx, "session restored", "username", id.Username)
	return nil
}

func reason(err error) string {
	if err != nil {
		return err.Error()
	}
	return ErrTokenExpired.Error()
}

// Login stores token as the current credentials and notifies listeners.
func (s *Store) Login(ctx context.Context, token string) error {
	id, err := Decode(token)
	if err != nil {
		return err
	}
	if id.expired(s.now()) {
		return ErrTokenExpired
	}

	if s.repo != nil {
		if err := s.repo.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
	}

	s.set(token, id)
	s.logger.Info(ctx, "logged in", "username", id.Username)
	s.notify(true)
	return nil
}

// Logout clears the credentials in memory and wipes every metadata record
// the previous user left on disk.
func (s *Store) Logout(ctx context.Context) error {
	s.set("", Identity{})

	if s.repo != nil {
		if err := s.repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear metadata: %w", err)
		}
	}
	s.logger.Info(ctx, "logged out")
	s.notify(false)
	return nil
}

// LoggedIn reports whether a token is held and has not expired. A token found
// expired here is dropped from memory; the persisted copy goes on next Load.
func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return false
	}
	if s.identity.expired(s.now()) {
		s.token, s.identity = "", Identity{}
		return false
	}
	return true
}

// Token returns the bearer token, or ok=false when not logged in.
func (s *Store) Token() (string, bool) {
	if !s.LoggedIn() {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, true
}

// Identity returns the decoded identity of the logged-in user.
func (s *Store) Identity() (Identity, bool) {
	if !s.LoggedIn() {
		return Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, true
}

func (s *Store) set(token string, id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.identity = token, id
}

func (s *Store) notify(loggedIn bool) {
	s.mu.RLock()
	ls := append([]func(bool){}, s.listeners...)
	s.mu.RUnlock()

	for _, fn := range ls {
		fn(loggedIn)
	}
}
