package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/client/cache"
	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// Session is the part of the credential store the services depend on.
type Session interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	LoggedIn() bool
	Identity() (session.Identity, bool)
}

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: send one login mutation and hand the returned token to the session.
//   - Logout: drop the session and everything cached for the user.
//   - LoggedIn / Identity: report the current session.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	Identity() (session.Identity, bool)
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
	users   *cache.Store[models.User]
	logger  logging.Logger
}

// NewAuthService constructs an AuthService. users is the cache shared with
// LibraryService; it is reset on logout.
func NewAuthService(c client.Client, s Session, users *cache.Store[models.User], logger logging.Logger) AuthService {
	return &authService{client: c, session: s, users: users, logger: logger.With("module", "auth")}
}

// Login authenticates against the backend and stores the returned token.
// The credentials are sent exactly as given.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	auth, err := a.client.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Login(ctx, auth.Token); err != nil {
		return nil, fmt.Errorf("session error: %w", err)
	}
	return &auth.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.users.Reset()
	return a.session.Logout(ctx)
}

func (a *authService) LoggedIn() bool { return a.session.LoggedIn() }

func (a *authService) Identity() (session.Identity, bool) { return a.session.Identity() }

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
