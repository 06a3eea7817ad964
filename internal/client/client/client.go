package client

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

// Client is the set of backend operations the bookshelf client consumes.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Auth, error)
	GetMe(ctx context.Context) (*models.User, error)
	RemoveBook(ctx context.Context, bookID string) (*models.User, error)
	SaveBook(ctx context.Context, book models.BookInput) (*models.User, error)
	Close() error
}

// TokenSource yields the bearer token of the current session, if any.
type TokenSource interface {
	Token() (string, bool)
}
