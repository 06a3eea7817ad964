// Package metadata persists small key/value records of the client, such as
// the credential store's token, in the local SQLite database.
package metadata

import (
	"context"
)

// Repository is a key/value store. Get returns common.ErrorNotFound when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every record; logout uses it.
	Clear(ctx context.Context) error
}
