package bookmarks

import "context"

// Repository is a set of saved book ids. All operations are idempotent.
type Repository interface {
	SaveBookID(ctx context.Context, bookID string) error
	RemoveBookID(ctx context.Context, bookID string) error
	// SavedBookIDs returns the ids in ascending order.
	SavedBookIDs(ctx context.Context) ([]string, error)
	// Replace swaps the whole set for ids.
	Replace(ctx context.Context, ids []string) error
}
