package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/cache"
	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// MeKey is the cache key of the current user's query root.
const MeKey = "me"

// LibraryService reads and mutates the logged-in user's saved books and keeps
// the normalized cache and the bookmark cache in step with the server.
type LibraryService interface {
	// Me fetches the current user and their saved books and caches the result.
	// Books removed while the query was in flight are filtered out of it.
	Me(ctx context.Context) (*models.User, error)
	// RemoveBook removes bookID remotely, then from the cached user and the
	// bookmark cache. The returned user is the cached one after the update,
	// or nil when nothing was cached.
	RemoveBook(ctx context.Context, bookID string) (*models.User, error)
	// SaveBook adds book remotely and caches the returned user.
	SaveBook(ctx context.Context, book models.BookInput) (*models.User, error)
	// SavedBookIDs lists the bookmark cache.
	SavedBookIDs(ctx context.Context) ([]string, error)
}

type libraryService struct {
	client    client.Client
	session   Session
	users     *cache.Store[models.User]
	bookmarks bookmarks.Repository
	logger    logging.Logger

	// removals made while at least one Me query is in flight, by sequence
	mu       sync.Mutex
	seq      uint64
	inflight int
	removed  map[string]uint64
}

// NewLibraryService returns a LibraryService sharing users with the auth service.
func NewLibraryService(c client.Client, s Session, users *cache.Store[models.User], bm bookmarks.Repository, logger logging.Logger) LibraryService {
	return &libraryService{
		client:    c,
		session:   s,
		users:     users,
		bookmarks: bm,
		logger:    logger.With("module", "library"),
		removed:   make(map[string]uint64),
	}
}

// beginQuery marks a Me query as in flight and returns its start sequence.
func (l *libraryService) beginQuery() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight++
	return l.seq
}

// endQuery returns the ids removed after start and forgets the removal log
// once no query is left in flight.
func (l *libraryService) endQuery(start uint64) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ids []string
	for id, at := range l.removed {
		if at > start {
			ids = append(ids, id)
		}
	}
	l.inflight--
	if l.inflight == 0 {
		clear(l.removed)
	}
	return ids
}

func (l *libraryService) recordRemoval(bookID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if l.inflight > 0 {
		l.removed[bookID] = l.seq
	}
}

func (l *libraryService) forgetRemoval(bookID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.removed, bookID)
}

func (l *libraryService) Me(ctx context.Context) (*models.User, error) {
	if !l.session.LoggedIn() {
		return nil, session.ErrNotLoggedIn
	}

	start := l.beginQuery()
	me, err := l.client.GetMe(ctx)
	stale := l.endQuery(start)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			l.users.Evict(MeKey)
		}
		return nil, fmt.Errorf("get me error: %w", err)
	}

	// the server may have answered before it applied a removal that has
	// since completed
	for _, id := range stale {
		*me = me.WithoutBook(id)
	}
	l.users.Write(MeKey, me.Clone())

	ids := make([]string, 0, len(me.SavedBooks))
	for _, b := range me.SavedBooks {
		ids = append(ids, b.BookID)
	}
	if err := l.bookmarks.Replace(ctx, ids); err != nil {
		l.logger.Warn(ctx, "bookmark cache not synced", "error", err)
	}
	return me, nil
}

func (l *libraryService) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	if !l.session.LoggedIn() {
		return nil, session.ErrNotLoggedIn
	}

	if _, err := l.client.RemoveBook(ctx, bookID); err != nil {
		return nil, fmt.Errorf("remove book error: %w", err)
	}
	l.recordRemoval(bookID)

	// The filter runs on whatever is cached now, not on what was cached when
	// the mutation was sent.
	updated, ok := l.users.Update(MeKey, func(cur models.User, ok bool) (models.User, bool) {
		if !ok {
			return cur, false
		}
		return cur.WithoutBook(bookID), true
	})

	if err := l.bookmarks.RemoveBookID(ctx, bookID); err != nil {
		l.logger.Warn(ctx, "bookmark cache out of sync", "book_id", bookID, "error", err)
	}
	l.logger.Info(ctx, "book removed", "book_id", bookID)

	// the mutation payload carries ids only, not something to render
	if !ok {
		return nil, nil
	}
	u := updated.Clone()
	return &u, nil
}

func (l *libraryService) SaveBook(ctx context.Context, book models.BookInput) (*models.User, error) {
	if !l.session.LoggedIn() {
		return nil, session.ErrNotLoggedIn
	}

	u, err := l.client.SaveBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("save book error: %w", err)
	}
	l.forgetRemoval(book.BookID)
	l.users.Write(MeKey, u.Clone())

	if err := l.bookmarks.SaveBookID(ctx, book.BookID); err != nil {
		l.logger.Warn(ctx, "bookmark cache out of sync", "book_id", book.BookID, "error", err)
	}
	l.logger.Info(ctx, "book saved", "book_id", book.BookID)
	return u, nil
}

func (l *libraryService) SavedBookIDs(ctx context.Context) ([]string, error) {
	ids, err := l.bookmarks.SavedBookIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("saved book ids error: %w", err)
	}
	return ids, nil
}
