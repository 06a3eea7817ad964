package controllers

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/cache"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// ---- fake gateway ----

type fakeGateway struct {
	mu sync.Mutex

	LoginRet  *models.Auth
	LoginErr  error
	MeRet     *models.User
	MeErr     error
	RemoveErr error
	SaveRet   *models.User
	SaveErr   error

	LoginCalls  []map[string]string
	MeCalls     int
	RemoveCalls []string
	SaveCalls   []models.BookInput
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls = append(f.LoginCalls, map[string]string{"email": email, "password": password})
	return f.LoginRet, f.LoginErr
}

func (f *fakeGateway) GetMe(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MeCalls++
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	u := f.MeRet.Clone()
	return &u, nil
}

func (f *fakeGateway) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveCalls = append(f.RemoveCalls, bookID)
	if f.RemoveErr != nil {
		return nil, f.RemoveErr
	}
	return &models.User{ID: "u1"}, nil
}

func (f *fakeGateway) SaveBook(ctx context.Context, book models.BookInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls = append(f.SaveCalls, book)
	return f.SaveRet, f.SaveErr
}

func (f *fakeGateway) Close() error { return nil }

func (f *fakeGateway) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.LoginCalls) + f.MeCalls + len(f.RemoveCalls) + len(f.SaveCalls)
}

// ---- fake credential store ----

type fakeSession struct {
	loggedIn   bool
	LoginCalls []string
}

func (f *fakeSession) Login(ctx context.Context, token string) error {
	f.LoginCalls = append(f.LoginCalls, token)
	f.loggedIn = true
	return nil
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.loggedIn = false
	return nil
}

func (f *fakeSession) LoggedIn() bool { return f.loggedIn }

func (f *fakeSession) Identity() (session.Identity, bool) {
	return session.Identity{}, f.loggedIn
}

// ---- fake bookmark cache ----

type fakeBookmarks struct {
	mu          sync.Mutex
	ids         []string
	RemoveCalls []string
	SaveCalls   []string
}

func (f *fakeBookmarks) SaveBookID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls = append(f.SaveCalls, id)
	return nil
}

func (f *fakeBookmarks) RemoveBookID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveCalls = append(f.RemoveCalls, id)
	return nil
}

func (f *fakeBookmarks) SavedBookIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...), nil
}

func (f *fakeBookmarks) Replace(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append([]string(nil), ids...)
	return nil
}

// ---- wiring ----

type fixture struct {
	gateway   *fakeGateway
	session   *fakeSession
	bookmarks *fakeBookmarks
	users     *cache.Store[models.User]
	auth      services.AuthService
	library   services.LibraryService
}

func newFixture(loggedIn bool) *fixture {
	f := &fixture{
		gateway:   &fakeGateway{},
		session:   &fakeSession{loggedIn: loggedIn},
		bookmarks: &fakeBookmarks{},
		users:     cache.New[models.User](),
	}
	f.auth = services.NewAuthService(f.gateway, f.session, f.users, logging.Discard())
	f.library = services.NewLibraryService(f.gateway, f.session, f.users, f.bookmarks, logging.Discard())
	return f
}

func book(id, title string, authors ...string) models.SavedBook {
	return models.SavedBook{BookID: id, Title: title, Authors: authors, Link: "https://books.example/" + id}
}

func userWith(books ...models.SavedBook) *models.User {
	return &models.User{ID: "u1", Username: "alice", Email: "a@b.com", SavedBooks: books}
}
