package services

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	LoginRet *models.Auth
	LoginErr error
	MeRet    *models.User
	MeErr    error
	MeHook   func() // runs after the response is built, before it returns
	RemoveFn func(bookID string) (*models.User, error)
	SaveRet  *models.User
	SaveErr  error
	CloseErr error

	LoginCalls  [][2]string
	MeCalls     int
	RemoveCalls []string
	SaveCalls   []models.BookInput
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls = append(f.LoginCalls, [2]string{email, password})
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) GetMe(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.MeCalls++
	ret, err, hook := f.MeRet, f.MeErr, f.MeHook
	var u *models.User
	if ret != nil {
		c := ret.Clone()
		u = &c
	}
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return u, err
}

func (f *fakeClient) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	f.mu.Lock()
	f.RemoveCalls = append(f.RemoveCalls, bookID)
	fn := f.RemoveFn
	f.mu.Unlock()
	if fn == nil {
		return &models.User{ID: "u1"}, nil
	}
	return fn(bookID)
}

func (f *fakeClient) SaveBook(ctx context.Context, book models.BookInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls = append(f.SaveCalls, book)
	return f.SaveRet, f.SaveErr
}

func (f *fakeClient) Close() error { return f.CloseErr }

// ---- fake session ----

type fakeSession struct {
	mu       sync.Mutex
	loggedIn bool
	token    string
	LoginErr error

	LoginCalls  []string
	LogoutCalls int
}

func (f *fakeSession) Login(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls = append(f.LoginCalls, token)
	if f.LoginErr != nil {
		return f.LoginErr
	}
	f.loggedIn, f.token = true, token
	return nil
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	f.loggedIn, f.token = false, ""
	return nil
}

func (f *fakeSession) LoggedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loggedIn
}

func (f *fakeSession) Identity() (session.Identity, bool) {
	if !f.LoggedIn() {
		return session.Identity{}, false
	}
	return session.Identity{Username: "alice"}, true
}

// ---- fake bookmarks ----

type fakeBookmarks struct {
	mu  sync.Mutex
	ids map[string]bool
	Err error

	SaveCalls   []string
	RemoveCalls []string
}

func newFakeBookmarks(ids ...string) *fakeBookmarks {
	f := &fakeBookmarks{ids: map[string]bool{}}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *fakeBookmarks) SaveBookID(ctx context.Context, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls = append(f.SaveCalls, bookID)
	if f.Err != nil {
		return f.Err
	}
	f.ids[bookID] = true
	return nil
}

func (f *fakeBookmarks) RemoveBookID(ctx context.Context, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveCalls = append(f.RemoveCalls, bookID)
	if f.Err != nil {
		return f.Err
	}
	delete(f.ids, bookID)
	return nil
}

func (f *fakeBookmarks) SavedBookIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeBookmarks) Replace(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.ids = map[string]bool{}
	for _, id := range ids {
		f.ids[id] = true
	}
	return nil
}

func twoBooks() *models.User {
	return &models.User{
		ID: "u1", Username: "alice", Email: "a@b.com",
		SavedBooks: []models.SavedBook{
			{BookID: "B1", Title: "Dune", Authors: []string{"Frank Herbert"}},
			{BookID: "B2", Title: "Emma", Authors: []string{"Jane Austen"}},
		},
	}
}
