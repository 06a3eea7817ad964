package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/controllers"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

type screen int

const (
	screenLogin screen = iota
	screenBooks
)

type (
	// HelpMsg shows the commands available on the current screen.
	HelpMsg struct{}
	// ShowBooksMsg opens the saved-books screen.
	ShowBooksMsg struct{}
	// LogoutMsg ends the session.
	LogoutMsg struct{}
	// LoggedOutMsg is the outcome of the logout task.
	LoggedOutMsg struct{ Err error }
	// SessionChangedMsg is posted by the credential store on login and logout.
	SessionChangedMsg struct{ LoggedIn bool }
	// BookmarksMsg lists the locally bookmarked book ids.
	BookmarksMsg struct{}
	// BookmarksLoadedMsg carries the bookmarked ids.
	BookmarksLoadedMsg struct {
		IDs []string
		Err error
	}
)

const (
	helpLoggedOut = "Available commands: login, dismiss, help, exit"
	helpLoggedIn  = "Available commands: books, refresh, remove <bookId>, save, bookmarks, logout, help, exit"
)

// Root is the top-level model. It owns both screens and routes messages to
// the active one.
type Root struct {
	auth      services.AuthService
	library   services.LibraryService
	validator *controllers.Validator
	logger    logging.Logger

	screen screen
	login  *controllers.LoginForm
	saved  *controllers.SavedBooks
	notice string
}

// NewRoot returns the shell model; Start picks the first screen.
func NewRoot(auth services.AuthService, library services.LibraryService, logger logging.Logger) *Root {
	v := controllers.NewValidator()
	return &Root{
		auth:      auth,
		library:   library,
		validator: v,
		logger:    logger,
		screen:    screenLogin,
		login:     controllers.NewLoginForm(auth, v, logger),
		saved:     controllers.NewSavedBooks(library, auth, v, logger),
	}
}

// Start returns the message that opens the right screen for the current session.
func (r *Root) Start() ui.Msg {
	if r.auth.LoggedIn() {
		return ShowBooksMsg{}
	}
	return nil
}

func (r *Root) openBooks() ui.Cmd {
	if r.screen == screenBooks {
		return nil
	}
	r.screen = screenBooks
	r.saved = controllers.NewSavedBooks(r.library, r.auth, r.validator, r.logger)
	return r.saved.Init()
}

func (r *Root) openLogin() {
	r.screen = screenLogin
	r.login = controllers.NewLoginForm(r.auth, r.validator, r.logger)
}

// Update routes msg to the shell or the active screen.
func (r *Root) Update(msg ui.Msg) ui.Cmd {
	switch m := msg.(type) {
	case HelpMsg:
		r.notice = helpLoggedOut
		if r.auth.LoggedIn() {
			r.notice = helpLoggedIn
		}
		return nil

	case ShowBooksMsg:
		r.notice = ""
		if !r.auth.LoggedIn() {
			r.notice = "Please log in first."
			return nil
		}
		if r.screen == screenBooks {
			return r.saved.Refresh()
		}
		return r.openBooks()

	case controllers.LoggedInMsg:
		r.notice = ""
		return r.openBooks()

	case SessionChangedMsg:
		if m.LoggedIn {
			return r.openBooks()
		}
		if r.screen != screenLogin {
			r.openLogin()
		}
		return nil

	case LogoutMsg:
		r.notice = ""
		return func(ctx context.Context) ui.Msg {
			return LoggedOutMsg{Err: r.auth.Logout(ctx)}
		}

	case LoggedOutMsg:
		if m.Err != nil {
			r.logger.Error(context.Background(), "logout failed", "error", m.Err)
			r.notice = fmt.Sprintf("Logout failed: %v", m.Err)
			return nil
		}
		if r.screen != screenLogin {
			r.openLogin()
		}
		r.notice = "Logged out."
		return nil

	case BookmarksMsg:
		r.notice = ""
		return func(ctx context.Context) ui.Msg {
			ids, err := r.library.SavedBookIDs(ctx)
			return BookmarksLoadedMsg{IDs: ids, Err: err}
		}

	case BookmarksLoadedMsg:
		switch {
		case m.Err != nil:
			r.notice = fmt.Sprintf("Could not read bookmarks: %v", m.Err)
		case len(m.IDs) == 0:
			r.notice = "No bookmarked books."
		default:
			r.notice = "Bookmarked: " + strings.Join(m.IDs, ", ")
		}
		return nil

	case controllers.InputMsg, controllers.SubmitMsg, controllers.DismissAlertMsg, controllers.LoginResultMsg:
		r.notice = ""
		return r.login.Update(msg)

	case controllers.RefreshMsg, controllers.DeleteBookMsg, controllers.SaveBookMsg:
		r.notice = ""
		if r.screen != screenBooks {
			r.notice = "Open your books first (type 'books')."
			return nil
		}
		return r.saved.Update(msg)

	case controllers.MeLoadedMsg, controllers.BookRemovedMsg, controllers.BookSavedMsg:
		return r.saved.Update(msg)
	}
	return nil
}

// Render writes the active screen to w.
func (r *Root) Render(w io.Writer) {
	switch r.screen {
	case screenLogin:
		r.login.Render(w)
	case screenBooks:
		r.saved.Render(w)
	}
	if r.notice != "" {
		fmt.Fprintln(w, r.notice)
	}
}
