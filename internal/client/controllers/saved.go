package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// ViewState is the lifecycle of the saved-books view.
type ViewState int

const (
	StateIdle ViewState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("ViewState(%d)", int(s))
}

type (
	// RefreshMsg re-runs the saved books query.
	RefreshMsg struct{}
	// DeleteBookMsg asks to remove a book from the collection.
	DeleteBookMsg struct{ BookID string }
	// SaveBookMsg asks to add a book to the collection.
	SaveBookMsg struct{ Book models.BookInput }

	// MeLoadedMsg is the outcome of the saved books query.
	MeLoadedMsg struct {
		User *models.User
		Err  error
	}
	// BookRemovedMsg is the outcome of a removal. User is the cached
	// collection after the removal was applied.
	BookRemovedMsg struct {
		BookID string
		User   *models.User
		Err    error
	}
	// BookSavedMsg is the outcome of a save.
	BookSavedMsg struct {
		BookID string
		User   *models.User
		Err    error
	}
)

// ErrLoginRequired is reported when an action needs a session.
var ErrLoginRequired = errors.New("you must be logged in")

// LoggedInChecker reports whether a session is active.
type LoggedInChecker interface {
	LoggedIn() bool
}

// SavedBooks is the saved-collection view controller.
type SavedBooks struct {
	library  services.LibraryService
	session  LoggedInChecker
	validate *Validator
	logger   logging.Logger

	state     ViewState
	user      models.User
	loadErr   error
	actionErr string
	notice    string
	pending   map[string]bool
	// removals that completed while a load was in flight
	removedWhileLoading map[string]bool
}

// NewSavedBooks returns the view in the idle state; Init starts the first load.
func NewSavedBooks(library services.LibraryService, session LoggedInChecker, v *Validator, logger logging.Logger) *SavedBooks {
	return &SavedBooks{
		library:  library,
		session:  session,
		validate: v,
		logger:   logger.With("module", "saved_books"),
		pending:  make(map[string]bool),

		removedWhileLoading: make(map[string]bool),
	}
}

// Init starts loading the current user's saved books.
func (s *SavedBooks) Init() ui.Cmd {
	s.state = StateLoading
	s.loadErr = nil
	return func(ctx context.Context) ui.Msg {
		u, err := s.library.Me(ctx)
		return MeLoadedMsg{User: u, Err: err}
	}
}

// Refresh re-issues the query; it is the retry control of the failed state.
func (s *SavedBooks) Refresh() ui.Cmd {
	s.actionErr, s.notice = "", ""
	return s.Init()
}

// HandleDeleteBook returns false and no task when nobody is logged in.
// Otherwise it returns the removal task.
func (s *SavedBooks) HandleDeleteBook(bookID string) (bool, ui.Cmd) {
	if !s.session.LoggedIn() {
		return false, nil
	}

	s.pending[bookID] = true
	return true, func(ctx context.Context) ui.Msg {
		u, err := s.library.RemoveBook(ctx, bookID)
		return BookRemovedMsg{BookID: bookID, User: u, Err: err}
	}
}

// HandleSaveBook validates book and returns the save task. It returns false
// when the input is invalid or nobody is logged in.
func (s *SavedBooks) HandleSaveBook(book models.BookInput) (bool, ui.Cmd) {
	if errs := s.validate.Struct(book); errs != nil {
		s.actionErr = "Could not save book: " + joinErrors(errs)
		return false, nil
	}
	if s.user.HasBook(book.BookID) {
		s.actionErr = fmt.Sprintf("Book %s is already saved.", book.BookID)
		return false, nil
	}
	if !s.session.LoggedIn() {
		return false, nil
	}

	return true, func(ctx context.Context) ui.Msg {
		u, err := s.library.SaveBook(ctx, book)
		return BookSavedMsg{BookID: book.BookID, User: u, Err: err}
	}
}

// State returns the current lifecycle state.
func (s *SavedBooks) State() ViewState { return s.state }

// Books returns the rendered collection.
func (s *SavedBooks) Books() []models.SavedBook {
	return s.user.Clone().SavedBooks
}

// Err returns the error of the last failed load.
func (s *SavedBooks) Err() error { return s.loadErr }

// ActionError returns the error line of the last failed removal or save.
func (s *SavedBooks) ActionError() string { return s.actionErr }

// Update applies msg to the view and returns the follow-up task, if any.
func (s *SavedBooks) Update(msg ui.Msg) ui.Cmd {
	ctx := context.Background()

	switch m := msg.(type) {
	case RefreshMsg:
		return s.Refresh()

	case DeleteBookMsg:
		s.actionErr, s.notice = "", ""
		ok, cmd := s.HandleDeleteBook(m.BookID)
		if !ok {
			s.actionErr = fmt.Sprintf("Could not remove book %s: %v", m.BookID, ErrLoginRequired)
		}
		return cmd

	case SaveBookMsg:
		s.actionErr, s.notice = "", ""
		ok, cmd := s.HandleSaveBook(m.Book)
		if !ok && s.actionErr == "" {
			s.actionErr = fmt.Sprintf("Could not save book %s: %v", m.Book.BookID, ErrLoginRequired)
		}
		return cmd

	case MeLoadedMsg:
		removed := s.removedWhileLoading
		s.removedWhileLoading = make(map[string]bool)
		if m.Err != nil {
			s.logger.Error(ctx, "loading saved books failed", "error", m.Err)
			s.state = StateFailed
			s.loadErr = m.Err
			return nil
		}
		s.state = StateLoaded
		s.user = models.User{}
		if m.User != nil {
			s.user = m.User.Clone()
		}
		// the query may have been answered before those removals were applied
		for id := range removed {
			s.user = s.user.WithoutBook(id)
		}

	case BookRemovedMsg:
		delete(s.pending, m.BookID)
		if m.Err != nil {
			s.logger.Error(ctx, "removing book failed", "book_id", m.BookID, "error", m.Err)
			s.actionErr = fmt.Sprintf("Could not remove book %s: %v", m.BookID, m.Err)
			return nil
		}
		if s.state == StateLoading {
			s.removedWhileLoading[m.BookID] = true
		}
		s.adopt(m.User)
		s.notice = fmt.Sprintf("Removed book %s.", m.BookID)

	case BookSavedMsg:
		if m.Err != nil {
			s.logger.Error(ctx, "saving book failed", "book_id", m.BookID, "error", m.Err)
			s.actionErr = fmt.Sprintf("Could not save book %s: %v", m.BookID, m.Err)
			return nil
		}
		delete(s.removedWhileLoading, m.BookID)
		s.adopt(m.User)
		s.notice = fmt.Sprintf("Saved book %s.", m.BookID)
	}
	return nil
}

// adopt shows u unless a load is in flight, which will bring its own result.
// A nil u means the service had no collection to reconcile, so a failed view
// stays failed.
func (s *SavedBooks) adopt(u *models.User) {
	if u == nil || s.state == StateLoading {
		return
	}
	s.user = u.Clone()
	s.state = StateLoaded
	s.loadErr = nil
}

// CountLabel is the heading above the collection.
func CountLabel(n int) string {
	if n == 0 {
		return "You have no saved books!"
	}
	return fmt.Sprintf("Viewing %d saved %s:", n, common.Plural(n, "book", "books"))
}

// Render writes the current screen to w.
func (s *SavedBooks) Render(w io.Writer) {
	switch s.state {
	case StateIdle:
		return
	case StateLoading:
		fmt.Fprintln(w, "LOADING...")
		return
	}

	fmt.Fprintln(w, "== Viewing saved books! ==")

	if s.state == StateFailed {
		fmt.Fprintf(w, "Could not load your saved books: %v\n", s.loadErr)
		fmt.Fprintln(w, "Type 'refresh' to try again.")
		return
	}

	fmt.Fprintln(w, CountLabel(len(s.user.SavedBooks)))
	for _, b := range s.user.SavedBooks {
		renderCard(w, b, s.pending[b.BookID])
	}
	if s.notice != "" {
		fmt.Fprintln(w, s.notice)
	}
	if s.actionErr != "" {
		fmt.Fprintf(w, "Error: %s\n", s.actionErr)
	}
}

func renderCard(w io.Writer, b models.SavedBook, removing bool) {
	title := b.Title
	if removing {
		title += " (removing...)"
	}
	fmt.Fprintf(w, "\n[%s] %s\n", b.BookID, title)
	fmt.Fprintf(w, "  Authors: %s\n", common.JoinNonEmpty(b.Authors, ", "))
	if b.Description != "" {
		fmt.Fprintf(w, "  %s\n", b.Description)
	}
	if b.Image != "" {
		fmt.Fprintf(w, "  Cover: %s\n", b.Image)
	}
	if b.Link != "" {
		fmt.Fprintf(w, "  Link: %s\n", b.Link)
	}
}
