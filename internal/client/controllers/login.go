package controllers

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// Login form field names.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// LoginAlert is the headline of the alert shown when a login fails.
const LoginAlert = "Something went wrong with your login!"

type (
	// InputMsg sets a form field.
	InputMsg struct{ Field, Value string }
	// SubmitMsg submits the login form.
	SubmitMsg struct{}
	// DismissAlertMsg hides the login alert.
	DismissAlertMsg struct{}
	// LoginResultMsg is the outcome of the login task.
	LoginResultMsg struct {
		User *models.User
		Err  error
	}
	// LoggedInMsg tells the shell to leave the login screen.
	LoggedInMsg struct{ User models.User }
)

// LoginForm is the session form controller. It owns the form state and sends
// at most one login request at a time.
type LoginForm struct {
	auth     services.AuthService
	validate *Validator
	logger   logging.Logger

	values      map[string]string
	fieldErrors map[string]string
	submitting  bool
	alert       bool
	alertDetail string
}

// NewLoginForm returns an empty form that logs in through auth.
func NewLoginForm(auth services.AuthService, v *Validator, logger logging.Logger) *LoginForm {
	return &LoginForm{
		auth:     auth,
		validate: v,
		logger:   logger.With("module", "login_form"),
		values:   map[string]string{FieldEmail: "", FieldPassword: ""},
	}
}

// HandleInputChange stores value under field.
func (f *LoginForm) HandleInputChange(field, value string) {
	f.values[field] = value
}

// HandleFormSubmit returns the login task, or nil when the form is invalid or
// a submission is already in flight.
func (f *LoginForm) HandleFormSubmit() ui.Cmd {
	if f.submitting {
		return nil
	}

	creds := models.Credentials{Email: f.values[FieldEmail], Password: f.values[FieldPassword]}
	f.fieldErrors = f.validate.Struct(creds)
	if f.fieldErrors != nil {
		return nil
	}

	f.submitting = true
	return func(ctx context.Context) ui.Msg {
		u, err := f.auth.Login(ctx, creds)
		return LoginResultMsg{User: u, Err: err}
	}
}

// DismissAlert hides the failure alert. The form state is kept.
func (f *LoginForm) DismissAlert() {
	f.alert = false
	f.alertDetail = ""
}

// Submitting reports whether a login request is in flight.
func (f *LoginForm) Submitting() bool { return f.submitting }

// AlertVisible reports whether the failure alert is shown.
func (f *LoginForm) AlertVisible() bool { return f.alert }

// Alert returns the alert text, empty when hidden.
func (f *LoginForm) Alert() string {
	if !f.alert {
		return ""
	}
	if f.alertDetail == "" {
		return LoginAlert
	}
	return LoginAlert + "\n" + f.alertDetail
}

// Values returns a copy of the form state.
func (f *LoginForm) Values() map[string]string { return maps.Clone(f.values) }

// FieldErrors returns the validation messages of the last submit, by field.
func (f *LoginForm) FieldErrors() map[string]string { return maps.Clone(f.fieldErrors) }

func (f *LoginForm) reset() {
	f.values = map[string]string{FieldEmail: "", FieldPassword: ""}
	f.fieldErrors = nil
	f.DismissAlert()
}

// Update applies msg to the form. A successful login resets the form and
// emits LoggedInMsg.
func (f *LoginForm) Update(msg ui.Msg) ui.Cmd {
	switch m := msg.(type) {
	case InputMsg:
		f.HandleInputChange(m.Field, m.Value)
	case SubmitMsg:
		return f.HandleFormSubmit()
	case DismissAlertMsg:
		f.DismissAlert()
	case LoginResultMsg:
		f.submitting = false
		if m.Err != nil {
			f.logger.Error(context.Background(), "login failed", "error", m.Err)
			f.alert = true
			f.alertDetail = m.Err.Error()
			return nil
		}
		f.reset()
		var u models.User
		if m.User != nil {
			u = *m.User
		}
		return ui.Emit(LoggedInMsg{User: u})
	}
	return nil
}

// Render writes the form, its alert and field errors to w. The password is
// masked.
func (f *LoginForm) Render(w io.Writer) {
	fmt.Fprintln(w, "== Login ==")
	if f.alert {
		fmt.Fprintln(w, "! "+strings.ReplaceAll(f.Alert(), "\n", "\n  "))
		fmt.Fprintln(w, "  (type 'dismiss' to close)")
	}
	fmt.Fprintf(w, "Email: %s\n", f.values[FieldEmail])
	fmt.Fprintf(w, "Password: %s\n", strings.Repeat("*", len(f.values[FieldPassword])))
	if len(f.fieldErrors) > 0 {
		fmt.Fprintf(w, "Invalid form: %s\n", joinErrors(f.fieldErrors))
	}
	if f.submitting {
		fmt.Fprintln(w, "Submitting...")
	}
}
