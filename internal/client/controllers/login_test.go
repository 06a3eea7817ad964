package controllers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/stretchr/testify/require"
)

// navRecorder wraps a model and keeps the messages it did not handle itself.
type navRecorder struct {
	ui.Model
	nav []ui.Msg
}

func (n *navRecorder) Update(msg ui.Msg) ui.Cmd {
	if _, ok := msg.(LoggedInMsg); ok {
		n.nav = append(n.nav, msg)
		return nil
	}
	return n.Model.Update(msg)
}

func newLoginForm(f *fixture) *LoginForm {
	return NewLoginForm(f.auth, NewValidator(), logging.Discard())
}

func fill(form *LoginForm, email, password string) {
	form.HandleInputChange(FieldEmail, email)
	form.HandleInputChange(FieldPassword, password)
}

func TestLoginForm_SuccessfulSubmit(t *testing.T) {
	f := newFixture(false)
	f.gateway.LoginRet = &models.Auth{Token: "tok123", User: models.User{ID: "u1", Username: "alice"}}
	form := newLoginForm(f)
	rec := &navRecorder{Model: form}

	fill(form, "a@b.com", "secret")
	ui.Drain(context.Background(), rec, SubmitMsg{})

	require.Equal(t, []map[string]string{{"email": "a@b.com", "password": "secret"}}, f.gateway.LoginCalls)
	require.Equal(t, []string{"tok123"}, f.session.LoginCalls)
	require.False(t, form.AlertVisible())
	require.False(t, form.Submitting())

	require.Equal(t, map[string]string{FieldEmail: "", FieldPassword: ""}, form.Values())
	require.Len(t, rec.nav, 1)
	require.Equal(t, "alice", rec.nav[0].(LoggedInMsg).User.Username)
}

func TestLoginForm_ExactlyOneRequestPerSubmit(t *testing.T) {
	pairs := [][2]string{
		{"a@b.com", "secret"},
		{"someone.else+tag@example.org", "p@ss word"},
		{"x@y.io", "0"},
	}
	for _, p := range pairs {
		f := newFixture(false)
		f.gateway.LoginRet = &models.Auth{Token: "tok", User: models.User{ID: "u1"}}
		form := newLoginForm(f)

		fill(form, p[0], p[1])
		cmd := form.HandleFormSubmit()
		require.NotNil(t, cmd)
		require.True(t, form.Submitting())

		// Submit is disabled while the request is in flight.
		require.Nil(t, form.HandleFormSubmit())

		form.Update(cmd(context.Background()))
		require.Equal(t, []map[string]string{{"email": p[0], "password": p[1]}}, f.gateway.LoginCalls)
	}
}

func TestLoginForm_FailureShowsAlertAndKeepsValues(t *testing.T) {
	for _, loginErr := range []error{
		client.ErrUnavailable,
		errors.New("graphql error: Incorrect credentials"),
	} {
		f := newFixture(false)
		f.gateway.LoginErr = loginErr
		form := newLoginForm(f)

		fill(form, "a@b.com", "secret")
		before := form.Values()
		ui.Drain(context.Background(), form, SubmitMsg{})

		require.True(t, form.AlertVisible())
		require.Contains(t, form.Alert(), LoginAlert)
		require.Contains(t, form.Alert(), loginErr.Error())
		require.Equal(t, before, form.Values())
		require.Empty(t, f.session.LoginCalls)
		require.False(t, form.Submitting())

		var out bytes.Buffer
		form.Render(&out)
		require.Contains(t, out.String(), "Something went wrong with your login!")

		form.Update(DismissAlertMsg{})
		require.False(t, form.AlertVisible())
		require.Empty(t, form.Alert())
	}
}

func TestLoginForm_RequiredFieldsBlockSubmit(t *testing.T) {
	f := newFixture(false)
	form := newLoginForm(f)

	require.Nil(t, form.HandleFormSubmit())
	require.Equal(t, "email is required", form.FieldErrors()[FieldEmail])
	require.Equal(t, "password is required", form.FieldErrors()[FieldPassword])

	fill(form, "not-an-email", "secret")
	require.Nil(t, form.HandleFormSubmit())
	require.Equal(t, "email must be a valid email", form.FieldErrors()[FieldEmail])

	require.Zero(t, f.gateway.networkCalls())
	require.False(t, form.Submitting())
}

func TestLoginForm_InputChangeHasNoSideEffects(t *testing.T) {
	f := newFixture(false)
	form := newLoginForm(f)

	form.Update(InputMsg{Field: FieldEmail, Value: "bad"})
	require.Nil(t, form.FieldErrors())
	require.Equal(t, "bad", form.Values()[FieldEmail])
	require.Zero(t, f.gateway.networkCalls())
}

func TestLoginForm_RenderMasksPassword(t *testing.T) {
	form := newLoginForm(newFixture(false))
	fill(form, "a@b.com", "secret")

	var out bytes.Buffer
	form.Render(&out)
	require.Contains(t, out.String(), "Email: a@b.com")
	require.Contains(t, out.String(), "Password: ******")
	require.NotContains(t, out.String(), "secret")
}
