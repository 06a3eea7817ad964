package cli

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/bookshelf/internal/client/controllers"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// promptLogin asks for email and password and returns the messages that fill
// in the login form and submit it.
func promptLogin(reader *bufio.Reader, w io.Writer) ([]ui.Msg, error) {
	email, err := getSimpleText(reader, "Enter email", w)
	if err != nil {
		return nil, err
	}

	password, err := getPassword(w)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	return []ui.Msg{
		controllers.InputMsg{Field: controllers.FieldEmail, Value: email},
		controllers.InputMsg{Field: controllers.FieldPassword, Value: string(password)},
		controllers.SubmitMsg{},
	}, nil
}

// promptBook asks for the fields of a book to save.
func promptBook(reader *bufio.Reader, w io.Writer) (models.BookInput, error) {
	var (
		in      models.BookInput
		authors string
		err     error
	)

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Book id", &in.BookID},
		{"Title", &in.Title},
		{"Authors (comma separated)", &authors},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(reader, f.prompt, w); err != nil {
			return models.BookInput{}, err
		}
	}

	if in.Description, err = getMultiline(reader, "Description", w); err != nil {
		return models.BookInput{}, err
	}
	if in.Image, err = getSimpleText(reader, "Cover image URL (optional)", w); err != nil {
		return models.BookInput{}, err
	}
	if in.Link, err = getSimpleText(reader, "Link (optional)", w); err != nil {
		return models.BookInput{}, err
	}

	in.Authors = models.ParseAuthors(authors)
	return in, nil
}
