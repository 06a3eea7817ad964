package models

import "strings"

// SavedBook is a catalog book stored in a user's collection.
type SavedBook struct {
	BookID      string   `json:"bookId"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Title       string   `json:"title"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link"`
}

func (b SavedBook) Clone() SavedBook {
	c := b
	if b.Authors != nil {
		c.Authors = append([]string(nil), b.Authors...)
	}
	return c
}

// BookInput is the payload of the saveBook mutation.
type BookInput struct {
	BookID      string   `json:"bookId" validate:"required"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Title       string   `json:"title" validate:"required"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty" validate:"omitempty,url"`
}

// ParseAuthors splits a comma separated author list, dropping blanks.
func ParseAuthors(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
