// Package models defines the client-side view of the bookshelf backend:
// users, their saved books and the payloads exchanged with the gateway.
package models

// User is the authenticated user together with the books they saved.
// SavedBooks keeps the order in which the backend returned them.
type User struct {
	ID         string      `json:"_id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	SavedBooks []SavedBook `json:"savedBooks"`
}

// Auth is the result of a successful login mutation.
type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Clone returns a deep copy of u, so cached values can be handed out safely.
func (u User) Clone() User {
	c := u
	if u.SavedBooks != nil {
		c.SavedBooks = make([]SavedBook, len(u.SavedBooks))
		for i, b := range u.SavedBooks {
			c.SavedBooks[i] = b.Clone()
		}
	}
	return c
}

// WithoutBook returns a copy of u whose collection no longer holds bookID.
// Removing an id that is absent leaves the other entries untouched.
func (u User) WithoutBook(bookID string) User {
	c := u.Clone()
	kept := c.SavedBooks[:0]
	for _, b := range c.SavedBooks {
		if b.BookID != bookID {
			kept = append(kept, b)
		}
	}
	c.SavedBooks = kept
	return c
}

// HasBook reports whether bookID is in the collection.
func (u User) HasBook(bookID string) bool {
	for _, b := range u.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
