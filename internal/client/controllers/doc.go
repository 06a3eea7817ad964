// Package controllers holds the two screens of the client as ui models: the
// login form and the saved-books view. Each keeps its own state, turns user
// actions into asynchronous tasks through the services, and renders itself as
// plain text.
package controllers
