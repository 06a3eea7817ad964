// Package cli provides the interactive bookshelf command-line client.
//
// It wires configuration, local storage, the GraphQL gateway and the services,
// then runs two loops: runREPL reads commands from stdin and turns them into
// messages, and a ui.Program applies those messages to the screens (login
// form, saved books) and prints them whenever they change.
//
// The client is started via App.Run(ctx), which blocks until the user exits.
package cli
