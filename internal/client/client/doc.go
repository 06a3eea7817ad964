// Package client is the remote data gateway of the bookshelf client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     backend operations the client uses: Login, GetMe, RemoveBook, SaveBook.
//  2. A GraphQL-over-HTTP implementation (see GraphQLClient) that attaches
//     the bearer token of the current session, tags every request with an
//     X-Request-ID, bounds it with a timeout, records Prometheus metrics and
//     maps transport failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized. The original error text is kept
// in the message so it can be shown to the user.
package client
