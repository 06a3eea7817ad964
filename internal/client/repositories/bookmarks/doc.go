// Package bookmarks is the local bookmark cache: the set of book ids the user
// has saved, kept outside the session so "already saved" markers survive
// restarts. It mirrors the remote collection and is updated after every
// successful save or remove mutation.
//
// Two backends implement Repository:
//
//   - SQLiteRepository stores ids in the saved_book_ids table of the local database.
//   - RedisRepository stores ids in a Redis set, for clients that share a cache.
package bookmarks
