// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with BOOKSHELF_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   GraphQL endpoint URL
//	-t int      request timeout (seconds, 0 disables)
//	-d string   local SQLite database path
//	-b string   bookmark store: sqlite | redis
//	-r string   redis address
//	-n int      redis database number
//	-l string   log level
//	-f string   log backend: slog | zerolog
//	-m string   metrics listen address (empty disables)
//
// # JSON schema
//
// Durations are strings like "30s" or integer nanoseconds:
//
//	{
//	  "graphql_endpoint": "http://127.0.0.1:3001/graphql",
//	  "request_timeout": "30s",
//	  "database_path": "bookshelf.db",
//	  "bookmark_store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "log_level": "debug",
//	  "log_backend": "zerolog",
//	  "metrics_addr": ":9091"
//	}
//
// # Environment
//
// BOOKSHELF_GRAPHQL_ENDPOINT, BOOKSHELF_REQUEST_TIMEOUT (e.g. "10s"),
// BOOKSHELF_DATABASE_PATH, BOOKSHELF_BOOKMARK_STORE, BOOKSHELF_REDIS_ADDR,
// BOOKSHELF_REDIS_DB, BOOKSHELF_LOG_LEVEL, BOOKSHELF_LOG_BACKEND,
// BOOKSHELF_METRICS_ADDR.
package config
