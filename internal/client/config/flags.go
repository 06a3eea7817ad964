package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-b", "-r", "-n", "-l", "-f", "-m"}

// parseFlags overlays cfg with the command-line flags it knows about. Other
// arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("bookshelf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GraphQLEndpoint, "a", cfg.GraphQLEndpoint, "GraphQL endpoint URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds, 0 disables")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local SQLite database")
	fs.StringVar(&cfg.BookmarkStore, "b", cfg.BookmarkStore, "bookmark store: sqlite or redis")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the redis bookmark store")
	fs.IntVar(&cfg.RedisDB, "n", cfg.RedisDB, "redis database number")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogBackend, "f", cfg.LogBackend, "log backend: slog or zerolog")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address of the /metrics endpoint, empty disables")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) { explicit = explicit || f.Name == "t" })
	if explicit {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	return nil
}
