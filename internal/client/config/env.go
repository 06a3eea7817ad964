package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "BOOKSHELF_"

// envConfig is a DTO for go-envconfig. Unset variables leave their field nil.
type envConfig struct {
	GraphQLEndpoint *string        `env:"GRAPHQL_ENDPOINT, noinit"`
	RequestTimeout  *time.Duration `env:"REQUEST_TIMEOUT, noinit"`
	DatabasePath    *string        `env:"DATABASE_PATH, noinit"`
	BookmarkStore   *string        `env:"BOOKMARK_STORE, noinit"`
	RedisAddr       *string        `env:"REDIS_ADDR, noinit"`
	RedisDB         *int           `env:"REDIS_DB, noinit"`
	LogLevel        *string        `env:"LOG_LEVEL, noinit"`
	LogBackend      *string        `env:"LOG_BACKEND, noinit"`
	MetricsAddr     *string        `env:"METRICS_ADDR, noinit"`
}

// parseEnv overlays cfg with BOOKSHELF_* variables found through lookuper.
func parseEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		return nil
	}

	var ec envConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &ec,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	setString(&cfg.GraphQLEndpoint, ec.GraphQLEndpoint)
	setString(&cfg.DatabasePath, ec.DatabasePath)
	setString(&cfg.BookmarkStore, ec.BookmarkStore)
	setString(&cfg.RedisAddr, ec.RedisAddr)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogBackend, ec.LogBackend)
	setString(&cfg.MetricsAddr, ec.MetricsAddr)
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.RedisDB != nil {
		cfg.RedisDB = *ec.RedisDB
	}
	return nil
}
