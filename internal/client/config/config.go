package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Bookmark store backends.
const (
	BookmarkStoreSQLite = "sqlite"
	BookmarkStoreRedis  = "redis"
)

// Config holds runtime settings for the bookshelf CLI.
//
// Units: RequestTimeout is a time.Duration; zero disables the bound.
// MetricsAddr empty means no metrics endpoint.
type Config struct {
	GraphQLEndpoint string        `validate:"required,url"`
	RequestTimeout  time.Duration `validate:"gte=0"`
	DatabasePath    string        `validate:"required"`
	BookmarkStore   string        `validate:"oneof=sqlite redis"`
	RedisAddr       string        `validate:"required_if=BookmarkStore redis"`
	RedisDB         int           `validate:"gte=0"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	LogBackend      string        `validate:"oneof=slog zerolog"`
	MetricsAddr     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLEndpoint = "http://127.0.0.1:3001/graphql"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "bookshelf.db"
	c.BookmarkStore = BookmarkStoreSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.MetricsAddr = ""
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args, then environment variables read through lookuper, then the flags
// in args. Later sources take precedence over earlier ones.
func Load(ctx context.Context, args []string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookuper); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	return Load(ctx, os.Args[1:], envconfig.OsLookuper())
}
