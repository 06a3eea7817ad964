package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseEnv(context.Background(), cfg, envconfig.MapLookuper(map[string]string{
		"BOOKSHELF_REQUEST_TIMEOUT": "0s",
		"BOOKSHELF_BOOKMARK_STORE":  "redis",
		"BOOKSHELF_REDIS_DB":        "4",
		"BOOKSHELF_METRICS_ADDR":    ":9091",
		"GRAPHQL_ENDPOINT":          "http://unprefixed.example",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, "redis", cfg.BookmarkStore)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, ":9091", cfg.MetricsAddr)
	assert.Equal(t, "http://127.0.0.1:3001/graphql", cfg.GraphQLEndpoint)
}

func Test_parseEnv_NilLookuper(t *testing.T) {
	cfg := &Config{LogLevel: "error"}
	require.NoError(t, parseEnv(context.Background(), cfg, nil))
	assert.Equal(t, "error", cfg.LogLevel)
}
