package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"graphql_endpoint": "http://www.example:9000/graphql",
		"request_timeout":  "10s",
		"bookmark_store":   "redis",
		"redis_db":         2,
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{DatabasePath: "keep.db"}
		require.NoError(t, parseJson(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "http://www.example:9000/graphql", cfg.GraphQLEndpoint)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "redis", cfg.BookmarkStore)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, "keep.db", cfg.DatabasePath, "absent keys keep their value")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{GraphQLEndpoint: "defaults", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "defaults", cfg.GraphQLEndpoint)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("integer nanoseconds and explicit zero", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"request_timeout": 0})
		cfg := &Config{RequestTimeout: time.Minute}
		require.NoError(t, parseJson(cfg, []string{"-c", p}))
		assert.Zero(t, cfg.RequestTimeout)

		p = writeTempJSON(t, dir, "ns2.json", map[string]any{"request_timeout": int64(1500 * time.Millisecond)})
		require.NoError(t, parseJson(cfg, []string{"-c", p}))
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})

	t.Run("invalid duration → error", func(t *testing.T) {
		p := writeTempJSON(t, dir, "dur.json", map[string]any{"request_timeout": "ten seconds"})
		require.Error(t, parseJson(&Config{}, []string{"-c", p}))
	})
}
