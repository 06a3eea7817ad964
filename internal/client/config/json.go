package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/flagx"
)

// Duration accepts either a string such as "30s" or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("duration %s: want string or integer nanoseconds", b)
	}
	*d = Duration(n)
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell absent keys apart from zero values.
type JsonConfig struct {
	GraphQLEndpoint *string   `json:"graphql_endpoint"`
	RequestTimeout  *Duration `json:"request_timeout"`
	DatabasePath    *string   `json:"database_path"`
	BookmarkStore   *string   `json:"bookmark_store"`
	RedisAddr       *string   `json:"redis_addr"`
	RedisDB         *int      `json:"redis_db"`
	LogLevel        *string   `json:"log_level"`
	LogBackend      *string   `json:"log_backend"`
	MetricsAddr     *string   `json:"metrics_addr"`
}

// parseJson overlays cfg with the JSON file named by -c or -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.GraphQLEndpoint, jc.GraphQLEndpoint)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.BookmarkStore, jc.BookmarkStore)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
