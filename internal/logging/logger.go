// Package logging defines the structured-logging interface used across the
// client, with log/slog and zerolog implementations behind it.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "book removed", "book_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// New builds a Logger writing to w. level is one of debug, info, warn, error.
func New(backend, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(backend) {
	case "", BackendSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil
	case BackendZerolog:
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		return NewZerologLogger(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
