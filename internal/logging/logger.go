// Package logging defines the structured-logging interface used across the
// server, with adapters for log/slog and zerolog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "relay", "sender", "alice", "delivered", true)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Log output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds the logger for the given format. "console" gives a human
// readable zerolog writer for local runs; anything else is slog JSON.
func New(format string, w io.Writer) Logger {
	if format == FormatConsole {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
		return NewZerologLogger(zl)
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
}

type requestIDKey struct{}

// WithRequestID tags ctx so every line logged with it carries request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func withRequestID(ctx context.Context, args []any) []any {
	if ctx == nil {
		return args
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return args
	}
	return append(args[:len(args):len(args)], "request_id", id)
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }
