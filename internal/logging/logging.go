// Package logging builds the zap loggers used by the CLI and the HTTP server.
//
// Request-scoped loggers carry chi's request id so every entry written while
// serving one request can be correlated.
package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to stderr.
//
// Level values: "debug", "info", "warn", "error".
// Format values: "text" (console encoder) and "json".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var enc zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	case FormatText, "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, fmt.Errorf("log format %q: must be one of: text, json", format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

type ctxKey struct{}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored in ctx, or a no-op logger. When ctx
// holds a chi request id the logger includes it as request_id.
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(ctxKey{}).(*zap.Logger)
	if !ok || log == nil {
		log = zap.NewNop()
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		log = log.With(zap.String("request_id", reqID))
	}
	return log
}
