package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures a logger built by New.
type Option func(*settings)

type settings struct {
	out  io.Writer
	json bool
}

// WithOutput sends log records to w instead of Stderr.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithJSON switches to JSON records.
func WithJSON(enabled bool) Option {
	return func(s *settings) {
		s.json = enabled
	}
}

// New creates a configured application logger.
// It writes to Stderr so that command output on Stdout stays clean,
// and standardizes the "error" key to "err".
func New(level slog.Level, opts ...Option) *slog.Logger {
	s := settings{out: os.Stderr}
	for _, opt := range opts {
		opt(&s)
	}
	ho := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if s.json {
		return slog.New(slog.NewJSONHandler(s.out, ho))
	}
	return slog.New(slog.NewTextHandler(s.out, ho))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
