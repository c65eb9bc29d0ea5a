package xuk

import (
	"context"
	"io"
	"log/slog"
	"net/url"
)

// Progress is polled at element boundaries. Returning true requests cancellation.
type Progress func() (cancel bool)

// ContextProgress returns a Progress that cancels once ctx is done.
func ContextProgress(ctx context.Context) Progress {
	return func() bool {
		return ctx.Err() != nil
	}
}

type options struct {
	progress Progress
	logger   *slog.Logger
	baseURI  *url.URL
	strict   bool
	indent   string
}

// Option configures a Reader or a Writer.
type Option func(*options)

// WithProgress sets the cancellation callback.
func WithProgress(p Progress) Option {
	return func(o *options) {
		o.progress = p
	}
}

// WithLogger sets the logger used to report skipped content.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBaseURI sets the URI that external references are relativised against on
// write and resolved against on read. A nil base leaves references untouched.
func WithBaseURI(base *url.URL) Option {
	return func(o *options) {
		o.baseURI = base
	}
}

// WithStrict makes unknown elements a hard error instead of a skipped subtree.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithIndent makes the Writer indent nested elements with the given string.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func cancelled(p Progress) bool {
	return p != nil && p()
}
