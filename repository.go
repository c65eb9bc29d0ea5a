package urakawa

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/urakawa/internal/logging"
	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/ports"
	"github.com/aretw0/urakawa/pkg/xuk"
)

const tracerName = "github.com/aretw0/urakawa"

// Repository saves and loads projects by ID, encoding them as XUK.
type Repository struct {
	store   ports.DocumentStore
	tracer  trace.Tracer
	logger  *slog.Logger
	xukOpts []xuk.Option
}

// Option configures a Repository.
type Option func(*Repository)

// WithTracerProvider traces repository operations with tp. By default the
// global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Repository) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// WithLogger sets the logger for repository operations and XUK decoding.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithXukOptions adds options applied to every encode and decode, such as
// xuk.WithStrict or xuk.WithIndent.
func WithXukOptions(opts ...xuk.Option) Option {
	return func(r *Repository) {
		r.xukOpts = append(r.xukOpts, opts...)
	}
}

// NewRepository creates a repository over store.
func NewRepository(store ports.DocumentStore, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		tracer: otel.Tracer(tracerName),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying document store.
func (r *Repository) Store() ports.DocumentStore {
	return r.store
}

func (r *Repository) options(ctx context.Context) []xuk.Option {
	opts := []xuk.Option{xuk.WithLogger(r.logger), xuk.WithProgress(xuk.ContextProgress(ctx))}
	return append(opts, r.xukOpts...)
}

func (r *Repository) start(ctx context.Context, op, id string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "urakawa.Repository."+op,
		trace.WithAttributes(attribute.String("urakawa.document.id", id)))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Save encodes pr and stores it under id.
func (r *Repository) Save(ctx context.Context, id string, pr *core.Project) (err error) {
	ctx, span := r.start(ctx, "Save", id)
	defer func() { finish(span, err) }()

	data, err := Marshal(pr, r.options(ctx)...)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	span.SetAttributes(attribute.Int("urakawa.document.bytes", len(data)))
	if err := r.store.Save(ctx, id, data); err != nil {
		return fmt.Errorf("store %s: %w", id, err)
	}
	r.logger.Debug("document saved", "id", id, "bytes", len(data))
	return nil
}

// Load fetches and decodes the project stored under id.
// A missing document yields ports.ErrDocumentNotFound.
func (r *Repository) Load(ctx context.Context, id string) (pr *core.Project, err error) {
	ctx, span := r.start(ctx, "Load", id)
	defer func() { finish(span, err) }()

	data, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("urakawa.document.bytes", len(data)))
	pr, err = Unmarshal(data, r.options(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	r.logger.Debug("document loaded", "id", id, "presentations", pr.PresentationCount())
	return pr, nil
}

// Delete removes the document stored under id.
func (r *Repository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := r.start(ctx, "Delete", id)
	defer func() { finish(span, err) }()
	return r.store.Delete(ctx, id)
}

// List returns the stored document IDs.
func (r *Repository) List(ctx context.Context) (ids []string, err error) {
	ctx, span := r.tracer.Start(ctx, "urakawa.Repository.List")
	defer func() { finish(span, err) }()

	ids, err = r.store.List(ctx)
	span.SetAttributes(attribute.Int("urakawa.documents", len(ids)))
	return ids, err
}
