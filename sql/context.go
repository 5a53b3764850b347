package sql

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/sync/errgroup"
)

// Context of a plan rewrite. It carries a tracer used to report the spans of
// the different phases of the analysis and an id identifying the rewrite
// session in logs. Everything else a rewrite touches is exclusively owned by
// that rewrite, so a context must not be shared between concurrent rewrites
// except through NewErrgroup.
type Context struct {
	context.Context
	id       uuid.UUID
	tracer   opentracing.Tracer
	rootSpan opentracing.Span
}

// ContextOption is a function to configure the context.
type ContextOption func(*Context)

// WithTracer adds the given tracer to the context.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// WithRootSpan sets the root span of the context.
func WithRootSpan(s opentracing.Span) ContextOption {
	return func(ctx *Context) {
		ctx.rootSpan = s
	}
}

// NewContext creates a new rewrite context. Options can be passed to
// configure the context. By default the context has a fresh session id and a
// noop tracer.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context: ctx,
		id:      uuid.NewV4(),
		tracer:  opentracing.NoopTracer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewEmptyContext returns a default context with default values.
func NewEmptyContext() *Context { return NewContext(context.TODO()) }

// ID returns the unique identifier of the rewrite session.
func (c *Context) ID() uuid.UUID { return c.id }

// Span creates a new tracing span with the given context. It returns the
// span and a new context that should be passed to all children of this span.
func (c *Context) Span(
	opName string,
	opts ...opentracing.StartSpanOption,
) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}
	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	return span, c.WithContext(ctx)
}

// RootSpan returns the root span, if any.
func (c *Context) RootSpan() opentracing.Span {
	return c.rootSpan
}

// WithContext returns a new context with the given underlying context.
func (c *Context) WithContext(ctx context.Context) *Context {
	nc := *c
	nc.Context = ctx
	return &nc
}

// NewErrgroup creates a new errgroup.Group and a context to use with it,
// for running several independent rewrites concurrently.
func (c *Context) NewErrgroup() (*errgroup.Group, *Context) {
	eg, ctx := errgroup.WithContext(c.Context)
	return eg, c.WithContext(ctx)
}
