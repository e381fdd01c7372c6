package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/prop-dev/prop"
)

// Default tracer name for instrumented containers.
const defaultTracerName = "prop"

// Config configures the tracing adapter.
type Config struct {
	// TracerName is the name of the tracer (default: "prop").
	TracerName string

	// Attributes are added to every span recorded by the adapter.
	Attributes []attribute.KeyValue
}

// Option configures the tracing adapter.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithAttributes adds constant attributes to every recorded span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *Config) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Property is a traced handle around an observable container. All access
// through the handle is recorded; direct access to the wrapped container is
// not.
type Property[T any] struct {
	inner  *prop.Property[T]
	name   string
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// Wrap returns a traced handle for p under the given name. The tracer comes
// from the global OpenTelemetry tracer provider; configure that provider in
// main() before use.
func Wrap[T any](p *prop.Property[T], name string, opts ...Option) *Property[T] {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	attrs := append([]attribute.KeyValue{attribute.String("prop.name", name)}, config.Attributes...)
	return &Property[T]{
		inner:  p,
		name:   name,
		tracer: otel.Tracer(config.TracerName),
		attrs:  attrs,
	}
}

// Unwrap returns the wrapped container.
func (tp *Property[T]) Unwrap() *prop.Property[T] {
	return tp.inner
}

// Get reads the current value and records a "prop.get" span.
func (tp *Property[T]) Get(ctx context.Context) T {
	_, span := tp.tracer.Start(ctx, "prop.get",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(tp.attrs...),
	)
	defer span.End()

	return tp.inner.Get()
}

// Set writes through the container's pipeline and records a "prop.set" span
// carrying the write outcome in the prop.applied attribute. Rejection is not
// an error; it is the container's silent-no-op contract.
func (tp *Property[T]) Set(ctx context.Context, value T) bool {
	_, span := tp.tracer.Start(ctx, "prop.set",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(tp.attrs...),
	)
	defer span.End()

	applied := tp.inner.Set(value)
	span.SetAttributes(attribute.Bool("prop.applied", applied))
	return applied
}

// Update derives a new value from the current one through the pipeline and
// records a "prop.update" span with the write outcome.
func (tp *Property[T]) Update(ctx context.Context, fn func(T) T) bool {
	_, span := tp.tracer.Start(ctx, "prop.update",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(tp.attrs...),
	)
	defer span.End()

	applied := tp.inner.Update(fn)
	span.SetAttributes(attribute.Bool("prop.applied", applied))
	return applied
}
