// Package tracing records an OpenTelemetry span for every dispatched action.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bjaus/action"
)

// ScopeName is the instrumentation scope used for spans.
const ScopeName = "github.com/bjaus/action"

// Attribute keys set on dispatch spans.
const (
	AttrKey           = attribute.Key("action.key")
	AttrCorrelationID = attribute.Key("action.correlation_id")
	AttrInvoker       = attribute.Key("action.invoker")
)

type config struct {
	provider trace.TracerProvider
}

// Option configures Hooks.
type Option func(*config)

// WithTracerProvider sets the provider. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.provider = tp
	}
}

// Hooks returns registry options that start a span before each action runs
// and end it with the outcome. Unknown keys produce no span.
func Hooks(opts ...Option) action.Option {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	tracer := cfg.provider.Tracer(ScopeName)

	return action.WithOptions(
		action.WithOnDispatch(func(ctx context.Context, key, id string) context.Context {
			ctx, _ = tracer.Start(ctx, "action "+key,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(AttrKey.String(key), AttrCorrelationID.String(id)),
			)
			return ctx
		}),
		action.WithOnInvokerFault(func(ctx context.Context, key, id string, fault *action.InvokerFault) {
			span := trace.SpanFromContext(ctx)
			span.SetAttributes(AttrInvoker.String(string(fault.Invoker)))
			span.RecordError(fault)
		}),
		action.WithOnSuccess(func(ctx context.Context, key, id string, d time.Duration) {
			span := trace.SpanFromContext(ctx)
			span.SetStatus(codes.Ok, "")
			span.End()
		}),
		action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
			span := trace.SpanFromContext(ctx)
			span.SetStatus(codes.Error, msg)
			span.End()
		}),
	)
}
