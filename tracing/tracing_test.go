package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bjaus/action"
	"github.com/bjaus/action/tracing"
)

func setupTracer(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider()
	tp.RegisterSpanProcessor(rec)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return rec, tp
}

// findAttr returns attribute value by key.
func findAttr(attrs []attribute.KeyValue, key attribute.Key) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.AsString(), true
		}
	}
	return "", false
}

func newRegistry(t *testing.T, tp *sdktrace.TracerProvider) *action.Registry {
	t.Helper()

	r := action.New(tracing.Hooks(tracing.WithTracerProvider(tp)))
	require.NoError(t, r.RegisterInvoker("ok", action.Singleton(action.InvokerFunc(
		func(ctx context.Context, id string, args action.Args) (*action.Result, error) {
			return action.Ack(id), nil
		}))))
	require.NoError(t, r.RegisterInvoker("broken", action.Singleton(action.InvokerFunc(
		func(ctx context.Context, id string, args action.Args) (*action.Result, error) {
			return nil, errors.New("offline")
		}))))
	r.MustRegister(action.NewCommand("good", "ok"), action.NewCommand("bad", "broken"))
	return r
}

func TestHooks_Success(t *testing.T) {
	rec, tp := setupTracer(t)
	r := newRegistry(t, tp)

	r.Dispatch(context.Background(), "good", "r1")

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "action good", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	key, ok := findAttr(spans[0].Attributes(), tracing.AttrKey)
	require.True(t, ok)
	assert.Equal(t, "good", key)

	id, ok := findAttr(spans[0].Attributes(), tracing.AttrCorrelationID)
	require.True(t, ok)
	assert.Equal(t, "r1", id)
}

func TestHooks_Fault(t *testing.T) {
	rec, tp := setupTracer(t)
	r := newRegistry(t, tp)

	r.Dispatch(context.Background(), "bad", "r2")

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Status().Description, "offline")

	inv, ok := findAttr(spans[0].Attributes(), tracing.AttrInvoker)
	require.True(t, ok)
	assert.Equal(t, "broken", inv)

	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestHooks_UnknownKeyHasNoSpan(t *testing.T) {
	rec, tp := setupTracer(t)
	r := newRegistry(t, tp)

	r.Dispatch(context.Background(), "missing", "r3")

	assert.Empty(t, rec.Started())
	assert.Empty(t, rec.Ended())
}
